package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
)

func TestStoreRoundTrip(t *testing.T) {
	st, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	_, ok, err := st.Get("cart:s1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.Set("cart:s1", `{"lines":[]}`))
	v, ok, err := st.Get("cart:s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"lines":[]}`, v)

	// overwrite wins
	require.NoError(t, st.Set("cart:s1", `{"lines":[1]}`))
	v, _, _ = st.Get("cart:s1")
	require.Equal(t, `{"lines":[1]}`, v)

	require.NoError(t, st.Delete("cart:s1"))
	_, ok, err = st.Get("cart:s1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreDeleteMissingKey(t *testing.T) {
	st, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Delete("never-set"))
}
