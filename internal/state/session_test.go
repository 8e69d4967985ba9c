package state_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func authBackend(t *testing.T, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "S3gura!Clave" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Correo o contraseña incorrectos"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user": domain.User{
				ID: "u1", Email: in["email"], FirstName: "Carolina",
				Roles: []string{"customer", "admin"},
			},
		})
	}))
}

func TestLoginStoresAndHydrates(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	backend := authBackend(t, token)
	defer backend.Close()

	st := memStore(t)
	sessions := state.NewSessions(api.NewAuthService(api.New(backend.URL)), st)

	u, err := sessions.Login(context.Background(), "sid-1", "caro@hacienda.cl", "S3gura!Clave")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.True(t, sessions.HasRole("sid-1", "admin"))
	require.Equal(t, token, sessions.Token("sid-1"))

	// a fresh container over the same adapter sees the session (restart case)
	again := state.NewSessions(api.NewAuthService(api.New(backend.URL)), st)
	require.NotNil(t, again.Current("sid-1"))
	require.True(t, again.HasRole("sid-1", "customer"))
}

func TestLoginFailureLeavesStateUnauthenticated(t *testing.T) {
	backend := authBackend(t, "unused")
	defer backend.Close()

	sessions := state.NewSessions(api.NewAuthService(api.New(backend.URL)), memStore(t))
	_, err := sessions.Login(context.Background(), "sid-1", "caro@hacienda.cl", "mala")
	require.Error(t, err)
	require.Equal(t, "Correo o contraseña incorrectos", api.Humanize(err))
	require.Nil(t, sessions.Current("sid-1"))
	require.Empty(t, sessions.Token("sid-1"))
}

func TestLogoutClearsMemoryAndStorage(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	backend := authBackend(t, token)
	defer backend.Close()

	st := memStore(t)
	sessions := state.NewSessions(api.NewAuthService(api.New(backend.URL)), st)
	_, err := sessions.Login(context.Background(), "sid-1", "caro@hacienda.cl", "S3gura!Clave")
	require.NoError(t, err)

	sessions.Logout("sid-1")
	require.Nil(t, sessions.Current("sid-1"))
	_, ok, err := st.Get("auth:sid-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExpiredTokenDropsSession(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Minute))
	backend := authBackend(t, token)
	defer backend.Close()

	st := memStore(t)
	sessions := state.NewSessions(api.NewAuthService(api.New(backend.URL)), st)
	_, err := sessions.Login(context.Background(), "sid-1", "caro@hacienda.cl", "S3gura!Clave")
	require.NoError(t, err)

	require.Nil(t, sessions.Current("sid-1"), "expired token must read as logged out")
	require.False(t, sessions.HasRole("sid-1", "admin"))
	_, ok, _ := st.Get("auth:sid-1")
	require.False(t, ok, "expired session must be purged from storage")
}

func TestHasRoleOnAnonymousSession(t *testing.T) {
	backend := authBackend(t, "unused")
	defer backend.Close()
	sessions := state.NewSessions(api.NewAuthService(api.New(backend.URL)), memStore(t))
	require.False(t, sessions.HasRole("", "admin"))
	require.False(t, sessions.HasRole("nope", "admin"))
}
