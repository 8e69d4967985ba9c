package state

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
)

type authRecord struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Sessions is the auth state container: current user and bearer token per
// session, hydrated from the storage adapter so a restart does not log
// everyone out. Login and logout are the only mutations.
type Sessions struct {
	Auth  *api.AuthService
	store *storage.Store

	mu   sync.Mutex
	recs map[string]*authRecord
}

func NewSessions(auth *api.AuthService, store *storage.Store) *Sessions {
	return &Sessions{Auth: auth, store: store, recs: map[string]*authRecord{}}
}

// Login authenticates against the backend. On success the token and user are
// held in memory and persisted; on failure state is left unauthenticated and
// the backend's message is surfaced via the returned error.
func (s *Sessions) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	res, err := s.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	rec := &authRecord{Token: res.Token, User: res.User}
	s.mu.Lock()
	s.recs[sid] = rec
	s.mu.Unlock()
	if b, err := json.Marshal(rec); err == nil {
		if serr := s.store.Set("auth:"+sid, string(b)); serr != nil {
			applog.Error(nil, "auth.persist", serr, map[string]any{"sid": sid})
		}
	}
	u := rec.User
	return &u, nil
}

// Logout clears the session from memory and storage. Safe on unknown sids.
func (s *Sessions) Logout(sid string) {
	s.mu.Lock()
	delete(s.recs, sid)
	s.mu.Unlock()
	if err := s.store.Delete("auth:" + sid); err != nil {
		applog.Error(nil, "auth.logout.clear", err, map[string]any{"sid": sid})
	}
}

// Current returns the session's user, hydrating from storage on first
// access. Tokens whose exp claim has passed are dropped as if logged out.
func (s *Sessions) Current(sid string) *domain.User {
	rec := s.record(sid)
	if rec == nil {
		return nil
	}
	if domain.TokenExpired(rec.Token) {
		applog.Info(nil, "auth.token.expired", map[string]any{"sid": sid})
		s.Logout(sid)
		return nil
	}
	u := rec.User
	return &u
}

// Token returns the bearer token for backend calls, empty when logged out.
func (s *Sessions) Token(sid string) string {
	rec := s.record(sid)
	if rec == nil || domain.TokenExpired(rec.Token) {
		return ""
	}
	return rec.Token
}

func (s *Sessions) HasRole(sid, role string) bool {
	return s.Current(sid).HasRole(role)
}

func (s *Sessions) record(sid string) *authRecord {
	if sid == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.recs[sid]; ok {
		return rec
	}
	raw, ok, err := s.store.Get("auth:" + sid)
	if err != nil {
		applog.Error(nil, "auth.hydrate.read", err, map[string]any{"sid": sid})
		return nil
	}
	if !ok {
		return nil
	}
	var rec authRecord
	if uerr := json.Unmarshal([]byte(raw), &rec); uerr != nil {
		applog.Error(nil, "auth.hydrate.corrupt", uerr, map[string]any{"sid": sid})
		_ = s.store.Delete("auth:" + sid)
		return nil
	}
	s.recs[sid] = &rec
	return &rec
}
