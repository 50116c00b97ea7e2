package storefront

import (
	"context"
	"sync"

	"github.com/MikeMC777/beyblade-store/internal/xano"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*xano.AuthToken, error)
	Signup(ctx context.Context, name, email, password string) (*xano.AuthToken, error)
	Me(ctx context.Context, token string) (*xano.User, error)
}

// Session holds the signed-in token and user in memory only.
type Session struct {
	auth Authenticator

	mu    sync.RWMutex
	token string
	user  *xano.User
}

func NewSession(auth Authenticator) *Session {
	return &Session{auth: auth}
}

func (s *Session) Login(ctx context.Context, email, password string) (*xano.User, error) {
	tok, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, tok)
}

func (s *Session) Signup(ctx context.Context, name, email, password string) (*xano.User, error) {
	tok, err := s.auth.Signup(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, tok)
}

func (s *Session) adopt(ctx context.Context, tok *xano.AuthToken) (*xano.User, error) {
	if tok == nil || tok.AuthToken == "" {
		return nil, ErrLoginRequired
	}
	u, err := s.auth.Me(ctx, tok.AuthToken)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.token, s.user = tok.AuthToken, u
	s.mu.Unlock()
	return u, nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.token, s.user = "", nil
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *xano.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
