package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/beyblade-store/internal/xano"
	"github.com/MikeMC777/beyblade-store/internal/xanotest"
)

func TestSession_LoginAndLogout(t *testing.T) {
	c, srv := newBackend(t)
	srv.AddUser("Valt", "valt@example.com")
	s := NewSession(c)
	ctx := context.Background()

	u, err := s.Login(ctx, "valt@example.com", xanotest.Password)
	require.NoError(t, err)
	assert.Equal(t, "Valt", u.Name)
	assert.NotEmpty(t, s.Token())
	assert.Equal(t, "Valt", s.User().Name)

	s.Logout()
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestSession_BadPasswordLeavesNoToken(t *testing.T) {
	c, srv := newBackend(t)
	srv.AddUser("Valt", "valt@example.com")
	s := NewSession(c)

	_, err := s.Login(context.Background(), "valt@example.com", "nope")
	assert.ErrorIs(t, err, xano.ErrUnauthorized)
	assert.Empty(t, s.Token())
}

func TestSession_Signup(t *testing.T) {
	c, _ := newBackend(t)
	s := NewSession(c)

	u, err := s.Signup(context.Background(), "Shu", "shu@example.com", xanotest.Password)
	require.NoError(t, err)
	assert.Equal(t, "shu@example.com", u.Email)
	assert.Equal(t, "tok-shu@example.com", s.Token())
}
