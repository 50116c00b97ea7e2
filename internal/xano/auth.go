package xano

import (
	"context"
	"net/http"
)

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthToken, error) {
	raw, err := c.Do(ctx, c.AuthBase, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   credentials{Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}
	return decode[AuthToken](raw)
}

// Me returns the user behind token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	raw, err := c.Do(ctx, c.AuthBase, "/auth/me", RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return decode[User](raw)
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthToken, error) {
	raw, err := c.Do(ctx, c.AuthBase, "/auth/signup", RequestOptions{
		Method: http.MethodPost,
		Body:   credentials{Name: name, Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}
	return decode[AuthToken](raw)
}
