package xano

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteOf(t *testing.T) {
	assert.Equal(t, "/product/:id", routeOf("/product/42"))
	assert.Equal(t, "/product", routeOf("/product"))
	assert.Equal(t, "/upload/image", routeOf("/upload/image"))
	assert.Equal(t, "/order/abc", routeOf("/order/abc"))
}

func TestResolve(t *testing.T) {
	c := &Client{Origin: "http://localhost:5173"}

	u, err := c.resolve("https://x.xano.io/api:store/", "/product/3")
	require.NoError(t, err)
	assert.Equal(t, "https://x.xano.io/api:store/product/3", u.String())

	u, err = c.resolve("/api", "/product")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/api/product", u.String())
}

func TestNormalize_ZeroLengthHeaderWins(t *testing.T) {
	res := &http.Response{
		StatusCode:    http.StatusOK,
		Status:        "200 OK",
		Header:        http.Header{"Content-Length": []string{"0"}},
		ContentLength: -1,
		Body:          io.NopCloser(strings.NewReader(`{"ignored":true}`)),
	}
	raw, err := normalize(res)
	require.NoError(t, err)
	assert.Nil(t, raw)

	res = &http.Response{
		StatusCode:    http.StatusNoContent,
		Status:        "204 No Content",
		Header:        http.Header{},
		ContentLength: 16,
		Body:          io.NopCloser(strings.NewReader(`{"ignored":true}`)),
	}
	raw, err = normalize(res)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, assert.AnError }
func (failingBody) Close() error             { return nil }

func TestNormalize_UnreadableErrorBodyFallsBackToEmpty(t *testing.T) {
	res := &http.Response{
		StatusCode: http.StatusInternalServerError,
		Status:     "500 Internal Server Error",
		Header:     http.Header{},
		Body:       failingBody{},
	}
	_, err := normalize(res)
	require.Error(t, err)
	assert.Equal(t, "HTTP 500 Internal Server Error", err.Error())
}
