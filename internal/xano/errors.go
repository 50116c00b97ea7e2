package xano

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrUnauthorized = errors.New("xano: unauthorized")
	ErrNotFound     = errors.New("xano: not found")
	ErrClient       = errors.New("xano: client error")
	ErrServer       = errors.New("xano: server error")
)

// Kind classifies a failed request by status range.
type Kind int

const (
	KindUnexpected Kind = iota
	KindUnauthorized
	KindNotFound
	KindClient
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	default:
		return "unexpected"
	}
}

// RequestError is the only failure the backend layer reports for a
// non-2xx response.
type RequestError struct {
	Status     int
	StatusText string
	Body       string
}

func newRequestError(res *http.Response, body string) *RequestError {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	return &RequestError{Status: res.StatusCode, StatusText: text, Body: strings.TrimSpace(body)}
}

func (e *RequestError) Error() string {
	msg := strings.TrimSpace(fmt.Sprintf("HTTP %d %s", e.Status, e.StatusText))
	if e.Body != "" {
		msg += " - " + e.Body
	}
	return msg
}

func (e *RequestError) Kind() Kind {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return KindUnauthorized
	case e.Status == http.StatusNotFound:
		return KindNotFound
	case e.Status >= 400 && e.Status < 500:
		return KindClient
	case e.Status >= 500:
		return KindServer
	default:
		return KindUnexpected
	}
}

// Is lets callers test with errors.Is against the package sentinels.
// ErrClient matches every 4xx, including unauthorized and not found.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind() == KindUnauthorized
	case ErrNotFound:
		return e.Kind() == KindNotFound
	case ErrClient:
		return e.Status >= 400 && e.Status < 500
	case ErrServer:
		return e.Kind() == KindServer
	}
	return false
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
