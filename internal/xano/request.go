package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Param is one query parameter. A nil Value, or a nil pointer, is skipped.
type Param struct {
	Key   string
	Value any
}

// Query keeps parameters in the order they are appended to the URL.
type Query []Param

func (q Query) encode() string {
	var sb strings.Builder
	for _, p := range q {
		v, ok := queryValue(p.Value)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	}
	return sb.String()
}

func queryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}

type RequestOptions struct {
	Method  string
	Headers map[string]string
	Query   Query
	// Body is JSON-encoded unless it is an io.Reader (sent raw) or FormData
	// is set, in which case it must be a *Form or an io.Reader.
	Body     any
	Token    string
	FormData bool
}

var errFormBody = errors.New("form mode needs a *Form or io.Reader body")

// AuthHeader returns the bearer header for token.
func AuthHeader(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}

func isAbsoluteBase(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}

// resolve joins path onto base. A base without a scheme is a mount point
// on c.Origin.
func (c *Client) resolve(base, path string) (*url.URL, error) {
	joined := strings.TrimRight(base, "/") + path
	if isAbsoluteBase(base) {
		return url.Parse(joined)
	}
	origin, err := url.Parse(c.Origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", c.Origin, err)
	}
	if !origin.IsAbs() {
		return nil, fmt.Errorf("relative base %q needs an absolute origin, got %q", base, c.Origin)
	}
	ref, err := url.Parse(joined)
	if err != nil {
		return nil, err
	}
	return origin.ResolveReference(ref), nil
}

func encodeBody(opts RequestOptions) (io.Reader, string, error) {
	if opts.Body == nil {
		return nil, "", nil
	}
	if opts.FormData {
		switch b := opts.Body.(type) {
		case *Form:
			return b.Reader(), b.ContentType(), nil
		case io.Reader:
			return b, "", nil
		default:
			return nil, "", errFormBody
		}
	}
	if r, ok := opts.Body.(io.Reader); ok {
		return r, "", nil
	}
	b, err := json.Marshal(opts.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

type ridKey struct{}

// WithRequestID makes requests issued under ctx carry rid as X-Request-ID.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ridKey{}, rid)
}

// Do issues exactly one request to base+path and normalizes the response.
// The result is nil when the backend returned no content.
func (c *Client) Do(ctx context.Context, base, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := c.resolve(base, path)
	if err != nil {
		return nil, err
	}
	if qs := opts.Query.encode(); qs != "" {
		if u.RawQuery != "" {
			u.RawQuery += "&" + qs
		} else {
			u.RawQuery = qs
		}
	}

	body, contentType, err := encodeBody(opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	switch {
	case contentType == "application/json":
		req.Header.Set("Content-Type", contentType)
	case contentType != "" && req.Header.Get("Content-Type") == "":
		// multipart boundary, unless the caller already chose one
		req.Header.Set("Content-Type", contentType)
	}
	if req.Header.Get("X-Request-ID") == "" {
		rid, _ := ctx.Value(ridKey{}).(string)
		if rid == "" {
			rid = uuid.NewString()
		}
		req.Header.Set("X-Request-ID", rid)
	}

	route := routeOf(path)
	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.Metrics.Record(ctx, method, route, 0, time.Since(start))
		log.Printf("[xano] rid=%s %s %s failed: %v", req.Header.Get("X-Request-ID"), method, route, err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	c.Metrics.Record(ctx, method, route, res.StatusCode, time.Since(start))

	raw, err := normalize(res)
	if err != nil {
		log.Printf("[xano] rid=%s %s %s: %v", req.Header.Get("X-Request-ID"), method, route, err)
		return nil, err
	}
	return raw, nil
}

// routeOf replaces identifier segments so metrics stay low-cardinality.
func routeOf(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}
