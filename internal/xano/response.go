package xano

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// normalize turns a response into nil (no content), the raw JSON body, or a
// *RequestError for any status outside 2xx.
func normalize(res *http.Response) (json.RawMessage, error) {
	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, err := io.ReadAll(res.Body)
		if err != nil {
			text = nil
		}
		return nil, newRequestError(res, string(text))
	}

	if res.StatusCode == http.StatusNoContent || res.Header.Get("Content-Length") == "0" || res.ContentLength == 0 {
		return nil, nil
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("decode response: %w", errInvalidJSON)
	}
	return json.RawMessage(b), nil
}

// absent reports whether raw carries no value.
func absent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decode[T any](raw json.RawMessage) (*T, error) {
	if absent(raw) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %T: %w", v, err)
	}
	return &v, nil
}
