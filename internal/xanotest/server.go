// Package xanotest runs an in-memory stand-in for the Xano backend.
package xanotest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MikeMC777/beyblade-store/internal/config"
)

const (
	StorePrefix = "/api:store"
	AuthPrefix  = "/api:auth"
	// DevPrefix is what a request through the dev mount looks like.
	DevPrefix = "/api"

	Password = "secret"
)

var resources = []string{
	"product", "product_category", "product_category_relation", "order",
	"order_item", "inventory", "address", "review",
}

type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	tables   map[string]map[int64]map[string]any
	users    map[string]map[string]any
	requests []Request
	failures map[string]int
	envelope bool
}

func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		tables:   map[string]map[int64]map[string]any{},
		users:    map[string]map[string]any{},
		failures: map[string]int{},
	}
	for _, r := range resources {
		s.tables[r] = map[int64]map[string]any{}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Config points a client at this server.
func (s *Server) Config() config.Config {
	return config.Config{
		AuthBaseURL:  s.URL + AuthPrefix,
		StoreBaseURL: s.URL + StorePrefix,
		DevMount:     DevPrefix,
		StoreOrigin:  s.URL,
		AppOrigin:    s.URL,
	}
}

// Fail makes every request to path (without prefix) answer status.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// SetListEnvelope makes list responses come back as {"items": [...]}.
func (s *Server) SetListEnvelope(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelope = on
}

// Seed stores a row and returns its id.
func (s *Server) Seed(resource string, row map[string]any) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(resource, row)
}

func (s *Server) SeedProducts(n int) {
	for i := 1; i <= n; i++ {
		s.Seed("product", map[string]any{
			"name": fmt.Sprintf("Beyblade %d", i), "brand": "Takara Tomy",
			"price": 12990, "stock_quantity": i,
		})
	}
}

func (s *Server) Row(resource string, id int64) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[resource][id]
}

func (s *Server) Count(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[resource])
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) insert(resource string, row map[string]any) int64 {
	s.nextID++
	id := s.nextID
	rec := map[string]any{}
	for k, v := range row {
		rec[k] = v
	}
	rec["id"] = id
	if _, ok := rec["created_at"]; !ok {
		rec["created_at"] = time.Now().UnixMilli()
	}
	s.tables[resource][id] = rec
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"code": "ERROR", "message": msg})
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	for _, p := range []string{StorePrefix, AuthPrefix, DevPrefix} {
		if strings.HasPrefix(path, p+"/") {
			path = strings.TrimPrefix(path, p)
			break
		}
	}

	var body []byte
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		body, _ = io.ReadAll(r.Body)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{
		Method: r.Method, Path: path, RawQuery: r.URL.RawQuery, Header: r.Header.Clone(), Body: body,
	})
	if status, ok := s.failures[path]; ok {
		writeError(w, status, "forced failure")
		return
	}

	switch {
	case strings.HasPrefix(path, "/auth/"):
		s.serveAuth(w, r, path, body)
	case path == "/upload/image":
		s.serveUpload(w, r)
	default:
		s.serveResource(w, r, path, body)
	}
}

func (s *Server) serveAuth(w http.ResponseWriter, r *http.Request, path string, body []byte) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	switch {
	case path == "/auth/login" && r.Method == http.MethodPost:
		_ = json.Unmarshal(body, &in)
		if _, ok := s.users[in.Email]; !ok || in.Password != Password {
			writeError(w, http.StatusUnauthorized, "Invalid Credentials.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"authToken": "tok-" + in.Email})
	case path == "/auth/signup" && r.Method == http.MethodPost:
		_ = json.Unmarshal(body, &in)
		if _, ok := s.users[in.Email]; ok {
			writeError(w, http.StatusBadRequest, "This account is already in use.")
			return
		}
		s.nextID++
		s.users[in.Email] = map[string]any{
			"id": s.nextID, "name": in.Name, "email": in.Email, "created_at": time.Now().UnixMilli(),
		}
		writeJSON(w, http.StatusOK, map[string]any{"authToken": "tok-" + in.Email})
	case path == "/auth/me" && r.Method == http.MethodGet:
		u, ok := s.users[strings.TrimPrefix(bearer(r), "tok-")]
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		writeJSON(w, http.StatusOK, u)
	default:
		writeError(w, http.StatusNotFound, "Unable to locate request.")
	}
}

// AddUser registers an account that can log in with Password.
func (s *Server) AddUser(name, email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.users[email] = map[string]any{"id": s.nextID, "name": name, "email": email, "created_at": time.Now().UnixMilli()}
	return "tok-" + email
}

func (s *Server) serveUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if bearer(r) == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	files := r.MultipartForm.File["content"]
	out := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		out = append(out, map[string]any{
			"access": "public",
			"path":   "/vault/" + fh.Filename,
			"name":   fh.Filename,
			"type":   "image",
			"size":   fh.Size,
			"mime":   fh.Header.Get("Content-Type"),
			"meta":   map[string]any{},
			"url":    s.URL + "/vault/" + fh.Filename,
		})
	}
	switch len(out) {
	case 0:
		w.WriteHeader(http.StatusNoContent)
	case 1:
		writeJSON(w, http.StatusOK, out[0])
	default:
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) serveResource(w http.ResponseWriter, r *http.Request, path string, body []byte) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	table, ok := s.tables[parts[0]]
	if !ok || len(parts) > 2 {
		writeError(w, http.StatusNotFound, "Unable to locate request.")
		return
	}
	if r.Method != http.MethodGet && bearer(r) == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.list(w, r, parts[0], table)
		case http.MethodPost:
			var row map[string]any
			if err := json.Unmarshal(body, &row); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid JSON.")
				return
			}
			id := s.insert(parts[0], row)
			writeJSON(w, http.StatusOK, table[id])
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	row, found := table[id]
	if err != nil || !found {
		writeError(w, http.StatusNotFound, "Not Found.")
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, row)
	case http.MethodPatch:
		var patch map[string]any
		if err := json.Unmarshal(body, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON.")
			return
		}
		for k, v := range patch {
			row[k] = v
		}
		writeJSON(w, http.StatusOK, row)
	case http.MethodDelete:
		delete(table, id)
		writeJSON(w, http.StatusOK, nil)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, name string, table map[int64]map[string]any) {
	ids := make([]int64, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	q := strings.ToLower(r.URL.Query().Get("q"))
	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		row := table[id]
		if name == "product" && q != "" && !strings.Contains(strings.ToLower(fmt.Sprint(row["name"])), q) {
			continue
		}
		rows = append(rows, row)
	}

	if name == "product" {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset > len(rows) {
			offset = len(rows)
		}
		rows = rows[offset:]
		if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit >= 0 && limit < len(rows) {
			rows = rows[:limit]
		}
	}

	if s.envelope {
		writeJSON(w, http.StatusOK, map[string]any{"items": rows, "itemsReceived": len(rows)})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
