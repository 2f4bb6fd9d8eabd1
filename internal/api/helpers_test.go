// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/cinemora/internal/audit"
	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/authz"
	"github.com/tomtom215/cinemora/internal/cache"
	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/database"
	"github.com/tomtom215/cinemora/internal/models"
	"github.com/tomtom215/cinemora/internal/tvmaze"
	ws "github.com/tomtom215/cinemora/internal/websocket"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

// testDBSemaphore serializes DuckDB instances across parallel tests.
var testDBSemaphore = make(chan struct{}, 1)

type testEnv struct {
	t       *testing.T
	db      *database.DB
	cache   *cache.Cache
	jwt     *auth.JWTManager
	api     *Handler
	hub     *ws.Hub
	audit   *audit.Logger
	handler http.Handler
}

type envOption func(*config.Config, **tvmaze.Client)

func withTVMaze(baseURL string) envOption {
	return func(cfg *config.Config, client **tvmaze.Client) {
		cfg.TVMaze.BaseURL = baseURL
		*client = tvmaze.NewClient(&cfg.TVMaze, nil)
	}
}

func withRateLimit(requests int) envOption {
	return func(cfg *config.Config, _ **tvmaze.Client) {
		cfg.Security.RateLimitReqs = requests
		cfg.Security.RateLimitDisabled = false
	}
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{DefaultPageSize: 10, MaxPageSize: 100},
		Security: config.SecurityConfig{
			JWTSecret:         testSecret,
			SessionTimeout:    time.Hour,
			BcryptCost:        bcrypt.MinCost,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"http://localhost:5173"},
		},
		TVMaze: config.TVMazeConfig{
			SearchTimeout: 5 * time.Second,
			PageTimeout:   5 * time.Second,
			CacheTTL:      time.Minute,
			UserAgent:     "cinemora-test",
		},
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := testConfig()
	var tvm *tvmaze.Client
	for _, opt := range opts {
		opt(cfg, &tvm)
	}

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.RunWithContext(ctx) }()
	t.Cleanup(cancel)

	// The logger is not served; tests drain it with Flush.
	auditLogger := audit.NewLogger(audit.NewMemoryStore(1000), &config.AuditConfig{
		Enabled: true, Retention: time.Hour, CleanupInterval: time.Hour, BufferSize: 100,
	})

	c := cache.New(time.Minute)
	h := NewHandler(db, c, jwtManager, tvm, cfg, hub)
	h.SetAuditLogger(auditLogger)
	router := NewRouter(h, auth.NewMiddleware(jwtManager), authz.NewMiddleware(enforcer),
		NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	return &testEnv{t: t, db: db, cache: c, jwt: jwtManager, api: h, hub: hub, audit: auditLogger, handler: router.SetupChi()}
}

// do sends a request through the full router. body may be nil, a string
// or any value encodable as JSON.
func (e *testEnv) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// user creates an account directly in the store and returns it with a
// token.
func (e *testEnv) user(name, email, role string) (*models.User, string) {
	e.t.Helper()
	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		e.t.Fatalf("HashPassword() error = %v", err)
	}
	u, err := e.db.CreateUser(context.Background(), name, email, hash, role)
	if err != nil {
		e.t.Fatalf("CreateUser() error = %v", err)
	}
	token, err := e.jwt.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		e.t.Fatalf("GenerateToken() error = %v", err)
	}
	return u, token
}

func (e *testEnv) series(title string, genres ...string) *models.Series {
	e.t.Helper()
	s, err := e.db.CreateSeries(context.Background(), models.SeriesInput{Title: &title, Genres: genres})
	if err != nil {
		e.t.Fatalf("CreateSeries() error = %v", err)
	}
	return s
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	expectStatus(t, rec, status)
	body := decode[ErrorResponse](t, rec)
	if body.Message != message {
		t.Errorf("message = %q, want %q", body.Message, message)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
