package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trophyroom/backend/pkg/config"
	"github.com/trophyroom/backend/pkg/session"
)

type stubDenylist struct {
	revoked bool
	err     error
}

func (s stubDenylist) Revoke(_ context.Context, _ string, _ time.Duration) error {
	return s.err
}

func (s stubDenylist) IsRevoked(_ context.Context, _ string) (bool, error) {
	return s.revoked, s.err
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		Issuer:     "trophyroom",
		CookieName: "trophyroom_session",
		TTLDays:    30,
	}
}

func mintTestCookie(t *testing.T, cfg config.SessionConfig, steamID string) *http.Cookie {
	t.Helper()
	token, err := session.Mint(cfg, time.Now(), session.Record{SteamID: steamID, PersonaName: "gordon"})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return &http.Cookie{Name: cfg.CookieName, Value: token}
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	cfg := testSessionConfig()
	handler := Auth(cfg, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsTamperedCookie(t *testing.T) {
	cfg := testSessionConfig()
	handler := Auth(cfg, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "not-a-jwt"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsSessionContext(t *testing.T) {
	cfg := testSessionConfig()

	var captured string
	handler := Auth(cfg, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SteamIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(mintTestCookie(t, cfg, "76561198067000000"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != "76561198067000000" {
		t.Fatalf("expected steam id in context, got %q", captured)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testSessionConfig()
	handler := Auth(cfg, stubDenylist{revoked: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(mintTestCookie(t, cfg, "76561198067000000"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSurfacesDenylistFailure(t *testing.T) {
	cfg := testSessionConfig()
	handler := Auth(cfg, stubDenylist{err: errors.New("redis down")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(mintTestCookie(t, cfg, "76561198067000000"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestOptionalAuthPassesAnonymousThrough(t *testing.T) {
	cfg := testSessionConfig()

	var captured string
	handler := OptionalAuth(cfg, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SteamIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != "" {
		t.Fatalf("expected anonymous context, got %q", captured)
	}
}

func TestOptionalAuthSeedsValidSession(t *testing.T) {
	cfg := testSessionConfig()

	var captured string
	handler := OptionalAuth(cfg, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SteamIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(mintTestCookie(t, cfg, "76561198067000000"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if captured != "76561198067000000" {
		t.Fatalf("expected steam id in context, got %q", captured)
	}
}
