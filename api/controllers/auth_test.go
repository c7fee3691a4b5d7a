package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	identitysvc "github.com/trophyroom/backend/internal/identity"
	"github.com/trophyroom/backend/pkg/config"
	"github.com/trophyroom/backend/pkg/session"
)

type stubIdentityService struct {
	loginURL    string
	loginErr    error
	record      *session.Record
	reason      identitysvc.ErrorReason
	callbackErr error
}

func (s *stubIdentityService) LoginURL() (string, error) {
	return s.loginURL, s.loginErr
}

func (s *stubIdentityService) HandleCallback(_ context.Context, _ url.Values) (*session.Record, identitysvc.ErrorReason, error) {
	return s.record, s.reason, s.callbackErr
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:     "development",
			Port:    "8080",
			BaseURL: "http://localhost:8080",
		},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			Issuer:     "trophyroom",
			CookieName: "trophyroom_session",
			TTLDays:    30,
		},
	}
}

func TestSteamLoginRedirectsToProvider(t *testing.T) {
	svc := &stubIdentityService{loginURL: "https://steamcommunity.com/openid/login?openid.mode=checkid_setup"}
	handler := SteamLogin(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/steam", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", resp.Code)
	}
	if got := resp.Header().Get("Location"); !strings.HasPrefix(got, "https://steamcommunity.com/openid/login") {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

func TestSteamCallbackCancelRedirectsWithoutCookie(t *testing.T) {
	svc := &stubIdentityService{reason: identitysvc.ReasonCancelled}
	handler := SteamCallback(svc, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/steam/callback?openid.mode=cancel", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", resp.Code)
	}
	if got := resp.Header().Get("Location"); got != "http://localhost:8080/login?error=cancelled" {
		t.Fatalf("unexpected redirect target %q", got)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("no cookie should be written on a cancelled attempt")
	}
}

func TestSteamCallbackVerificationFailureRedirects(t *testing.T) {
	svc := &stubIdentityService{reason: identitysvc.ReasonVerificationFailed}
	handler := SteamCallback(svc, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/steam/callback", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Location"); got != "http://localhost:8080/login?error=verification_failed" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

func TestSteamCallbackSuccessSetsCookieAndRedirectsHome(t *testing.T) {
	cfg := testConfig()
	svc := &stubIdentityService{record: &session.Record{
		SteamID:     "76561198067000000",
		PersonaName: "gordon",
		GameCount:   42,
		Level:       12,
	}}
	handler := SteamCallback(svc, cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/steam/callback", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", resp.Code)
	}
	if got := resp.Header().Get("Location"); got != "http://localhost:8080/" {
		t.Fatalf("unexpected redirect target %q", got)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cfg.Session.CookieName {
		t.Fatalf("expected session cookie, got %#v", cookies)
	}

	claims, err := session.Parse(cfg.Session, cookies[0].Value)
	if err != nil {
		t.Fatalf("cookie does not carry a valid token: %v", err)
	}
	if claims.SteamID != "76561198067000000" {
		t.Fatalf("unexpected steam id %q", claims.SteamID)
	}
}
