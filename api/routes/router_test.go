package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	achievementssvc "github.com/trophyroom/backend/internal/achievements"
	"github.com/trophyroom/backend/internal/badge"
	gamessvc "github.com/trophyroom/backend/internal/games"
	identitysvc "github.com/trophyroom/backend/internal/identity"
	"github.com/trophyroom/backend/pkg/config"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/session"
	"github.com/trophyroom/backend/pkg/steam"
)

type stubIdentityService struct{}

func (stubIdentityService) LoginURL() (string, error) {
	return "https://steamcommunity.com/openid/login", nil
}

func (stubIdentityService) HandleCallback(context.Context, url.Values) (*session.Record, identitysvc.ErrorReason, error) {
	return nil, identitysvc.ReasonVerificationFailed, nil
}

type stubAchievementsService struct{}

func (stubAchievementsService) ListForGame(context.Context, int, string) ([]achievementssvc.Descriptor, error) {
	return []achievementssvc.Descriptor{}, nil
}

func (stubAchievementsService) PlayerRecords(context.Context, string, int) ([]steam.PlayerAchievement, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no records")
}

type stubGamesService struct{}

func (stubGamesService) Detail(context.Context, int) (*gamessvc.Summary, error) {
	return &gamessvc.Summary{ID: 620, Name: "Portal 2"}, nil
}

func (stubGamesService) Library(context.Context, string) ([]gamessvc.LibraryEntry, error) {
	return nil, nil
}

func (stubGamesService) Search(context.Context, string, map[int]bool) ([]gamessvc.SearchResult, error) {
	return []gamessvc.SearchResult{}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
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

	renderer, err := badge.NewRenderer()
	if err != nil {
		t.Fatalf("building renderer: %v", err)
	}

	return NewRouter(
		cfg,
		nil,
		steam.NewClient(""),
		nil,
		stubIdentityService{},
		stubAchievementsService{},
		stubGamesService{},
		renderer,
	)
}

func TestRouterWiring(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/auth/steam", http.StatusFound},
		{http.MethodGet, "/api/auth/steam/callback", http.StatusFound},
		{http.MethodGet, "/api/auth/me", http.StatusOK},
		{http.MethodPost, "/api/auth/logout", http.StatusOK},
		{http.MethodGet, "/api/auth/logout", http.StatusOK},
		{http.MethodGet, "/api/steam/game/620", http.StatusOK},
		{http.MethodGet, "/api/steam/achievements/620", http.StatusOK},
		{http.MethodGet, "/api/steam/search?query=portal", http.StatusOK},
		{http.MethodGet, "/api/steam/owned-games", http.StatusUnauthorized},
		{http.MethodGet, "/api/steam/player-achievements", http.StatusBadRequest},
		{http.MethodGet, "/api/steam/badge/620", http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Errorf("%s %s: expected %d got %d", tc.method, tc.path, tc.want, resp.Code)
		}
	}
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/steam/unknown", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
