package controllers

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trophyroom/backend/internal/badge"
	gamessvc "github.com/trophyroom/backend/internal/games"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
)

func testRenderer(t *testing.T) *badge.Renderer {
	t.Helper()
	renderer, err := badge.NewRenderer()
	if err != nil {
		t.Fatalf("building renderer: %v", err)
	}
	return renderer
}

func TestBadgeServesPNGWithCacheHeader(t *testing.T) {
	svc := &stubGamesService{summary: &gamessvc.Summary{ID: 620, Name: "Portal 2"}}
	handler := Badge(testRenderer(t), svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/steam/badge/620", nil)
	req = withURLParam(req, "id", "620")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := resp.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Fatalf("unexpected cache header %q", got)
	}
	if _, err := png.Decode(bytes.NewReader(resp.Body.Bytes())); err != nil {
		t.Fatalf("body is not a valid png: %v", err)
	}
}

func TestBadgeUsesGameNameOverride(t *testing.T) {
	svc := &stubGamesService{summaryErr: pkgerrors.New(pkgerrors.CodeNotFound, "app not found")}
	handler := Badge(testRenderer(t), svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/steam/badge/620?gameName=Portal+2", nil)
	req = withURLParam(req, "id", "620")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	// The override bypasses the store lookup, so its failure is irrelevant.
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Fatalf("unexpected cache header %q", got)
	}
}

func TestBadgeUnresolvableGameServesErrorVariant(t *testing.T) {
	svc := &stubGamesService{summaryErr: pkgerrors.New(pkgerrors.CodeNotFound, "app not found")}
	handler := Badge(testRenderer(t), svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/steam/badge/999999", nil)
	req = withURLParam(req, "id", "999999")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("error variant must not be cached, got %q", got)
	}
	img, err := png.Decode(bytes.NewReader(resp.Body.Bytes()))
	if err != nil {
		t.Fatalf("body is not a valid png: %v", err)
	}
	if img.Bounds().Dx() != 600 {
		t.Fatalf("expected the smaller error variant, got width %d", img.Bounds().Dx())
	}
}
