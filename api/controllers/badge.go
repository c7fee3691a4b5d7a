package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trophyroom/backend/api/responses"
	"github.com/trophyroom/backend/api/validators"
	"github.com/trophyroom/backend/internal/badge"
	gamessvc "github.com/trophyroom/backend/internal/games"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
)

// Badge renders the shareable completion image for a game. The game name is
// resolved from the store when not supplied, and the success variant is
// cached for an hour since it only changes with the game's name.
func Badge(renderer *badge.Renderer, gamesSvc gamessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if renderer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "badge renderer unavailable"))
			return
		}

		appID, err := validators.ParseAppID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gameName := validators.SanitizeString(r.URL.Query().Get("gameName"), 120)
		if gameName == "" && gamesSvc != nil {
			summary, err := gamesSvc.Detail(r.Context(), appID)
			if err != nil {
				if logg != nil {
					logg.Error(r.Context(), "badge.resolve_name", err)
				}
				writeErrorBadge(w, r, renderer, logg, "game not found")
				return
			}
			gameName = summary.Name
		}
		if gameName == "" {
			writeErrorBadge(w, r, renderer, logg, "game not found")
			return
		}

		data, err := renderer.Render(gameName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render badge"))
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func writeErrorBadge(w http.ResponseWriter, r *http.Request, renderer *badge.Renderer, logg *logger.Logger, message string) {
	data, err := renderer.RenderError(message)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render badge"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
