package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/trophyroom/backend/api/middleware"
	"github.com/trophyroom/backend/api/responses"
	"github.com/trophyroom/backend/api/validators"
	gamessvc "github.com/trophyroom/backend/internal/games"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
)

// GameDetail serves the store summary for one game.
func GameDetail(svc gamessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "games service unavailable"))
			return
		}

		appID, err := validators.ParseAppID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Detail(r.Context(), appID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// OwnedGames lists the caller's library. The steam id comes from the session
// or an explicit steamId query parameter; with neither the request is
// anonymous and gets a 401.
func OwnedGames(svc gamessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "games service unavailable"))
			return
		}

		steamID := strings.TrimSpace(r.URL.Query().Get("steamId"))
		if steamID == "" {
			steamID = middleware.SteamIDFromContext(r.Context())
		}
		if steamID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in or provide a steamId"))
			return
		}

		library, err := svc.Library(r.Context(), steamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, library)
	}
}
