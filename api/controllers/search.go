package controllers

import (
	"net/http"

	"github.com/trophyroom/backend/api/middleware"
	"github.com/trophyroom/backend/api/responses"
	"github.com/trophyroom/backend/api/validators"
	gamessvc "github.com/trophyroom/backend/internal/games"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
)

// SearchGames filters the app catalog by name. Signed-in callers get an
// ownership marker on each result.
func SearchGames(gamesSvc gamessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gamesSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "games service unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("query"), 120)
		if err := validators.ValidateStruct(validators.SearchQuery{Query: query}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var owned map[int]bool
		if steamID := middleware.SteamIDFromContext(r.Context()); steamID != "" {
			library, err := gamesSvc.Library(r.Context(), steamID)
			if err != nil {
				// Ownership is a decoration; the search still works without it.
				if logg != nil {
					logg.Warn(r.Context(), "search.ownership.unavailable")
				}
			} else {
				owned = make(map[int]bool, len(library))
				for _, entry := range library {
					owned[entry.AppID] = true
				}
			}
		}

		results, err := gamesSvc.Search(r.Context(), query, owned)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, results)
	}
}
