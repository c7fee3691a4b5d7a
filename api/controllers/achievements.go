package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/trophyroom/backend/api/middleware"
	"github.com/trophyroom/backend/api/responses"
	"github.com/trophyroom/backend/api/validators"
	achievementssvc "github.com/trophyroom/backend/internal/achievements"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
)

// GameAchievements serves the merged achievement list for a game. When the
// caller is signed in (or passes steamId) the descriptors carry per-player
// completion; otherwise they are schema + rarity only.
func GameAchievements(svc achievementssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "achievements service unavailable"))
			return
		}

		appID, err := validators.ParseAppID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		steamID := strings.TrimSpace(r.URL.Query().Get("steamId"))
		if steamID == "" {
			steamID = middleware.SteamIDFromContext(r.Context())
		}

		list, err := svc.ListForGame(r.Context(), appID, steamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PlayerAchievements serves raw per-player completion records. Both
// parameters are required; a missing one yields a 400 naming the field.
func PlayerAchievements(svc achievementssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "achievements service unavailable"))
			return
		}

		params := validators.PlayerAchievementsQuery{
			SteamID: strings.TrimSpace(r.URL.Query().Get("steamId")),
			AppID:   strings.TrimSpace(r.URL.Query().Get("appId")),
		}
		if err := validators.ValidateStruct(params); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appID, err := strconv.Atoi(params.AppID)
		if err != nil || appID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "app id must be a positive integer").WithDetails(map[string]any{"field": "appId"}))
			return
		}

		records, err := svc.PlayerRecords(r.Context(), params.SteamID, appID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records)
	}
}
