package controllers

import (
	"net/http"
	"time"

	"github.com/trophyroom/backend/api/middleware"
	"github.com/trophyroom/backend/api/responses"
	"github.com/trophyroom/backend/pkg/config"
	"github.com/trophyroom/backend/pkg/logger"
	"github.com/trophyroom/backend/pkg/session"
)

type playerPayload struct {
	SteamID     string `json:"steamId"`
	PersonaName string `json:"personaName"`
	Avatar      string `json:"avatar"`
	GameCount   int    `json:"gameCount"`
	Level       int    `json:"level"`
}

type mePayload struct {
	IsLoggedIn bool           `json:"isLoggedIn"`
	Player     *playerPayload `json:"player,omitempty"`
}

// AuthMe reports the session state. Anonymous requests get a 200 with
// isLoggedIn=false rather than a 401: the frontend polls this on every page.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.SessionFromContext(r.Context())
		if claims == nil {
			responses.WriteSuccess(w, mePayload{IsLoggedIn: false})
			return
		}

		responses.WriteSuccess(w, mePayload{
			IsLoggedIn: true,
			Player: &playerPayload{
				SteamID:     claims.SteamID,
				PersonaName: claims.PersonaName,
				Avatar:      claims.Avatar,
				GameCount:   claims.GameCount,
				Level:       claims.Level,
			},
		})
	}
}

// AuthLogout clears the session cookie. Idempotent: a request without a
// valid session still gets a 200. With a denylist wired, the token id is
// revoked for its remaining lifetime so the cleared cookie cannot be
// replayed.
func AuthLogout(cfg *config.Config, denylist session.Denylist, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := session.ReadCookie(r, cfg.Session); token != "" && denylist != nil {
			if claims, err := session.Parse(cfg.Session, token); err == nil && claims.ID != "" {
				ttl := time.Duration(0)
				if claims.ExpiresAt != nil {
					ttl = time.Until(claims.ExpiresAt.Time)
				}
				if err := denylist.Revoke(r.Context(), claims.ID, ttl); err != nil && logg != nil {
					logg.Error(r.Context(), "auth.logout.revoke", err)
				}
			}
		}

		session.ClearCookie(w, cfg.Session, cfg.App.IsProd())
		responses.WriteSuccess(w, map[string]string{"message": "logged out"})
	}
}
