package controllers

import (
	"net/http"
	"time"

	"github.com/trophyroom/backend/api/responses"
	identitysvc "github.com/trophyroom/backend/internal/identity"
	"github.com/trophyroom/backend/pkg/config"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
	"github.com/trophyroom/backend/pkg/session"
)

// SteamLogin redirects the browser to the identity provider.
func SteamLogin(svc identitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		loginURL, err := svc.LoginURL()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.Redirect(w, r, loginURL, http.StatusFound)
	}
}

// SteamCallback completes the sign-in: the browser lands here from the
// provider and always leaves with a redirect, never an error body.
func SteamCallback(svc identitysvc.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || cfg == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		record, reason, err := svc.HandleCallback(r.Context(), r.URL.Query())
		if reason != "" {
			if err != nil && logg != nil {
				logg.Error(r.Context(), "auth.callback.failed", err)
			}
			redirectLogin(w, r, cfg.App.BaseURL, reason)
			return
		}
		if err != nil || record == nil {
			if err != nil && logg != nil {
				logg.Error(r.Context(), "auth.callback.failed", err)
			}
			redirectLogin(w, r, cfg.App.BaseURL, identitysvc.ReasonVerificationFailed)
			return
		}

		token, err := session.Mint(cfg.Session, time.Now().UTC(), *record)
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "auth.callback.mint", err)
			}
			redirectLogin(w, r, cfg.App.BaseURL, identitysvc.ReasonVerificationFailed)
			return
		}

		session.WriteCookie(w, cfg.Session, token, cfg.App.IsProd())
		http.Redirect(w, r, cfg.App.BaseURL+"/", http.StatusFound)
	}
}

func redirectLogin(w http.ResponseWriter, r *http.Request, baseURL string, reason identitysvc.ErrorReason) {
	http.Redirect(w, r, baseURL+"/login?error="+string(reason), http.StatusFound)
}
