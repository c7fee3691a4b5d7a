package middleware

import (
	"net/http"

	"github.com/trophyroom/backend/api/responses"
	"github.com/trophyroom/backend/pkg/config"
	pkgerrors "github.com/trophyroom/backend/pkg/errors"
	"github.com/trophyroom/backend/pkg/logger"
	"github.com/trophyroom/backend/pkg/session"
)

// Auth validates the session cookie and seeds the request context with the
// claims. A nil denylist skips the revocation check.
func Auth(cfg config.SessionConfig, denylist session.Denylist, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.ReadCookie(r, cfg)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := session.Parse(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session"))
				return
			}

			if denylist != nil && claims.ID != "" {
				revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if revoked {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session revoked"))
					return
				}
			}

			ctx := WithSession(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithSteamID(ctx, claims.SteamID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds claims when a valid cookie is present but lets anonymous
// requests through. Endpoints that merely personalize a public view use this.
func OptionalAuth(cfg config.SessionConfig, denylist session.Denylist, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.ReadCookie(r, cfg)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := session.Parse(cfg, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if denylist != nil && claims.ID != "" {
				if revoked, err := denylist.IsRevoked(r.Context(), claims.ID); err != nil || revoked {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := WithSession(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithSteamID(ctx, claims.SteamID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
