package session

import (
	"net/http"

	"github.com/trophyroom/backend/pkg/config"
)

// WriteCookie sets the session cookie as a bearer credential: httpOnly so
// scripts never see it, Lax so the provider's top-level callback redirect
// still carries it.
func WriteCookie(w http.ResponseWriter, cfg config.SessionConfig, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie immediately.
func ClearCookie(w http.ResponseWriter, cfg config.SessionConfig, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie extracts the raw session token from the request, or "" when the
// cookie is absent.
func ReadCookie(r *http.Request, cfg config.SessionConfig) string {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
