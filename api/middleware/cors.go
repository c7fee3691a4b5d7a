package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/trophyroom/backend/pkg/config"
)

// CORS returns middleware that allows the configured app origin. Credentials
// stay enabled because the session rides in a cookie.
func CORS(cfg config.AppConfig) func(http.Handler) http.Handler {
	origin, err := cfg.Origin()
	if err != nil {
		origin = cfg.BaseURL
	}
	origins := []string{origin}
	if cfg.IsDev() {
		origins = append(origins, "http://localhost:3000")
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
