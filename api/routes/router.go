package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trophyroom/backend/api/controllers"
	"github.com/trophyroom/backend/api/middleware"
	achievementssvc "github.com/trophyroom/backend/internal/achievements"
	"github.com/trophyroom/backend/internal/badge"
	gamessvc "github.com/trophyroom/backend/internal/games"
	identitysvc "github.com/trophyroom/backend/internal/identity"
	"github.com/trophyroom/backend/pkg/config"
	"github.com/trophyroom/backend/pkg/logger"
	"github.com/trophyroom/backend/pkg/session"
	"github.com/trophyroom/backend/pkg/steam"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	steamClient *steam.Client,
	denylist session.Denylist,
	identityService identitysvc.Service,
	achievementsService achievementssvc.Service,
	gamesService gamessvc.Service,
	badgeRenderer *badge.Renderer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/steam", controllers.SteamLogin(identityService, logg))
		r.Get("/steam/callback", controllers.SteamCallback(identityService, cfg, logg))
		r.With(middleware.OptionalAuth(cfg.Session, denylist, logg)).Get("/me", controllers.AuthMe(logg))
		r.Post("/logout", controllers.AuthLogout(cfg, denylist, logg))
		r.Get("/logout", controllers.AuthLogout(cfg, denylist, logg))
	})

	r.Route("/api/steam", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.Session, denylist, logg))

		r.Get("/game/{id}", controllers.GameDetail(gamesService, logg))
		r.Get("/achievements/{id}", controllers.GameAchievements(achievementsService, logg))
		r.Get("/player-achievements", controllers.PlayerAchievements(achievementsService, logg))
		r.Get("/owned-games", controllers.OwnedGames(gamesService, logg))
		r.Get("/search", controllers.SearchGames(gamesService, logg))
		r.Get("/badge/{id}", controllers.Badge(badgeRenderer, gamesService, logg))
		r.Get("/status", controllers.SteamStatus(steamClient, logg))
	})

	return r
}
