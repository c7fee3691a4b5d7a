package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trophyroom/backend/api/routes"
	achievementssvc "github.com/trophyroom/backend/internal/achievements"
	"github.com/trophyroom/backend/internal/badge"
	gamessvc "github.com/trophyroom/backend/internal/games"
	identitysvc "github.com/trophyroom/backend/internal/identity"
	"github.com/trophyroom/backend/pkg/config"
	"github.com/trophyroom/backend/pkg/logger"
	"github.com/trophyroom/backend/pkg/metrics"
	"github.com/trophyroom/backend/pkg/redis"
	"github.com/trophyroom/backend/pkg/session"
	"github.com/trophyroom/backend/pkg/steam"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.Steam.APIKey == "" {
		logg.Warn(context.Background(), "steam api key not configured, keyed endpoints will return configuration errors")
	}

	upstreamMetrics := metrics.NewUpstreamMetrics(prometheus.DefaultRegisterer)

	steamClient := steam.NewClient(
		cfg.Steam.APIKey,
		steam.WithHTTPClient(&http.Client{Timeout: cfg.Steam.Timeout}),
		steam.WithAPIBaseURL(cfg.Steam.APIBaseURL),
		steam.WithStoreBaseURL(cfg.Steam.StoreBaseURL),
		steam.WithCommunityBaseURL(cfg.Steam.CommunityBaseURL),
		steam.WithMetrics(upstreamMetrics),
	)

	var denylist session.Denylist
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		denylist = redisClient
	}

	identityService, err := identitysvc.NewService(identitysvc.ServiceParams{
		Client:    steamClient,
		AppConfig: cfg.App,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	achievementsService, err := achievementssvc.NewService(steamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create achievements service", err)
		os.Exit(1)
	}

	gamesService, err := gamessvc.NewService(steamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create games service", err)
		os.Exit(1)
	}

	badgeRenderer, err := badge.NewRenderer()
	if err != nil {
		logg.Error(context.Background(), "failed to build badge renderer", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			steamClient,
			denylist,
			identityService,
			achievementsService,
			gamesService,
			badgeRenderer,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
