package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"console/internal/backend"
	"console/internal/http/handlers"
	httpapi "console/internal/http/httpapi"
	"console/internal/infra"
	"console/internal/infra/geoip"
	"console/internal/middleware"
	"console/internal/session"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	// A nil *Resolver must not end up inside the interface.
	var geo geoip.Locator
	if resolver != nil {
		geo = resolver
		defer resolver.Close()
	}

	client, err := backend.NewClient(backend.Options{
		BaseURL:        cfg.APIBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.APITimeout,
		RequestID:      middleware.RequestIDFromContext,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid backend configuration")
	}

	sessions := session.NewCookieStore(cfg.SessionCookieName, cfg.SessionCookieSecure, cfg.SessionTTL)
	app := handlers.NewApp(client, sessions, logger, geo, cfg.PageSize)

	router := httpapi.NewRouter(app, logger, httpapi.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		LoginPerMinute: cfg.LoginRateLimit,
		DefaultLocale:  cfg.DefaultLocale,
	})

	server := infra.NewHTTPServer(cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("backend", client.BaseURL()).Msgf("console listening on :%s", cfg.Port)
	if err := server.Run(ctx, cfg.ShutdownTimeout); err != nil {
		logger.Fatal().Err(err).Msg("http server failed")
	}
	logger.Info().Msg("server stopped")
}
