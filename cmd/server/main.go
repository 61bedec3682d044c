package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/otcheredev/remedium-hms/internal/authz"
	"github.com/otcheredev/remedium-hms/internal/cache"
	"github.com/otcheredev/remedium-hms/internal/config"
	"github.com/otcheredev/remedium-hms/internal/database"
	"github.com/otcheredev/remedium-hms/internal/handlers"
	"github.com/otcheredev/remedium-hms/internal/metrics"
	"github.com/otcheredev/remedium-hms/internal/middleware"
	"github.com/otcheredev/remedium-hms/internal/repository"
	"github.com/otcheredev/remedium-hms/internal/services"
	"github.com/otcheredev/remedium-hms/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hms",
		Short:         "Hospital management back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(provisionRolesCmd())
	rootCmd.AddCommand(userCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// setup loads configuration, initializes logging and opens the database.
func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newCache(cfg *config.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		log.Info().Msg("Cache disabled, permission sets resolved per request")
		return nil, nil
	}
	c, err := cache.New(cache.Options{
		Type:          cfg.Cache.Type,
		RedisAddr:     cfg.Redis.Addr(),
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	log.Info().Str("type", cfg.Cache.Type).Msg("Cache initialized")
	return c, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer database.Close(db)
	log.Info().Msg("Starting HMS API")

	cacheImpl, err := newCache(cfg)
	if err != nil {
		return err
	}
	if cacheImpl != nil {
		defer cacheImpl.Close()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(nil)
	}

	rbacRepo := repository.NewRBACRepository(db)
	authorizer := authz.NewAuthorizer(rbacRepo, cacheImpl, cfg.Cache.PermissionTTL)
	if cacheImpl != nil && !authorizer.SharedCache() {
		log.Info().Dur("ttl", authz.LocalCacheTTL).Msg("Permission sets cached per process")
	}
	tokens := authz.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	svc := services.New(repository.NewStores(db), services.Deps{
		Lookup:  repository.NewLookup(db),
		Audit:   repository.NewAuditRepository(db),
		Metrics: m,
	})

	checks := []handlers.Check{{Name: "database", Ping: func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}}}
	if pinger, ok := cacheImpl.(interface{ Ping(context.Context) error }); ok {
		checks = append(checks, handlers.Check{Name: "cache", Ping: pinger.Ping})
	}
	healthHandler := handlers.NewHealthHandler(checks...)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	if m != nil {
		r.Use(middleware.Metrics(m))
	}
	r.Use(chimiddleware.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	if m != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.With(middleware.Authenticate(tokens)).Mount("/api/v1", handlers.NewAPI(svc, authorizer))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}
