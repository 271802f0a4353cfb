package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/shootdesk/shootdesk-api/internal/config"
	"github.com/shootdesk/shootdesk-api/internal/domain/booking"
	"github.com/shootdesk/shootdesk-api/internal/domain/crew"
	"github.com/shootdesk/shootdesk-api/internal/domain/dashboard"
	"github.com/shootdesk/shootdesk-api/internal/domain/organization"
	"github.com/shootdesk/shootdesk-api/internal/domain/session"
	"github.com/shootdesk/shootdesk-api/internal/domain/shoot"
	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/database"
	"github.com/shootdesk/shootdesk-api/internal/pkg/jwt"
	"github.com/shootdesk/shootdesk-api/internal/pkg/logger"
	"github.com/shootdesk/shootdesk-api/internal/pkg/metrics"
	pkgresponse "github.com/shootdesk/shootdesk-api/internal/pkg/response"
	"github.com/shootdesk/shootdesk-api/internal/pkg/storage"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Str("env", cfg.Env).Msg("Invalid configuration")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting ShootDesk API")

	db, err := database.NewPostgres(cfg.DatabaseURL, database.DefaultPool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	var sessionStore session.Store
	if redis != nil {
		sessionStore = session.NewRedisStore(redis)
	}

	store, err := storage.New(context.Background(), storage.Config{
		Driver:      cfg.StorageDriver,
		LocalPath:   cfg.LocalStoragePath,
		LocalURL:    cfg.LocalStorageURL,
		S3Endpoint:  cfg.S3Endpoint,
		S3Region:    cfg.S3Region,
		S3Bucket:    cfg.S3Bucket,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
		S3PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to create export storage")
	}

	if cfg.MetricsEnabled {
		metrics.Register()
	}

	jwtService := jwt.NewService(cfg.SessionSecret, cfg.SessionTTL)
	sessionService := session.NewService(jwtService, sessionStore, organization.NewRepository(db))

	r := newRouter(cfg, db, store, sessionService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// newRouter wires repositories, services and handlers onto the HTTP routes
func newRouter(cfg *config.Config, db *sqlx.DB, store storage.Storage, sessions *session.Service) http.Handler {
	// ---------- Repositories ----------
	bookingRepo := booking.NewRepository(db)
	shootRepo := shoot.NewRepository(db)
	crewRepo := crew.NewRepository(db)

	// ---------- Services ----------
	bookingService := booking.NewService(bookingRepo, store, booking.Paging{
		DefaultPerPage: cfg.DefaultPerPage,
		MaxPerPage:     cfg.MaxPerPage,
	})
	shootService := shoot.NewService(shootRepo)
	dashboardService := dashboard.NewService(bookingService)

	// ---------- Handlers ----------
	bookingHandler := booking.NewHandler(bookingService)
	shootHandler := shoot.NewHandler(shootService)
	crewHandler := crew.NewHandler(crewRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	sessionHandler := session.NewHandler(sessions)

	sessionMiddleware := middleware.Session(sessions)
	orgMiddleware := func(next http.Handler) http.Handler {
		return sessionMiddleware(middleware.RequireOrganization(next))
	}
	exportLimit := middleware.RateLimitByOrganization(middleware.RateLimitConfig{
		RPS:   cfg.ExportRateLimitRPS,
		Burst: cfg.ExportRateLimitBurst,
	})

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := database.Stats(db)
		pkgresponse.OK(w, map[string]interface{}{
			"status":           "ok",
			"version":          version,
			"open_connections": stats.OpenConnections,
		})
	})

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	if local, ok := store.(*storage.LocalStorage); ok {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(local.Root()))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/bookings", bookingHandler.Routes(orgMiddleware, exportLimit))
		r.Mount("/shoots", shootHandler.Routes(orgMiddleware))
		r.Mount("/crews", crewHandler.Routes(orgMiddleware))
		r.Mount("/dashboard", dashboard.Routes(dashboardHandler, orgMiddleware))
		r.Mount("/session", sessionHandler.Routes(sessionMiddleware))
	})

	return r
}
