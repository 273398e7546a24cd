package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/schooldesk/neis-dashboard/internal/chrono"
	"github.com/schooldesk/neis-dashboard/internal/config"
	"github.com/schooldesk/neis-dashboard/internal/delivery/httpd"
	"github.com/schooldesk/neis-dashboard/internal/repository"
	"github.com/schooldesk/neis-dashboard/internal/service"
	"github.com/schooldesk/neis-dashboard/internal/service/integration"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
	events integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	neisClient := integration.NewNeisClient(
		cfg.Neis.BaseURL,
		cfg.Neis.APIKey,
		cfg.Neis.Timeout,
		log,
	)

	// The institutional code pair is resolved exactly once; without it no
	// per-school query can be addressed, so failure here is fatal.
	resolveCtx, cancel := context.WithTimeout(context.Background(), cfg.Neis.Timeout)
	defer cancel()

	identity, err := neisClient.ResolveSchool(resolveCtx, cfg.Neis.SchoolName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve school identity: %w", err)
	}

	log.Info().
		Str("school_name", cfg.Neis.SchoolName).
		Str("office_code", identity.OfficeCode).
		Str("school_code", identity.SchoolCode).
		Msg("School identity resolved")

	events, err := integration.NewRabbitMQClient(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RoutingKey,
		cfg.RabbitMQ.QueueName,
		log,
	)
	if err != nil {
		// The dashboard works fine without the broker; publishing is optional.
		log.Error().Err(err).Msg("Failed to create RabbitMQ client, continuing without event publishing")
	}

	clock := chrono.StandardClock{}

	assessmentRepo := repository.NewAssessmentRepository(db, log)

	assessmentService := service.NewAssessmentService(assessmentRepo, events, clock, log)
	dashboardService := service.NewDashboardService(neisClient, identity, cfg.Neis, clock, log)

	handler, err := httpd.NewHandler(dashboardService, assessmentService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
		db:     db,
		events: events,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting school dashboard on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down school dashboard...")

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
