package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crewly/internal/aggregate"
	aggmetrics "crewly/internal/aggregate/metrics"
	"crewly/internal/classification/adapters"
	"crewly/internal/classification/handler"
	clsmetrics "crewly/internal/classification/metrics"
	"crewly/internal/classification/ports"
	"crewly/internal/classification/service"
	assessmentstore "crewly/internal/classification/store/assessment"
	factorstore "crewly/internal/classification/store/factor"
	"crewly/internal/platform/config"
	"crewly/internal/platform/httpserver"
	"crewly/internal/platform/logger"
	"crewly/internal/platform/postgres"
	platformredis "crewly/internal/platform/redis"
	"crewly/pkg/requestcontext"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		factors     service.FactorStore
		assessments service.AssessmentStore
		latest      aggregate.LatestAssessments
		timeSource  ports.TimeTrackingSource
		engagements ports.EngagementRegistry
		contractors ports.ContractorRegistry
	)

	if cfg.PostgresURL != "" {
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		astore := assessmentstore.NewPostgres(db)
		factors = factorstore.NewPostgres(db)
		assessments = astore
		latest = astore
		timeSource = adapters.NewPostgresTimeTracking(db)
		engagements = adapters.NewPostgresEngagements(db)
		contractors = adapters.NewPostgresContractors(db)
	} else {
		log.Warn("CREWLY_POSTGRES_URL not set, using in-memory stores")
		astore := assessmentstore.NewInMemory()
		factors = factorstore.NewInMemory()
		assessments = astore
		latest = astore
		timeSource = adapters.NewMemoryTimeTracking()
		engagements = adapters.NewMemoryEngagements()
		contractors = adapters.NewMemoryContractors()
	}

	svc := service.New(factors, assessments, timeSource, engagements, contractors,
		service.WithLogger(log),
		service.WithMetrics(clsmetrics.New()),
		service.WithWindow(cfg.AssessmentWindow),
		service.WithBatchWorkers(cfg.BatchWorkers),
	)

	builderOpts := []aggregate.BuilderOption{
		aggregate.WithLogger(log),
		aggregate.WithMetrics(aggmetrics.New()),
		aggregate.WithWindow(cfg.AssessmentWindow),
		aggregate.WithWorkers(cfg.BatchWorkers),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		builderOpts = append(builderOpts, aggregate.WithMirror(
			aggregate.NewMirror(redisClient, 2*cfg.RebuildInterval),
		))
	}

	builder := aggregate.NewBuilder(contractors, engagements, timeSource, latest, builderOpts...)
	if err := builder.RestoreFromMirror(ctx); err != nil {
		log.Info("no mirrored snapshot to restore", "error", err)
	}

	scheduler := aggregate.NewScheduler(builder, cfg.RebuildInterval, cfg.RebuildBudget, log)
	go func() {
		if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("aggregate scheduler stopped", "error", err)
		}
	}()

	h := handler.New(svc, builder, log)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestIDMiddleware)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Route("/v1", h.Register)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting crewly classification server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), requestID)))
	})
}
