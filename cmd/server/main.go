package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	jwttoken "persondir/internal/jwt_token"
	personhandler "persondir/internal/person/handler"
	personmetrics "persondir/internal/person/metrics"
	"persondir/internal/person/service"
	"persondir/internal/person/store"
	"persondir/internal/platform/config"
	"persondir/internal/platform/httpserver"
	"persondir/internal/platform/logger"
	"persondir/internal/platform/middleware"
	platformredis "persondir/internal/platform/redis"
	"persondir/pkg/platform/audit/publisher"
	auditmemory "persondir/pkg/platform/audit/store/memory"
)

// main wires the process: config, logger, storage, cache, audit, metrics,
// service, router, and the server lifecycle. Business logic lives in the
// internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := personmetrics.New()

	persons, cleanup, err := buildStore(ctx, cfg, log, m)
	if err != nil {
		return err
	}
	defer cleanup()

	auditPublisher := publisher.NewPublisher(
		auditmemory.NewInMemoryStore(),
		publisher.WithAsyncBuffer(256),
		publisher.WithLogger(log),
	)
	defer auditPublisher.Close()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "persondir", "persondir-api")

	svc := service.NewPersonService(persons,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(auditPublisher),
	)

	router := chi.NewRouter()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Timeout(30*time.Second),
		middleware.ContentTypeJSON,
	)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	personhandler.NewHandler(log, svc, jwttoken.NewJWTServiceAdapter(jwtService)).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting persondir", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildStore selects the persistence backend. A postgres DSN enables durable
// storage, optionally fronted by a redis cache; without one the directory
// runs on the in-memory store (development mode).
func buildStore(ctx context.Context, cfg config.Server, log *slog.Logger, m *personmetrics.Metrics) (service.PersonStore, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Warn("no postgres DSN configured, using in-memory store")
		return store.NewInMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	var persons service.PersonStore = store.NewPostgres(db)
	cleanup := func() { db.Close() }

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if redisClient != nil {
		log.Info("redis cache enabled", "ttl", cfg.CacheTTL.String())
		persons = store.NewCached(persons, redisClient.Client, cfg.CacheTTL, log, m)
		cleanup = func() {
			redisClient.Close()
			db.Close()
		}
	}

	return persons, cleanup, nil
}
