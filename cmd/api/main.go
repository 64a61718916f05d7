// Package main is the entry point for the travel journal API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/adendl/traveljournalai/backend/internal/auth"
	"github.com/adendl/traveljournalai/backend/internal/config"
	"github.com/adendl/traveljournalai/backend/internal/handler"
	"github.com/adendl/traveljournalai/backend/internal/itinerary"
	"github.com/adendl/traveljournalai/backend/internal/middleware"
	"github.com/adendl/traveljournalai/backend/internal/repo"
	"github.com/adendl/traveljournalai/backend/internal/service"
	"github.com/adendl/traveljournalai/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a development convenience; in deployment the variables come
	// from the environment and the file is absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic. The database often
	// comes up alongside the API (compose, fresh deploys), so the ping retries
	// with exponential backoff rather than failing the whole process at once.
	backoff := retry.WithMaxRetries(5, retry.NewExponential(time.Second))
	err = retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		return retry.RetryableError(pool.Ping(ctx))
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// --- Dependencies -----------------------------------------------------
	verifier := auth.NewVerifier(cfg.JWTSecret, 0)
	client := itinerary.NewClient(itinerary.ClientConfig{
		Endpoint:       cfg.OpenAIEndpoint,
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.OpenAIModel,
		RequestTimeout: cfg.GenerationTimeout,
	})

	users := repo.NewUserRepo(pool)
	trips := repo.NewTripRepo(pool)
	journal := repo.NewJournalRepo(pool)

	userService := service.NewUserService(users, verifier)
	tripService := service.NewTripService(trips, users, verifier, client)
	journalService := service.NewJournalService(journal, itinerary.NewSummarizer(client))

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	server := handler.NewServer(userService, tripService, journalService)
	r.Mount("/", server.Routes(middleware.NewAuthenticator(verifier, users)))

	// --- HTTP Server ------------------------------------------------------
	// Itinerary generation is synchronous and slow, so the write timeout has
	// to outlast a full generation call. Read and idle stay tight.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations. goose needs database/sql, so it
// gets its own short-lived connection rather than borrowing from the pool.
func migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
