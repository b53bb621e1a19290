package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/bmi-calculator/internal/config"
	"github.com/yusufkecer/bmi-calculator/internal/db"
	"github.com/yusufkecer/bmi-calculator/internal/handler"
	"github.com/yusufkecer/bmi-calculator/internal/metrics"
	"github.com/yusufkecer/bmi-calculator/internal/middleware"
	"github.com/yusufkecer/bmi-calculator/internal/repository"
	"github.com/yusufkecer/bmi-calculator/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database); err != nil {
		return err
	}

	m := metrics.New()
	deps := routerDeps{
		accounts: repository.NewAccountRepository(database),
		users:    repository.NewUserRepository(database),
		metrics:  m,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type routerDeps struct {
	accounts handler.AccountStore
	users    handler.UserStore
	metrics  *metrics.Metrics
}

func newRouter(cfg *config.Config, deps routerDeps) *mux.Router {
	authHandler := handler.NewAuthHandler(cfg.JWTSecret, deps.accounts)
	userHandler := handler.NewUserHandler(deps.users)
	bmiHandler := handler.NewBMIHandler(deps.users, deps.metrics)

	// Rate limiters
	loginRL := middleware.NewRateLimiter("login", 5, 15*time.Minute).TrustForwardedFor(cfg.TrustProxy)
	bmiRL := middleware.NewRateLimiter("bmi", cfg.BMIRateLimit, time.Minute).TrustForwardedFor(cfg.TrustProxy)

	r := mux.NewRouter()

	// Global middleware: request ID → logging → CORS → security headers → body limit
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(deps.metrics))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodyBytes(1 << 20))

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/metrics", deps.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.Use(middleware.APIKeyMiddleware(cfg.APIKey))

	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", loginRL.Middleware(http.HandlerFunc(authHandler.Login))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/bmi", bmiRL.Middleware(http.HandlerFunc(bmiHandler.Compute))).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protected.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/users", userHandler.GetAll).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id:[0-9]+}", userHandler.GetByID).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id:[0-9]+}", userHandler.Update).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/users/{id:[0-9]+}/bmi", bmiHandler.ForUser).Methods(http.MethodGet, http.MethodOptions)

	return r
}
