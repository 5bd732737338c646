package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubhousefc/backend/internal/router"
	"github.com/clubhousefc/backend/pkg/config"
	"github.com/clubhousefc/backend/pkg/firebase"
	"github.com/clubhousefc/backend/pkg/logger"
	"github.com/clubhousefc/backend/pkg/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLogger := logger.New("clubhouse", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.TracingConfig{
		Endpoint:    cfg.OTELEndpoint,
		ServiceName: cfg.OTELServiceName,
		Environment: cfg.Env,
		SampleRatio: cfg.OTELSampleRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Firebase is optional; without credentials only local tokens are accepted
	firebaseAuth, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		if !errors.Is(err, firebase.ErrNotConfigured) {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		appLogger.Info("Firebase not configured, firebase login disabled")
	}

	deps, cleanup, err := router.Build(ctx, cfg, db, firebaseAuth, appLogger)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer cleanup()

	e := router.New(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(e, "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("graceful shutdown: %v", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		appLogger.Errorf("tracer shutdown: %v", err)
	}
}
