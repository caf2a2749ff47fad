package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/inventra/inventra-backend/internal/aiscan"
	"github.com/inventra/inventra-backend/internal/api/middleware"
	"github.com/inventra/inventra-backend/internal/api/rest"
	"github.com/inventra/inventra-backend/internal/api/websocket"
	"github.com/inventra/inventra-backend/internal/automation"
	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/notifications"
	"github.com/inventra/inventra-backend/internal/pkg/logger"
	"github.com/inventra/inventra-backend/internal/pkg/tracing"
	"github.com/inventra/inventra-backend/internal/repository"
	"github.com/inventra/inventra-backend/internal/service"
	"github.com/inventra/inventra-backend/migrations"
)

func main() {
	log := logger.StdLogger()
	log.Info("inventra backend starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log.Info("configuration loaded", "port", cfg.Port, "db", cfg.DatabasePath)

	if cfg.OTLPEndpoint != "" {
		shutdownTracing, err := tracing.Init("inventra-backend", cfg.OTLPEndpoint, cfg.TraceSamplingRate)
		if err != nil {
			log.Warn("tracing disabled", "error", err)
		} else {
			defer shutdownTracing()
			log.Info("tracing initialized", "endpoint", cfg.OTLPEndpoint)
		}
	}

	repo, err := repository.NewSQLiteRepository(cfg.DatabasePath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	schema, err := migrations.FS.ReadFile("001_initial_schema.sql")
	if err != nil {
		log.Error("failed to read embedded migration", "error", err)
		os.Exit(1)
	}
	if err := repo.RunMigrations(string(schema)); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("database migrations completed")

	// Inventory tables can be served from PostgreSQL; everything else stays
	// on the embedded store.
	var (
		equipmentRepo repository.EquipmentRepository  = repo
		licenseRepo   repository.LicenseRepository    = repo
		inventorySnap repository.InventorySnapshotter = repo
	)
	if cfg.PostgresDSN != "" {
		pg, err := repository.NewPostgresRepository(cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to PostgreSQL", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		equipmentRepo, licenseRepo, inventorySnap = pg, pg, pg
		log.Info("inventory domain served from PostgreSQL")
	}

	notifier := notifications.NewNotifier(repo.ListChannels, log)
	engine := automation.NewEngine(repo, notifier, log)
	if err := engine.Refresh(ctx); err != nil {
		log.Error("failed to load automation rules", "error", err)
		os.Exit(1)
	}

	scanner, err := aiscan.NewScanner(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Error("failed to initialize AI scanner", "error", err)
		os.Exit(1)
	}
	if scanner.Enabled() {
		defer scanner.Close()
		log.Info("AI vulnerability scan enabled", "model", cfg.GeminiModel)
	}

	hub := websocket.NewHub(ctx)
	go hub.Run()

	handler := rest.NewHandler(
		service.NewInventoryService(equipmentRepo, licenseRepo, inventorySnap, engine, notifier, hub),
		service.NewOrganizationService(repo, repo, hub),
		service.NewSupportService(repo, repo, engine, notifier, hub),
		service.NewProcurementService(repo, hub),
		service.NewComplianceService(repo, licenseRepo, repo, repo, scanner, notifier, hub, cfg.BackupWindowDays),
		service.NewRuleService(repo, engine),
		repo,
		repo,
	)

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.SecureHeaders)
	router.Use(middleware.StructuredLog)

	healthz := rest.NewHealthzHandler(repo)
	router.HandleFunc("/healthz", healthz.Live).Methods("GET")
	router.HandleFunc("/readyz", healthz.Ready).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/ws", hub.ServeWS).Methods("GET")

	maxBody := int64(cfg.MaxBodyBytes)
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBodyBytes
	}
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.MaxBodySize(maxBody))
	apiRouter.Use(middleware.AuditLog(repo))
	rest.SetupRoutes(apiRouter, handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID", "X-User-Email"},
		AllowCredentials: true,
	}).Handler(router)

	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      corsHandler,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	hub.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("forced shutdown", "error", err)
	}
	log.Info("server exited")
}
