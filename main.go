package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-clipper/internal/config"
	"media-clipper/internal/filesystem"
	"media-clipper/internal/handlers"
	"media-clipper/internal/logging"
	"media-clipper/internal/memory"
	"media-clipper/internal/metrics"
	"media-clipper/internal/middleware"
	"media-clipper/internal/pipeline"
	"media-clipper/internal/startup"
	"media-clipper/internal/workspace"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Optional .env for local development
	_ = godotenv.Load()

	// Configure GOMEMLIMIT before anything allocates in earnest
	memory.ConfigureFromEnv()

	startup.PrintBanner()
	startup.LogSystemInfo()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}
	startup.LogConfiguration(cfg)

	// Prepare scratch storage
	if err := startup.InitScratch(cfg.ScratchDir); err != nil {
		startup.LogFatal("Scratch directory error: %v", err)
	}
	startup.LogToolchain(cfg.YtDlpPath, cfg.FFmpegPath)

	spaces, err := workspace.NewManager(cfg.ScratchDir, cfg.WorkspaceTTL)
	if err != nil {
		startup.LogFatal("Failed to initialize workspace manager: %v", err)
	}

	// Start the TTL sweeper
	startup.LogSweeperInit(cfg.WorkspaceTTL, cfg.SweepInterval)
	sweeper := workspace.NewSweeper(spaces, cfg.SweepInterval)
	sweeper.Start()
	startup.LogSweeperStarted()

	// Initialize metrics
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	collector := metrics.NewCollector(spaces, time.Minute)
	collector.Start()

	// Build the pipeline and handlers
	pipe := pipeline.New(cfg, spaces)
	h := handlers.New(pipe, spaces, cfg)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, cfg.LogHealthChecks)

	handler := buildHandler(router, cfg)

	// Create server. WriteTimeout stays 0: media transfers run as long
	// as the client needs, and the streaming writer enforces its own
	// idle timeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if cfg.MetricsEnabled {
		metricsSrv = startMetricsServer(cfg.MetricsPort)
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, sweeper, collector)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            cfg.Port,
		MetricsPort:     cfg.MetricsPort,
		MetricsEnabled:  cfg.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Service description
	r.HandleFunc("/", h.ServiceDescription).Methods("GET")

	// Media endpoints (API headers required)
	r.HandleFunc("/download", h.Download).Methods("POST")
	r.HandleFunc("/info", h.Info).Methods("POST")

	// Health check and version routes (no auth required)
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	return r
}

// buildHandler wraps the router in the middleware chain. Requests flow
// compression -> logging -> metrics -> API header check -> router, so
// rejected requests still show up in the logs and the request metrics.
func buildHandler(router *mux.Router, cfg *config.Config) http.Handler {
	authConfig := middleware.DefaultAuthConfig()
	authConfig.Require = cfg.RequireAPIHeaders

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = cfg.LogHealthChecks

	handler := middleware.APIHeaders(authConfig)(router)
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	handler = middleware.Logger(loggingConfig)(handler)
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)
	return handler
}

// startMetricsServer serves Prometheus metrics on its own listener so
// scrapes never compete with media transfers.
func startMetricsServer(port string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      metricsMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(srv, metricsSrv *http.Server, sweeper *workspace.Sweeper, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping sweeper")
	sweeper.Stop()
	startup.LogShutdownStepComplete("Sweeper stopped")

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	// Workspaces stay on disk; the TTL sweep reclaims them on the next run.

	startup.LogShutdownComplete()
}
