package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hirewire/hirewire-api/config"
	httpx "github.com/hirewire/hirewire-api/internal/http"
	"github.com/hirewire/hirewire-api/internal/observability/statsd"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Analytics:          cfg.Services.Analytics,
		CookieDomain:       appCfg.HTTP.CookieDomain,
		DefaultWaitBuckets: appCfg.Analytics.DefaultWaitBuckets,
		HistoryPageSize:    appCfg.Analytics.HistoryPageSize,
		Logger:             logger,
	}
	if cfg.Services.Auth != nil {
		services.Auth = cfg.Services.Auth
	}

	handler, metricsClient := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: services,
		HTTP:     appCfg.HTTP,
		Statsd:   appCfg.Statsd,
	})

	server := startServer(logger, handler, appCfg.HTTP.Addr)
	if metricsClient != nil {
		server.RegisterOnShutdown(func() {
			if err := metricsClient.Close(); err != nil {
				logger.Warn("close statsd client failed", "error", err)
			}
		})
	}
	return server
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
	Statsd   config.StatsdConfig
}

func buildHTTPHandler(cfg httpHandlerConfig) (http.Handler, *statsd.Client) {
	router := httpx.NewRouter(cfg.Services)

	// Order: Recover -> Logging -> Metrics -> Compression -> Router, so
	// logging captures compressed sizes and panics in any layer are caught.
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel})(h)
	}

	metricsClient := newMetricsClient(cfg.Statsd, cfg.Logger)
	if metricsClient.Enabled() {
		h = httpx.Metrics(metricsClient)(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h, metricsClient
}

func newMetricsClient(cfg config.StatsdConfig, logger *slog.Logger) *statsd.Client {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Enabled,
		Address: cfg.Address,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("statsd client unavailable; metrics disabled", "error", err)
		return nil
	}
	if client.Enabled() {
		logger.Info("statsd metrics enabled", "addr", cfg.Address, "prefix", cfg.Prefix)
	}
	return client
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
