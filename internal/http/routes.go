package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Analytics    AnalyticsServiceInterface
	Auth         AuthServiceInterface
	CookieDomain string
	// DefaultWaitBuckets backs hm-feedback requests that carry no waitBuckets.
	DefaultWaitBuckets []int
	// HistoryPageSize is the stage-history page size when no limit is given.
	HistoryPageSize int
	Logger          *slog.Logger
}

// NewRouter creates and configures the HTTP router. All analytics routes
// require an authenticated, non-guest session; caller scoping itself happens
// in the service layer.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	analyticsHandlers := &AnalyticsHandlers{
		Svc:                services.Analytics,
		DefaultWaitBuckets: services.DefaultWaitBuckets,
		HistoryPageSize:    services.HistoryPageSize,
	}
	registerAnalyticsRoutes(mux, analyticsHandlers, services.Auth)

	if services.Auth != nil {
		authHandlers := &AuthHandlers{
			Svc:          services.Auth,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}
		registerAuthRoutes(mux, authHandlers)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAnalyticsRoutes(mux *http.ServeMux, h *AnalyticsHandlers, auth AuthServiceInterface) {
	// Nil-safe wrapper so handler tests can exercise routes without a session
	// store; the service still refuses sessionless callers.
	wrap := func(hh http.Handler) http.Handler {
		if auth != nil {
			return RequireAuth(auth)(hh)
		}
		return hh
	}

	mux.Handle("GET /api/analytics/hiring-metrics", wrap(http.HandlerFunc(h.HiringMetrics)))
	mux.Handle("GET /api/analytics/dropoff", wrap(http.HandlerFunc(h.Dropoff)))
	mux.Handle("GET /api/analytics/source-performance", wrap(http.HandlerFunc(h.SourcePerformance)))
	mux.Handle("GET /api/analytics/hm-feedback", wrap(http.HandlerFunc(h.ReviewLatency)))
	mux.Handle("GET /api/analytics/performance", wrap(http.HandlerFunc(h.TeamPerformance)))
	mux.Handle("GET /api/stage-history", wrap(http.HandlerFunc(h.StageHistory)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /api/auth/status", h.Status)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}
