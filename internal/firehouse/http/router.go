package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/codingbarn/barnyard/internal/firehouse/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// Router holds shared dependencies for the firehouse handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	Poller   *service.Poller
	Receiver *service.Receiver
}

func NewRouter(buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	events := &EventsHandler{Receiver: r.Receiver}
	stats := &StatsHandler{Poller: r.Poller, Receiver: r.Receiver}

	r.Mux.Handle("POST /events", http.HandlerFunc(events.HandleEvent))
	r.Mux.Handle("GET /events/history", http.HandlerFunc(events.HandleHistory))
	r.Mux.Handle("GET /stats", http.HandlerFunc(stats.HandleStats))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
