package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/codingbarn/barnyard/internal/guest/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// Router holds shared dependencies for the guest demo handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	GuestClient *service.GuestClient
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
	h := &GuestHandler{GuestClient: r.GuestClient}

	r.Mux.Handle("POST /guest/token", http.HandlerFunc(h.HandleToken))
	r.Mux.Handle("GET /guest/nowplaying", http.HandlerFunc(h.HandleNowPlaying))
	r.Mux.Handle("POST /guest/play/{songId}", http.HandlerFunc(h.HandlePlay))
	r.Mux.Handle("DELETE /guest/equipment", http.HandlerFunc(h.HandleDeleteEquipment))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
