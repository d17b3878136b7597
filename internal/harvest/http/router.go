package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/codingbarn/barnyard/internal/harvest/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// Router holds shared dependencies for the harvest BFF handlers. All
// endpoints are public; the OAuth dance happens behind them.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	FoodService *service.FoodService
	MusicClient *service.MusicClient
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
	h := &HarvestHandler{FoodService: r.FoodService, MusicClient: r.MusicClient}

	r.Mux.Handle("GET /harvest/food", http.HandlerFunc(h.HandleFood))
	r.Mux.Handle("GET /harvest/nowplaying", http.HandlerFunc(h.HandleNowPlaying))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
