package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/codingbarn/barnyard/internal/barn/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// FragileLimit mimics a legacy system that can only take six status checks
// a minute before falling over with a 503.
var FragileLimit = httpx.RateLimitConfig{
	RequestsPerWindow: 6,
	Window:            time.Minute,
	Burst:             6,
	OverloadStatus:    http.StatusServiceUnavailable,
	OverloadMessage: "System overloaded. Too many status checks are destabilizing the barn. " +
		"Please reduce polling frequency to no more than once every 10 seconds.",
}

// Router holds shared dependencies for the barn handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	BarnService    *service.BarnService
	FragileService *service.BarnService
	Broadcaster    *service.Broadcaster
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
	barn := &BarnHandler{BarnService: r.BarnService, Broadcaster: r.Broadcaster}

	r.Mux.Handle("GET /barn/status", http.HandlerFunc(barn.HandleStatus))
	r.Mux.Handle("POST /barn/ignite", http.HandlerFunc(barn.HandleIgnite))
	r.Mux.Handle("POST /barn/extinguish", http.HandlerFunc(barn.HandleExtinguish))
	r.Mux.Handle("POST /barn/subscribe", http.HandlerFunc(barn.HandleSubscribe))
	r.Mux.Handle("POST /barn/unsubscribe", http.HandlerFunc(barn.HandleUnsubscribe))
	r.Mux.Handle("GET /barn/subscribers", http.HandlerFunc(barn.HandleSubscribers))

	fragile := &FragileBarnHandler{BarnService: r.FragileService}
	r.Mux.Handle("GET /fragile-barn/status",
		httpx.Chain(http.HandlerFunc(fragile.HandleStatus),
			httpx.RateLimitByIP(FragileLimit),
		),
	)
	r.Mux.Handle("POST /fragile-barn/ignite", http.HandlerFunc(fragile.HandleIgnite))
	r.Mux.Handle("POST /fragile-barn/extinguish", http.HandlerFunc(fragile.HandleExtinguish))

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
