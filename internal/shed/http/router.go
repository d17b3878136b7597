package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/codingbarn/barnyard/internal/shed/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/jwtx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// Router holds shared dependencies for the shed's HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	MusicService     *service.MusicService
	EquipmentService *service.EquipmentService
}

func NewRouter(verifier jwtx.Verifier, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
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
	r.registerMusic()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// protect wraps a handler with token validation and a scope requirement.
func (r *Router) protect(h http.Handler, scope string) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireScope(scope),
	)
}

func (r *Router) registerMusic() {
	music := &MusicHandler{MusicService: r.MusicService}
	equipment := &EquipmentHandler{EquipmentService: r.EquipmentService}

	r.Mux.Handle("GET /music/nowplaying", r.protect(http.HandlerFunc(music.HandleNowPlaying), "read:nowplaying"))
	r.Mux.Handle("GET /music/playlist", r.protect(http.HandlerFunc(music.HandlePlaylist), "read:nowplaying"))
	r.Mux.Handle("POST /music/play", r.protect(http.HandlerFunc(music.HandlePlay), "write:music"))
	r.Mux.Handle("POST /music/next", r.protect(http.HandlerFunc(music.HandleNext), "write:music"))
	r.Mux.Handle("GET /music/equipment", r.protect(http.HandlerFunc(equipment.HandleList), "admin:equipment"))
	r.Mux.Handle("DELETE /music/equipment", r.protect(http.HandlerFunc(equipment.HandleRemoveAll), "admin:equipment"))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
}
