package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yegors/atc24-radar/internal/state"
	"github.com/yegors/atc24-radar/pkg/logger"
)

// Router wires the API handlers onto a chi router
type Router struct {
	handler *Handler
	logger  *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(store *state.Store, log *logger.Logger) *Router {
	return &Router{
		handler: NewHandler(store, log),
		logger:  log.Named("api-router"),
	}
}

// Routes returns the HTTP handler for the snapshot API
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(r.requestLogger)

	router.Route("/api", func(api chi.Router) {
		api.Get("/aircraft", r.handler.GetAllAircraft)
		api.Get("/aircraft/{callsign}", r.handler.GetAircraftByCallsign)
		api.Get("/controllers", r.handler.GetControllers)
		api.Get("/atis", r.handler.GetAllATIS)
		api.Get("/atis/{airport}", r.handler.GetATISByAirport)
		api.Get("/status", r.handler.GetStatus)
		api.Get("/config", r.handler.GetConfig)
	})

	return router
}

// requestLogger logs each request at debug level with method, path and timing
func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		r.logger.Debug("Request handled",
			logger.String("method", req.Method),
			logger.String("path", req.URL.Path),
			logger.Duration("duration", time.Since(start)))
	})
}
