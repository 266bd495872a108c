package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the chi router for the server. Split out of StartServer so
// tests can drive the full middleware stack with httptest.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(s.config.APIKey))

		r.Get("/health", s.instrument("GET", "/api/v1/health", s.handleHealth))

		r.Get("/header", s.instrument("GET", "/api/v1/header", s.handleHeader))

		r.Get("/records", s.instrument("GET", "/api/v1/records", s.handleFindRecords))
		r.Post("/records", s.instrument("POST", "/api/v1/records", s.handleCreateRecord))
		r.Get("/records/{index}", s.instrument("GET", "/api/v1/records/{index}", s.handleGetRecord))
		r.Patch("/records/{index}", s.instrument("PATCH", "/api/v1/records/{index}", s.handleUpdateRecord))
		r.Delete("/records/{index}", s.instrument("DELETE", "/api/v1/records/{index}", s.handleDeleteRecord))

		r.Post("/save", s.instrument("POST", "/api/v1/save", s.handleSave))

		r.Post("/snapshots", s.instrument("POST", "/api/v1/snapshots", s.handleCreateSnapshot))
		r.Get("/snapshots", s.instrument("GET", "/api/v1/snapshots", s.handleListSnapshots))
	})

	return r
}

func (s *Server) instrument(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	if s.metrics == nil {
		return handler
	}
	return s.metrics.InstrumentHandler(method, endpoint, handler)
}

// StartServer starts the HTTP server with all routes configured
func StartServer(server *Server, config ServerConfig) error {
	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting dbckit REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	log.Fatal(http.ListenAndServe(addr, server.Router()))

	return nil
}
