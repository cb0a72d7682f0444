package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"archipelago.dev/internal/config"
	"archipelago.dev/internal/models"
	"archipelago.dev/internal/services"
)

const requestTimeout = 30 * time.Second

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// Initialize services
	mapService := services.NewMapService(cfg.Map.Config, cfg.Map.CacheSize)

	// Initialize handlers
	mapHandler := NewMapHandler(mapService, cfg.Map.PixelSize)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/map", mapHandler.GetMap)
		r.Get("/map.png", mapHandler.GetMapImage)
		r.Get("/tiles", mapHandler.GetTiles)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// The bare root serves a fresh random map
	r.Get("/", mapHandler.GetMapImage)

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}
