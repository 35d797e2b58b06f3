package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quantfabric/universe/internal/api/handlers"
	"github.com/quantfabric/universe/internal/subscription"
	"github.com/quantfabric/universe/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(universeHandler *handlers.UniverseHandler, schedulerHandler *handlers.SchedulerHandler, hub *subscription.Hub, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Universe endpoints
	api.HandleFunc("/universe", universeHandler.GetMembers).Methods("GET")
	api.HandleFunc("/universe/changes", universeHandler.GetChanges).Methods("GET")
	api.HandleFunc("/universe/settings", universeHandler.GetSettings).Methods("GET")
	api.HandleFunc("/subscriptions/stats", universeHandler.GetStats).Methods("GET")

	// Scheduler endpoints
	api.HandleFunc("/scheduler/status", schedulerHandler.GetStatus).Methods("GET")

	// Change stream
	api.Handle("/ws", hub).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "universe-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
