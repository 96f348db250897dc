package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/modelrelay/relay/app"
	"github.com/modelrelay/relay/utils"
	"github.com/modelrelay/relay/web"
)

// allowedMethods is what the chat endpoint accepts; advertised on bare
// OPTIONS requests and preflight responses alike.
const allowedMethods = "POST, OPTIONS"

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware: preflight requests carrying declared origin/method
	// headers are answered here with no body.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	// Browser clients on other origins must be able to read every
	// response, including ones the cors middleware skips when no Origin
	// header is present.
	r.Use(permissiveOrigin)

	// Health check endpoint
	r.Get("/healthz", deps.HealthHandler.HandleHealth)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", deps.ChatHandler.HandleChat)
		// Bare OPTIONS (no preflight headers) gets a capability
		// advertisement only.
		r.Options("/chat", allowAdvertisement)
		r.Get("/models", deps.ModelsHandler.HandleModels)
	})

	// Embedded chat UI
	r.Handle("/*", http.FileServer(http.FS(web.Static())))

	// 405 handler
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowedMethods)
		_ = utils.WriteMethodNotAllowed(w, "Method not allowed")
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Endpoint not found")
	})

	return r
}

// permissiveOrigin guarantees the permissive cross-origin header on every
// response, success and failure alike.
func permissiveOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("Access-Control-Allow-Origin") == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		next.ServeHTTP(w, r)
	})
}

// allowAdvertisement answers OPTIONS requests that are not CORS
// preflights with a minimal Allow header and no body.
func allowAdvertisement(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", allowedMethods)
	w.WriteHeader(http.StatusNoContent)
}
