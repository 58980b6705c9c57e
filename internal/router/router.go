package router

import (
	"net/http"
	"strings"

	"void-shop/internal/handler"
	"void-shop/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	inventoryHandler *handler.InventoryHandler,
	healthHandler *handler.HealthHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint, reachable both bare and under /api
	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/api/health", healthHandler.Check)

	// Inventory handler function
	inventoryRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Full listing
		if r.URL.Path == "/api/inventory" || r.URL.Path == "/api/inventory/" {
			inventoryHandler.List(w, r)
			return
		}

		// Admin reset
		if r.URL.Path == "/api/inventory/reset" {
			inventoryHandler.Reset(w, r)
			return
		}

		// Sub-resources of a single product
		switch {
		case strings.HasSuffix(r.URL.Path, "/available"):
			inventoryHandler.CheckAvailability(w, r)
		case strings.HasSuffix(r.URL.Path, "/purchase"):
			inventoryHandler.Purchase(w, r)
		case r.Method == http.MethodPut:
			inventoryHandler.UpdateQuantity(w, r)
		default:
			inventoryHandler.GetByID(w, r)
		}
	}

	// Register inventory routes (both with and without trailing slash)
	mux.HandleFunc("/api/inventory", inventoryRouteHandler)
	mux.HandleFunc("/api/inventory/", inventoryRouteHandler)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
