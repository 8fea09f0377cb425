package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/sportsgear-api/app"
	"github.com/upb/sportsgear-api/handlers"
	"github.com/upb/sportsgear-api/utils"
)

// Access selects the middleware placed in front of a route
type Access int

const (
	// Public routes need no credential
	Public Access = iota
	// Authenticated routes need a valid credential
	Authenticated
	// Owner routes need a valid credential whose identity matches the email query parameter
	Owner
)

// Route is one entry of the route table
type Route struct {
	Method  string
	Pattern string
	Access  Access
	Handler http.HandlerFunc
}

// Table returns every route served by the API
func Table(deps *app.Dependencies) []Route {
	health := handlers.NewHealthHandler(deps.HealthChecks(), deps.Logger)
	products := handlers.NewProductHandler(deps.Products, deps.Logger)
	cart := handlers.NewCartHandler(deps.Cart, deps.Logger)

	return []Route{
		{http.MethodGet, "/", Public, health.HandleRoot},
		{http.MethodGet, "/healthz", Public, health.HandleHealth},
		{http.MethodGet, "/readyz", Public, health.HandleReadiness},

		// Session lifecycle
		{http.MethodPost, "/jwt", Public, deps.AuthHandler.HandleLogin},
		{http.MethodPost, "/logOut", Public, deps.AuthHandler.HandleLogout},

		// Product catalog
		{http.MethodPost, "/products", Public, products.HandleCreate},
		{http.MethodGet, "/products", Public, products.HandleList},
		{http.MethodGet, "/products/{id}", Public, products.HandleGet},
		{http.MethodPut, "/products/{id}", Public, products.HandleUpdate},
		{http.MethodDelete, "/products/{id}", Public, products.HandleDelete},
		{http.MethodGet, "/myEquipment", Owner, products.HandleListOwned},

		// Cart
		{http.MethodPost, "/cartItem", Public, cart.HandleCreate},
		{http.MethodGet, "/cartItem", Public, cart.HandleList},
		{http.MethodGet, "/cartItem/{id}", Public, cart.HandleGet},
		{http.MethodDelete, "/cartItem/{id}", Public, cart.HandleDelete},
	}
}

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if timeout := deps.Config.Server.RequestTimeout; timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	for _, route := range Table(deps) {
		r.With(guards(deps, route.Access)...).Method(route.Method, route.Pattern, route.Handler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

func guards(deps *app.Dependencies, access Access) []func(http.Handler) http.Handler {
	switch access {
	case Authenticated:
		return []func(http.Handler) http.Handler{deps.AuthMiddleware.RequireAuth}
	case Owner:
		return []func(http.Handler) http.Handler{
			deps.AuthMiddleware.RequireAuth,
			deps.AuthMiddleware.RequireOwnership,
		}
	default:
		return nil
	}
}
