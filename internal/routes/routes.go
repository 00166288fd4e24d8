package routes

import (
	"net/http"

	"github.com/BradenHooton/folio/internal/handlers"
	pkghttp "github.com/BradenHooton/folio/pkg/http"
	"github.com/go-chi/chi/v5"
)

// Handlers groups every HTTP handler mounted under /api
type Handlers struct {
	Admin   *handlers.AdminHandler
	Contact *handlers.ContactHandler
	Chat    *handlers.ChatHandler
	Health  *handlers.HealthHandler
	Metrics http.Handler // optional
}

// RegisterRoutes registers all application routes. CORS preflight is
// answered by middleware before routing, so OPTIONS is never a 405.
func RegisterRoutes(router chi.Router, h Handlers) {
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteNotFound(w, "Not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteMethodNotAllowed(w)
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Check)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/", h.Admin.Login)
			r.Get("/", h.Admin.Dashboard)
			r.Delete("/", h.Admin.Logout)
		})

		r.Post("/contact", h.Contact.Submit)
		r.Post("/chatbot", h.Chat.Reply)
	})

	if h.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.Metrics)
	}
}
