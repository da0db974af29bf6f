// Package router wires the ops HTTP surface: health, metrics, and the
// JWT-protected admin API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okravets/barberflow/internal/http/handlers"
	"github.com/okravets/barberflow/internal/http/middleware"
	"github.com/okravets/barberflow/pkg/logging"
)

// Config carries router dependencies.
type Config struct {
	Admin          *handlers.AdminHandler
	AdminJWTSecret string
	Logger         *logging.Logger
}

// New builds the HTTP router.
func New(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(cfg.Logger))

	r.Get("/health", cfg.Admin.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminJWT(cfg.AdminJWTSecret))

		r.Get("/appointments", cfg.Admin.ListAppointments)
		r.Get("/clients", cfg.Admin.ListClients)
		r.Get("/settings", cfg.Admin.GetSettings)
		r.Put("/settings", cfg.Admin.UpdateSettings)
		r.Get("/prices", cfg.Admin.ListPrices)
		r.Post("/prices", cfg.Admin.AddPrice)
		r.Put("/prices/{id}", cfg.Admin.UpdatePrice)
		r.Delete("/prices/{id}", cfg.Admin.DeletePrice)
	})

	return r
}
