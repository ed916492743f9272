package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router builds the full route tree. Everything under /api except the login
// endpoint requires a bearer token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.RecoverMiddleware)
	r.Use(s.LoggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", MetricsHandler(s.gatherer))

	r.Route("/api", func(r chi.Router) {
		r.With(s.LoginRateLimitMiddleware).Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)

			r.Get("/auth/me", s.handleMe)
			r.Post("/auth/logout", s.handleLogout)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleListUsers)
				r.With(s.AdminOnly).Post("/", s.handleCreateUser)
				r.Get("/{id}", s.handleGetUser)
				r.Put("/{id}", s.handleUpdateUser)
				r.With(s.AdminOnly).Put("/{id}/status", s.handleUpdateUserStatus)
				r.With(s.AdminOnly).Put("/{id}/role", s.handleUpdateUserRole)
				r.With(s.AdminOnly).Delete("/{id}", s.handleDeleteUser)
			})

			r.With(s.AdminOnly).Get("/admin/dashboard", s.handleDashboardStats)

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", s.handleListCompanies)
				r.With(s.AdminOnly).Post("/", s.handleCreateCompany)
				r.Get("/available-drivers", s.handleAvailableDrivers)
				r.Get("/{id}", s.handleGetCompany)
				r.With(s.AdminOnly).Put("/{id}", s.handleUpdateCompany)
				r.With(s.AdminOnly).Delete("/{id}", s.handleDeleteCompany)
				r.With(s.AdminOnly).Post("/{id}/drivers/{driverID}", s.handleAssignDriver)
				r.With(s.AdminOnly).Delete("/{id}/drivers/{driverID}", s.handleRemoveDriver)
			})

			r.Route("/children", func(r chi.Router) {
				r.Get("/", s.handleListChildren)
				r.Post("/", s.handleCreateChild)
				r.Get("/search", s.handleSearchChildren)
				r.Get("/parent/{parentID}", s.handleChildrenByParent)
				r.Get("/{id}", s.handleGetChild)
				r.Put("/{id}", s.handleUpdateChild)
				r.Delete("/{id}", s.handleDeleteChild)
			})

			r.Route("/relationships", func(r chi.Router) {
				r.Get("/", s.handleListRelationships)
				r.Post("/", s.handleCreateRelationship)
				r.Get("/user/{userID}", s.handleRelationshipsByUser)
				r.Get("/{id}", s.handleGetRelationship)
				r.Put("/{id}", s.handleUpdateRelationship)
				r.Delete("/{id}", s.handleDeleteRelationship)
			})

			r.Route("/rides", func(r chi.Router) {
				r.Post("/", s.handleCreateRide)
				r.Get("/user/{userID}", s.handleRidesByUser)
				r.Get("/{id}", s.handleGetRide)
				r.Put("/{id}/status", s.handleUpdateRideStatus)
				r.Put("/{id}/driver", s.handleAssignRideDriver)
			})

			r.Post("/routes/optimize", s.handleOptimizeRoute)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
