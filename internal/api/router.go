package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// router assembles the middleware stack and route tree.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(recoveryMiddleware(s.logger))
	r.Use(loggingMiddleware(s.logger))
	r.Use(corsMiddleware(s.config.API.CORS))
	r.Use(bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes.
		r.Get("/health", s.handleHealth)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes. Authentication is a no-op when no JWT
		// secret is configured.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.security.JWT.Secret))

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/sites", s.handleListSites)
				r.Get("/roles", s.handleListRoles)
				r.Get("/manufacturers", s.handleListManufacturers)
				r.Get("/device-types", s.handleListDeviceTypes)
				r.Get("/devices", s.handleListDevices)
				r.Get("/choices", s.handleChoices)
				r.Get("/device-with-ports", s.handleDeviceWithPorts)

				r.Post("/prepare-device", s.handlePrepareDevice)
				r.Post("/create-device", s.handleCreateDevice)
				r.Post("/create-interfaces", s.handleCreateInterfaces)
				r.Post("/create-rear-ports", s.handleCreateRearPorts)
				r.Post("/create-front-ports", s.handleCreateFrontPorts)
			})

			r.Get("/audit", s.handleListAudit)
		})
	})

	return r
}
