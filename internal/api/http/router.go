package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-directory/internal/api/http/handlers"
	"github.com/spec-kit/clinic-directory/internal/auth"
	"github.com/spec-kit/clinic-directory/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Persons        *handlers.PersonsHandler
	Specialties    *handlers.SpecialtiesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.LoginByEmail)
	authGroup.Post("/login/cpf", cfg.Auth.LoginByCPF)
	authGroup.Post("/login/license", cfg.Auth.LoginByLicense)
	authGroup.Post("/validate", cfg.Auth.ValidateToken)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	app.Post("/persons", cfg.Persons.Register)
	app.Put("/persons", cfg.AuthMiddleware.Handle, cfg.Persons.Update)

	app.Get("/specialties", cfg.Specialties.List)
	app.Get("/specialties/:id", cfg.Specialties.Get)
	app.Get("/specialties/:id/doctors", cfg.Specialties.ListDoctors)
	app.Post("/specialties",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleAdministrator),
		cfg.Specialties.Create)
}
