package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Account       *handlers.AccountHandler
	Admin         *handlers.AdminHandler
	Properties    *handlers.PropertiesHandler
	Appointments  *handlers.AppointmentsHandler
	SessionEvents *handlers.SessionEventsHandler
	Middleware    *auth.Middleware
	Guard         *auth.Guard
}

// RegisterRoutes wires HTTP routes. Each protected subtree declares its role
// rule where it is mounted, the way route metadata is declared next to the
// route itself.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Middleware.Handle)

	// Auth pages: unguarded except for the inverse guard, which bounces an
	// already-authenticated caller to their role's home.
	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Guard.RedirectAuthenticated(), cfg.Auth.Login)
	authGroup.Post("/register", cfg.Guard.RedirectAuthenticated(), cfg.Auth.Register)
	authGroup.Post("/password-reset", cfg.Guard.RedirectAuthenticated(), cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", cfg.Guard.RedirectAuthenticated(), cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	// Admin module: the whole subtree requires the admin role, and the user
	// management routes repeat the rule at route level.
	adminRule := auth.RouteRule{Roles: []string{"Administrador"}}
	adminGroup := app.Group("/admin", cfg.Guard.ForModule(adminRule))
	adminGroup.Get("/properties", cfg.Admin.ListProperties)
	adminGroup.Get("/activity", cfg.Admin.ListActivity)

	usersGroup := adminGroup.Group("/users", cfg.Guard.ForChildren(adminRule))
	usersGroup.Get("/", cfg.Admin.ListUsers)
	usersGroup.Patch("/:id/status", cfg.Guard.ForRoute(adminRule), cfg.Admin.UpdateUserStatus)

	// Agent module.
	agentRule := auth.RouteRule{Roles: []string{"Agente"}}
	agentGroup := app.Group("/agent", cfg.Guard.ForModule(agentRule))
	agentGroup.Post("/properties", cfg.Properties.Create)
	agentGroup.Get("/properties", cfg.Properties.List)
	agentGroup.Put("/properties/:id", cfg.Properties.Update)
	agentGroup.Patch("/properties/:id/status", cfg.Properties.ChangeStatus)
	agentGroup.Delete("/properties/:id", cfg.Properties.Delete)
	agentGroup.Get("/appointments", cfg.Appointments.ListForAgent)
	agentGroup.Patch("/appointments/:id/status", cfg.Appointments.UpdateStatus)

	// Client module.
	clientRule := auth.RouteRule{Roles: []string{"Cliente"}}
	clientGroup := app.Group("/client", cfg.Guard.ForModule(clientRule))
	clientGroup.Get("/properties", cfg.Properties.Browse)
	clientGroup.Get("/properties/:id", cfg.Properties.Detail)
	clientGroup.Post("/appointments", cfg.Appointments.Request)
	clientGroup.Get("/appointments", cfg.Appointments.ListForClient)

	// Account pages accept any authenticated role.
	accountGroup := app.Group("/account", cfg.Guard.ForModule(auth.RouteRule{}))
	accountGroup.Get("/profile", cfg.Account.Profile)
	accountGroup.Post("/password", cfg.Account.ChangePassword)
	accountGroup.Get("/session/events", cfg.SessionEvents.Stream)
}
