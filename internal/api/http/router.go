package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/visitor-service/internal/api/http/handlers"
	"github.com/spec-kit/visitor-service/internal/auth"
	"github.com/spec-kit/visitor-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Visitors       *handlers.VisitorsHandler
	Passes         *handlers.PassesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/security/register", cfg.Accounts.RegisterSecurity)
	authGroup.Post("/security/login", cfg.Accounts.Login)
	authGroup.Post("/hosts/login", cfg.Accounts.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/hosts/register", auth.RequireRole(domain.RoleSecurity), cfg.Accounts.RegisterHost)
	authProtected.Put("/hosts/contact", auth.RequireRole(domain.RoleSecurity), cfg.Accounts.UpdateHostContact)
	authProtected.Post("/accounts/register", auth.RequireRole(domain.RoleAdmin), cfg.Accounts.Register)
	authProtected.Delete("/accounts/:username", auth.RequireRole(domain.RoleAdmin), cfg.Accounts.Delete)

	visitors := app.Group("/visitors")
	visitors.Get("/access", cfg.Visitors.Access)

	visitorsProtected := visitors.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	visitorsProtected.Post("/", cfg.Visitors.Register)
	visitorsProtected.Post("/security", auth.RequireRole(domain.RoleSecurity), cfg.Visitors.RegisterWalkIn)
	visitorsProtected.Get("/", cfg.Visitors.List)
	visitorsProtected.Patch("/contact", cfg.Visitors.UpdateContact)
	visitorsProtected.Patch("/checkin", cfg.Visitors.CheckIn)
	visitorsProtected.Patch("/checkout", cfg.Visitors.CheckOut)
	visitorsProtected.Delete("/:accessPass", cfg.Visitors.Delete)

	passes := app.Group("/passes")
	passes.Get("/:visitorID", cfg.Passes.Retrieve)
	passes.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Passes.Issue)
	passes.Get("/:passID/host-contact", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSecurity), cfg.Passes.HostContact)
}
