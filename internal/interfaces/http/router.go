package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/company-admin/internal/application/analytics"
	"github.com/jhoicas/company-admin/internal/application/auth"
	"github.com/jhoicas/company-admin/internal/application/report"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC       *usecase.CompanyUseCase
	UserUC          *usecase.UserUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ReportUC        *report.CompanyReportUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	DefaultPageSize int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	// Companies: las rutas fijas van antes de /:id
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ReportUC, deps.DefaultPageSize)
	companies.Get("/", companyHandler.List)
	companies.Get("/levels", companyHandler.Levels)
	companies.Get("/filter-options", companyHandler.FilterOptions)
	companies.Get("/chart", dashboardHandler.Chart)
	companies.Get("/report.pdf", companyHandler.Report)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", adminOnly, companyHandler.Create)

	// Users: lectura para cualquier usuario autenticado, escritura solo Admin
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.DefaultPageSize)
	users.Get("/", userHandler.List)
	users.Get("/roles", userHandler.Roles)
	users.Post("/bulk-delete", adminOnly, userHandler.BulkDelete)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", adminOnly, userHandler.Create)
	users.Patch("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/levels", dashboardHandler.Levels)
	dashboard.Get("/growth", dashboardHandler.Growth)
}
