package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/jhoicas/booking-dashboard/internal/application/customers"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/cache"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *customers.CustomerUseCase
	PDFUC      *customers.PDFUseCase
	Views      fiber.Views
	ViewCache  *cache.ViewCache
	Logger     *logger.Logger
	JWTSecret  string
	CSRF       bool
}

// Router registra las rutas del dashboard y de la API.
func Router(app *fiber.App, deps RouterDeps) {
	auth := AuthMiddleware(deps.JWTSecret)

	// API JSON (Bearer Token si JWT_SECRET está definido)
	api := app.Group("/api", auth)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	apiCustomers := api.Group("/customers")
	apiCustomers.Get("/", customerHandler.List)
	apiCustomers.Post("/", customerHandler.Create)
	apiCustomers.Get("/:id", customerHandler.GetByID)
	apiCustomers.Put("/:id", customerHandler.Update)
	apiCustomers.Delete("/:id", customerHandler.Delete)

	// Dashboard HTML (cookie de sesión + formularios con token CSRF)
	handlers := []fiber.Handler{auth}
	if deps.CSRF {
		handlers = append(handlers, csrf.New(csrf.Config{
			KeyLookup:      "form:_csrf",
			CookieName:     "csrf_",
			CookieSameSite: "Strict",
			Expiration:     1 * time.Hour,
			ContextKey:     CSRFContextKey,
		}))
	}
	dashboard := app.Group("/dashboard/customers", handlers...)
	dashboardHandler := NewDashboardHandler(deps.CustomerUC, deps.PDFUC, deps.Views, deps.ViewCache, deps.Logger)
	dashboard.Get("/", dashboardHandler.List)
	dashboard.Post("/", dashboardHandler.Create)
	dashboard.Get("/create", dashboardHandler.CreateForm)
	dashboard.Get("/:id/edit", dashboardHandler.EditForm)
	dashboard.Get("/:id/confirmation.pdf", dashboardHandler.ConfirmationPDF)
	dashboard.Post("/:id/delete", dashboardHandler.Delete)
	dashboard.Post("/:id", dashboardHandler.Update)
}
