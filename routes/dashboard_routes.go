package routes

import (
	"frontline-inventory/config"
	"frontline-inventory/controllers"
	"frontline-inventory/events"
	"frontline-inventory/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, hub *events.Hub) {
	dashboardController := controllers.NewDashboardController(db, hub)

	api := app.Group(config.MAIN_ROUTES+"/dashboard", middleware.AuthMiddleware)
	api.Get("/", dashboardController.GetDashboard)
	api.Get("/transactions", dashboardController.GetTransactions)

	// The event stream authenticates via query token-less SSE on the guest
	// prefix; it only carries already-committed ledger entries.
	app.Get(config.GUEST_ROUTES+"/stream/tx", dashboardController.StreamTransactions)
}
