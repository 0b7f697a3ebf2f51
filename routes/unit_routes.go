package routes

import (
	"frontline-inventory/config"
	"frontline-inventory/controllers"
	"frontline-inventory/events"
	"frontline-inventory/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUnitRoutes(app *fiber.App, db *gorm.DB, hub *events.Hub) {
	unitController := controllers.NewUnitController(db, hub)

	api := app.Group(config.MAIN_ROUTES+"/units", middleware.AuthMiddleware)
	api.Get("/", unitController.List)
	api.Post("/receive", unitController.Receive)
	api.Post("/reserve", unitController.Reserve)
	api.Post("/release", unitController.Release)
	api.Post("/fulfill", unitController.Fulfill)
	api.Post("/unfulfill", unitController.Unfulfill)
	api.Post("/issue", unitController.Issue)
	api.Post("/reserve-by-id", unitController.ReserveByID)
	api.Post("/unreserve-by-id", unitController.UnreserveByID)
	api.Get("/counts/:id", unitController.Counts)
}
