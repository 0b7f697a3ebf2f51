package routes

import (
	"frontline-inventory/config"
	"frontline-inventory/controllers"
	"frontline-inventory/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOrderRoutes(app *fiber.App, db *gorm.DB) {
	orderController := controllers.NewOrderController(db)

	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)
	api.Get("/", orderController.List)
	api.Post("/", orderController.Create)
	api.Get("/next-code", orderController.NextCode)
	api.Get("/:id", orderController.Get)
	api.Delete("/:id", orderController.Delete)
	api.Post("/:id/lines", orderController.EnsureLine)
	api.Delete("/:id/lines/:itemId", orderController.DeleteLine)
	api.Post("/reserve-quantity", orderController.ReserveQuantity)
}
