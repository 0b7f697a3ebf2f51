package routes

import (
	"frontline-inventory/config"
	"frontline-inventory/controllers"
	"frontline-inventory/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCustomerRoutes(app *fiber.App, db *gorm.DB) {
	customerController := controllers.NewCustomerController(db)
	orderController := controllers.NewOrderController(db)

	api := app.Group(config.MAIN_ROUTES+"/customers", middleware.AuthMiddleware)
	api.Get("/", customerController.List)
	api.Post("/", customerController.Create)
	api.Put("/:id", customerController.Update)
	api.Delete("/:id", customerController.Delete)
	api.Get("/:id/open-order", orderController.OpenForCustomer)
}
