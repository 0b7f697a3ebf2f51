package routes

import (
	"frontline-inventory/config"
	"frontline-inventory/controllers"
	"frontline-inventory/events"
	"frontline-inventory/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupItemRoutes(app *fiber.App, db *gorm.DB, hub *events.Hub) {
	itemController := controllers.NewItemController(db, hub)

	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)
	api.Get("/", itemController.GetItems)
	api.Post("/", itemController.CreateItem)
	api.Get("/:id", itemController.GetItem)
	api.Put("/:id", itemController.UpdateItem)
	api.Delete("/:id", itemController.DeleteItem)
	api.Post("/:id/adjust", itemController.AdjustStock)
	api.Post("/:id/image", itemController.UploadImage)
}
