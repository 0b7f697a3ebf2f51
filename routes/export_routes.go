package routes

import (
	"frontline-inventory/config"
	"frontline-inventory/controllers"
	"frontline-inventory/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupExportRoutes(app *fiber.App, db *gorm.DB) {
	exportController := controllers.NewExportController(db)

	api := app.Group(config.MAIN_ROUTES+"/export", middleware.AuthMiddleware)
	api.Get("/items.xlsx", exportController.ExportItemsExcel)
	api.Get("/items.csv", exportController.ExportItemsCSV)
	api.Get("/items.json", exportController.ExportItemsJSON)
	api.Get("/transactions.xlsx", exportController.ExportTransactionsExcel)

	imp := app.Group(config.MAIN_ROUTES+"/import", middleware.AuthMiddleware, middleware.RequireAdmin)
	imp.Post("/items", exportController.ImportItems)

	alerts := app.Group(config.MAIN_ROUTES+"/alerts", middleware.AuthMiddleware, middleware.RequireAdmin)
	alerts.Post("/low-stock", exportController.SendLowStockAlert)
}
