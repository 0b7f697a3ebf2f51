package routes

import (
	"frontline-inventory/config"
	"frontline-inventory/controllers"
	"frontline-inventory/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)
	api.Post("/logout", middleware.AuthMiddleware, authController.Logout)
	api.Get("/me", middleware.AuthMiddleware, authController.Me)
	api.Post("/register", middleware.AuthMiddleware, middleware.RequireAdmin, authController.Register)
}
