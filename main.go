package main

import (
	"log"
	"os"

	"frontline-inventory/config"
	"frontline-inventory/controllers/idgen"
	"frontline-inventory/database"
	"frontline-inventory/events"
	"frontline-inventory/middleware"
	"frontline-inventory/migration"
	"frontline-inventory/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()
	config.InitLogger()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	app := fiber.New()
	config.SetupCORS(app)
	app.Use(middleware.RequestLogger)

	hub := events.NewHub()

	routes.SetupAuthRoutes(app, db)
	routes.SetupItemRoutes(app, db, hub)
	routes.SetupUnitRoutes(app, db, hub)
	routes.SetupOrderRoutes(app, db)
	routes.SetupCustomerRoutes(app, db)
	routes.SetupDashboardRoutes(app, db, hub)
	routes.SetupExportRoutes(app, db)

	app.Static("/static/uploads", config.UploadDir)

	config.Log.Infow("server listening", "port", config.APP_PORT)
	if err := app.Listen(":" + config.APP_PORT); err != nil {
		log.Fatal(err)
	}
}
