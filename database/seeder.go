// database/seeder.go
package database

import (
	"errors"
	"log"
	"os"

	"frontline-inventory/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedAdminUser(db)
	SeedCategories(db)
	SeedLocations(db)
}

// SeedAdminUser creates the initial admin account when none exists. The
// password comes from ADMIN_PASSWORD, defaulting to "admin" for local runs.
func SeedAdminUser(db *gorm.DB) {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Unexpected DB error: %v", err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Username: "admin",
		Password: string(hashed),
		Name:     "Administrator",
		Email:    "admin@localhost",
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
}

func SeedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "GENERAL"},
		{Name: "CONSUMABLE"},
	}

	for _, c := range categories {
		var existing models.Category
		if err := db.Where("name = ?", c.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&c)
			}
		}
	}
}

func SeedLocations(db *gorm.DB) {
	locations := []models.Location{
		{Name: "MAIN"},
	}

	for _, l := range locations {
		var existing models.Location
		if err := db.Where("name = ?", l.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&l)
			}
		}
	}
}
