package migration

import (
	"frontline-inventory/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Item{},
		&models.ItemUnit{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
		&models.Customer{},
		&models.CustomerOrder{},
		&models.CustomerOrderLine{},
		&models.StockTx{},
	)
}
