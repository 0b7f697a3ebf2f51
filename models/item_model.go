package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}

type Location struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}

// Item is one stock keeping unit. Qty is the on-hand aggregate and is only
// mutated through the stock ledger so it never drops below zero.
type Item struct {
	gorm.Model
	SKU         string          `json:"sku" gorm:"uniqueIndex;not null"`
	Name        string          `json:"name"`
	Qty         int             `json:"qty" gorm:"default:0"`
	MinQty      int             `json:"min_qty" gorm:"default:0"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2)"`
	Currency    string          `json:"currency" gorm:"default:NOK"`
	Notes       string          `json:"notes"`
	ImagePath   string          `json:"image_path"`
	CategoryID  *uint           `json:"category_id"`
	LocationID  *uint           `json:"location_id"`
	LastUpdated time.Time       `json:"last_updated"`
}

// Value is price times on-hand quantity.
func (i *Item) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// LowStock reports whether the item is at or below its minimum level.
func (i *Item) LowStock() bool {
	return i.MinQty > 0 && i.Qty <= i.MinQty
}
