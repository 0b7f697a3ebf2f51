package models

import "gorm.io/gorm"

const (
	OrderOpen      = "open"
	OrderFulfilled = "fulfilled"
	OrderCancelled = "cancelled"
)

type Customer struct {
	gorm.Model
	Name  string `json:"name" gorm:"not null"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type PurchaseOrder struct {
	gorm.Model
	Code     string `json:"code" gorm:"uniqueIndex;not null"`
	Supplier string `json:"supplier"`
	Status   string `json:"status" gorm:"default:open"`
	Notes    string `json:"notes"`
}

type PurchaseOrderLine struct {
	gorm.Model
	PoID        uint  `json:"po_id" gorm:"index"`
	ItemID      *uint `json:"item_id" gorm:"index"`
	QtyOrdered  int   `json:"qty_ordered" gorm:"default:0"`
	QtyReceived int   `json:"qty_received" gorm:"default:0"`
}

// CustomerOrder is the outbound demand record. CustomerID is nullable so
// orders survive customer deletion as orphans.
type CustomerOrder struct {
	gorm.Model
	Code       string `json:"code" gorm:"uniqueIndex;not null"`
	CustomerID *uint  `json:"customer_id" gorm:"index"`
	Status     string `json:"status" gorm:"default:open;index"`
	Notes      string `json:"notes"`
}

// CustomerOrderLine is the per-(order, item) aggregate. QtyReserved and
// QtyFulfilled mirror the live unit counts for this pair and are updated in
// the same transaction as every unit transition.
type CustomerOrderLine struct {
	gorm.Model
	CoID         uint  `json:"co_id" gorm:"index"`
	ItemID       *uint `json:"item_id" gorm:"index"`
	QtyOrdered   int   `json:"qty_ordered" gorm:"default:0"`
	QtyReserved  int   `json:"qty_reserved" gorm:"default:0"`
	QtyFulfilled int   `json:"qty_fulfilled" gorm:"default:0"`
}
