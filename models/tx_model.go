package models

import "time"

// StockTx is one append-only audit ledger entry. SKU and Name are copied
// from the item at write time so history survives item deletion. Delta is 0
// for pure status transitions (reserve, release) and signed for stock-level
// changes. Rows are never updated or deleted, except when a destructive
// import replaces the whole ledger.
type StockTx struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ItemID   *uint     `json:"item_id" gorm:"index"`
	SKU      string    `json:"sku" gorm:"index"`
	Name     string    `json:"name"`
	Delta    int       `json:"delta"`
	Note     string    `json:"note"`
	Ts       time.Time `json:"ts" gorm:"index"`
	UserID   *uint     `json:"user_id"`
	UserName string    `json:"user_name"`
	UnitID   *uint     `json:"unit_id"`
	PoID     *uint     `json:"po_id"`
	CoID     *uint     `json:"co_id" gorm:"index"`
}
