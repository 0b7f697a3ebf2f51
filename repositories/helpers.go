package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"frontline-inventory/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds row locking to the unit-selection-then-mutate reads. The
// sqlite dialect used by the test suite has no SELECT ... FOR UPDATE; its
// single-writer model makes the lock redundant there anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// isDuplicateErr reports whether err is a unique-constraint violation. Not
// every driver translates to gorm.ErrDuplicatedKey, so fall back to message
// matching.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}

// ensureLine returns the single CustomerOrderLine for (co, item), creating a
// zeroed row if none exists. Every counter mutation goes through the row this
// returns so there is never more than one line per pair.
func ensureLine(tx *gorm.DB, coID, itemID uint) (*models.CustomerOrderLine, error) {
	var line models.CustomerOrderLine
	err := tx.Where("co_id = ? AND item_id = ?", coID, itemID).First(&line).Error
	if err == nil {
		return &line, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	line = models.CustomerOrderLine{CoID: coID, ItemID: &itemID}
	if err := tx.Create(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// appendTx writes one audit ledger row, copying sku and name from the item so
// the entry survives item deletion.
func appendTx(tx *gorm.DB, item *models.Item, delta int, note string, actor *models.User, unitID, poID, coID *uint) (*models.StockTx, error) {
	entry := models.StockTx{
		Delta:  delta,
		Note:   note,
		Ts:     time.Now().UTC(),
		UnitID: unitID,
		PoID:   poID,
		CoID:   coID,
	}
	if item != nil {
		entry.ItemID = &item.ID
		entry.SKU = item.SKU
		entry.Name = item.Name
	}
	if actor != nil {
		entry.UserID = &actor.ID
		entry.UserName = actor.Username
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// adjustStockTx is the single mutation point for item on-hand quantity. The
// result is floored at zero and the ledger entry records the effective delta,
// so logged deltas always match the observed quantity change even when the
// floor clips a negative adjustment.
func adjustStockTx(tx *gorm.DB, item *models.Item, delta int, note string, actor *models.User, poID, coID *uint) (*models.StockTx, error) {
	newQty := item.Qty + delta
	if newQty < 0 {
		newQty = 0
	}
	effective := newQty - item.Qty

	item.Qty = newQty
	item.LastUpdated = time.Now().UTC()
	if err := tx.Model(item).Updates(map[string]interface{}{
		"qty":          item.Qty,
		"last_updated": item.LastUpdated,
	}).Error; err != nil {
		return nil, err
	}

	if note == "" {
		note = fmt.Sprintf("Adjust %+d", effective)
	}
	return appendTx(tx, item, effective, note, actor, nil, poID, coID)
}

// uintPtr is a convenience for optional foreign keys.
func uintPtr(v uint) *uint {
	return &v
}
