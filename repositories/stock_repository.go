package repositories

import (
	"errors"
	"fmt"
	"time"

	"frontline-inventory/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockRepository owns the stock ledger: manual adjustments, the audit trail
// queries and the bulk import paths.
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// AdjustStock applies a signed delta to an item's on-hand quantity, floored
// at zero, and appends a ledger entry. The entry records the effective delta
// after flooring, so the ledger always sums to the observed quantity.
func (r *StockRepository) AdjustStock(itemID uint, delta int, note string, actor *models.User) (*models.StockTx, error) {
	if delta == 0 {
		return nil, ErrInvalidArgument
	}
	var entry *models.StockTx
	err := r.db.Transaction(func(tx *gorm.DB) error {
		item, err := getItem(tx, itemID)
		if err != nil {
			return err
		}
		entry, err = adjustStockTx(tx, item, delta, note, actor, nil, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// TxQuery filters the ledger listing.
type TxQuery struct {
	ItemID *uint
	CoID   *uint
	SKU    string
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

// ListTx returns ledger entries, newest first.
func (r *StockRepository) ListTx(q TxQuery) ([]models.StockTx, error) {
	query := r.db.Model(&models.StockTx{})
	if q.ItemID != nil {
		query = query.Where("item_id = ?", *q.ItemID)
	}
	if q.CoID != nil {
		query = query.Where("co_id = ?", *q.CoID)
	}
	if q.SKU != "" {
		query = query.Where("sku = ?", q.SKU)
	}
	if q.Since != nil {
		query = query.Where("ts >= ?", *q.Since)
	}
	if q.Until != nil {
		query = query.Where("ts <= ?", *q.Until)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	var entries []models.StockTx
	if err := query.Order("ts DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ImportRow is one inbound catalog row from a CSV or JSON import.
type ImportRow struct {
	SKU      string          `json:"sku" validate:"required"`
	Name     string          `json:"name"`
	Qty      int             `json:"qty" validate:"gte=0"`
	MinQty   int             `json:"min_qty" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Notes    string          `json:"notes"`
}

const (
	ImportModeMerge   = "merge"
	ImportModeReplace = "replace"
)

// ImportItems loads a catalog snapshot. Merge upserts by sku and adjusts
// quantities through the ledger; replace drops the entire catalog and ledger
// first and rebuilds from the rows. Replace is the one sanctioned path that
// deletes ledger history.
func (r *StockRepository) ImportItems(rows []ImportRow, mode string, actor *models.User) (int, error) {
	if mode != ImportModeMerge && mode != ImportModeReplace {
		return 0, ErrInvalidArgument
	}
	for _, row := range rows {
		if row.SKU == "" || row.Qty < 0 {
			return 0, ErrInvalidArgument
		}
	}

	imported := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if mode == ImportModeReplace {
			if err := tx.Unscoped().Where("1 = 1").Delete(&models.StockTx{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.ItemUnit{}).
				Where("item_id IS NOT NULL").
				Update("item_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("1 = 1").Delete(&models.Item{}).Error; err != nil {
				return err
			}
		}

		for _, row := range rows {
			var item models.Item
			err := tx.Where("sku = ?", row.SKU).First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				name := row.Name
				if name == "" {
					name = row.SKU
				}
				currency := row.Currency
				if currency == "" {
					currency = "NOK"
				}
				item = models.Item{
					SKU:         row.SKU,
					Name:        name,
					MinQty:      row.MinQty,
					Price:       row.Price,
					Currency:    currency,
					Notes:       row.Notes,
					LastUpdated: time.Now().UTC(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				item.Name = row.Name
				item.MinQty = row.MinQty
				item.Price = row.Price
				if row.Currency != "" {
					item.Currency = row.Currency
				}
				item.Notes = row.Notes
				item.LastUpdated = time.Now().UTC()
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}

			if delta := row.Qty - item.Qty; delta != 0 {
				note := fmt.Sprintf("Import %s", mode)
				if _, err := adjustStockTx(tx, &item, delta, note, actor, nil, nil); err != nil {
					return err
				}
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
