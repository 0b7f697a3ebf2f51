package repositories

import (
	"errors"
	"fmt"
	"time"

	"frontline-inventory/config"
	"frontline-inventory/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemRepository owns item master data: creation from an explicit field
// struct, guarded deletion and the catalog queries.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// ItemFields is the closed set of writable item attributes. Category and
// location are referenced by name and resolved through lookup-or-create.
type ItemFields struct {
	SKU      string          `json:"sku" validate:"required"`
	Name     string          `json:"name"`
	MinQty   int             `json:"min_qty" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Notes    string          `json:"notes"`
	Category string          `json:"category"`
	Location string          `json:"location"`
}

func getOrCreateCategory(tx *gorm.DB, name string) (*models.Category, error) {
	var cat models.Category
	err := tx.Where("name = ?", name).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cat = models.Category{Name: name}
	if err := tx.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func getOrCreateLocation(tx *gorm.DB, name string) (*models.Location, error) {
	var loc models.Location
	err := tx.Where("name = ?", name).First(&loc).Error
	if err == nil {
		return &loc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	loc = models.Location{Name: name}
	if err := tx.Create(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func applyItemFields(tx *gorm.DB, item *models.Item, fields *ItemFields) error {
	item.SKU = fields.SKU
	item.Name = fields.Name
	if item.Name == "" {
		item.Name = fields.SKU
	}
	item.MinQty = fields.MinQty
	item.Price = fields.Price
	item.Currency = fields.Currency
	if item.Currency == "" {
		item.Currency = "NOK"
	}
	item.Notes = fields.Notes

	if fields.Category != "" {
		cat, err := getOrCreateCategory(tx, fields.Category)
		if err != nil {
			return err
		}
		item.CategoryID = &cat.ID
	} else {
		item.CategoryID = nil
	}
	if fields.Location != "" {
		loc, err := getOrCreateLocation(tx, fields.Location)
		if err != nil {
			return err
		}
		item.LocationID = &loc.ID
	} else {
		item.LocationID = nil
	}

	item.LastUpdated = time.Now().UTC()
	return nil
}

// CreateItem stores a new item from the explicit field set and leaves a
// zero-delta ledger entry so the item's history starts at its creation.
func (r *ItemRepository) CreateItem(fields *ItemFields, actor *models.User) (*models.Item, error) {
	if fields.SKU == "" {
		return nil, ErrInvalidArgument
	}
	var item models.Item
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := applyItemFields(tx, &item, fields); err != nil {
			return err
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		note := fmt.Sprintf("Create item %s", item.SKU)
		_, err := appendTx(tx, &item, 0, note, actor, nil, nil, nil)
		return err
	})
	if err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: sku %q", ErrInvalidArgument, fields.SKU)
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem rewrites an item's attributes from the explicit field set and
// audits the change with a zero-delta ledger entry. On-hand quantity is not
// writable here; it only moves through the stock ledger and the unit
// operations.
func (r *ItemRepository) UpdateItem(itemID uint, fields *ItemFields, actor *models.User) (*models.Item, error) {
	if fields.SKU == "" {
		return nil, ErrInvalidArgument
	}
	var item models.Item
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := applyItemFields(tx, &item, fields); err != nil {
			return err
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		note := fmt.Sprintf("Update item %s", item.SKU)
		_, err := appendTx(tx, &item, 0, note, actor, nil, nil, nil)
		return err
	})
	if err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: sku %q", ErrInvalidArgument, fields.SKU)
		}
		return nil, err
	}
	return &item, nil
}

// SetImagePath records the stored image location for an item.
func (r *ItemRepository) SetImagePath(itemID uint, path string) error {
	res := r.db.Model(&models.Item{}).Where("id = ?", itemID).Update("image_path", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item. When units or purchase order lines still
// reference it the delete is blocked until the caller confirms; a confirmed
// delete nulls every reference instead of cascading, so units and history
// survive as orphans, and leaves a final ledger entry.
func (r *ItemRepository) DeleteItem(itemID uint, confirmCode string, actor *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var units int64
		if err := tx.Model(&models.ItemUnit{}).
			Where("item_id = ?", itemID).
			Count(&units).Error; err != nil {
			return err
		}
		var poLines int64
		if err := tx.Model(&models.PurchaseOrderLine{}).
			Where("item_id = ?", itemID).
			Count(&poLines).Error; err != nil {
			return err
		}
		if (units > 0 || poLines > 0) && confirmCode != config.DeleteConfirmCode {
			return &ConfirmationRequiredError{
				Dependents: int(units + poLines),
				Detail:     fmt.Sprintf("item %s has %d units and %d purchase order lines", item.SKU, units, poLines),
			}
		}

		note := fmt.Sprintf("Delete item %s", item.SKU)
		if _, err := appendTx(tx, &item, 0, note, actor, nil, nil, nil); err != nil {
			return err
		}

		if err := tx.Model(&models.StockTx{}).
			Where("item_id = ?", itemID).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ItemUnit{}).
			Where("item_id = ?", itemID).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PurchaseOrderLine{}).
			Where("item_id = ?", itemID).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CustomerOrderLine{}).
			Where("item_id = ?", itemID).
			Update("item_id", nil).Error; err != nil {
			return err
		}

		// Hard delete so the sku can be reused.
		return tx.Unscoped().Delete(&item).Error
	})
}

// GetItem loads one item.
func (r *ItemRepository) GetItem(itemID uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetItemBySKU loads one item by its sku.
func (r *ItemRepository) GetItemBySKU(sku string) (*models.Item, error) {
	var item models.Item
	if err := r.db.Where("sku = ?", sku).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ItemQuery filters the catalog listing.
type ItemQuery struct {
	Search     string
	CategoryID *uint
	LocationID *uint
	LowStock   bool
}

// ListItems returns the catalog, optionally filtered.
func (r *ItemRepository) ListItems(q ItemQuery) ([]models.Item, error) {
	query := r.db.Model(&models.Item{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("sku LIKE ? OR name LIKE ?", pattern, pattern)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.LocationID != nil {
		query = query.Where("location_id = ?", *q.LocationID)
	}
	if q.LowStock {
		query = query.Where("min_qty > 0 AND qty <= min_qty")
	}
	var items []models.Item
	if err := query.Order("sku ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// LowStockItems returns every item at or below its minimum level.
func (r *ItemRepository) LowStockItems() ([]models.Item, error) {
	return r.ListItems(ItemQuery{LowStock: true})
}

// InventoryStats is the dashboard aggregate.
type InventoryStats struct {
	ItemCount  int64           `json:"item_count"`
	TotalQty   int64           `json:"total_qty"`
	TotalValue decimal.Decimal `json:"total_value"`
	LowStock   int64           `json:"low_stock"`
}

// Stats computes item count, total on-hand quantity, total value
// (sum of price times quantity) and the low stock count.
func (r *ItemRepository) Stats() (*InventoryStats, error) {
	stats := &InventoryStats{TotalValue: decimal.Zero}

	if err := r.db.Model(&models.Item{}).Count(&stats.ItemCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Item{}).
		Where("min_qty > 0 AND qty <= min_qty").
		Count(&stats.LowStock).Error; err != nil {
		return nil, err
	}

	// Price is stored as a decimal string by some drivers, so the value sum
	// is computed in Go rather than in SQL.
	var items []models.Item
	if err := r.db.Select("qty", "price").Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		stats.TotalQty += int64(item.Qty)
		stats.TotalValue = stats.TotalValue.Add(item.Value())
	}
	return stats, nil
}
