package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"frontline-inventory/config"
	"frontline-inventory/models"

	"gorm.io/gorm"
)

// codeRetries bounds the retry loop when two callers race to the same
// generated order code. The unique index on the code column makes the loser
// fail with a duplicate-key error, after which the whole transaction is
// retried with a fresh code.
const codeRetries = 3

// OrderRepository owns customers, customer orders, their lines and the
// convenience reservation path.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// generateCOCode computes the next free code of the form CO-<year>-NNN by
// scanning existing codes for the current year and taking max+1.
func generateCOCode(tx *gorm.DB) (string, error) {
	prefix := fmt.Sprintf("CO-%d-", time.Now().Year())

	var codes []string
	if err := tx.Model(&models.CustomerOrder{}).
		Where("code LIKE ?", prefix+"%").
		Pluck("code", &codes).Error; err != nil {
		return "", err
	}

	max := 0
	for _, code := range codes {
		if n, err := strconv.Atoi(strings.TrimPrefix(code, prefix)); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1), nil
}

// GenerateCOCode returns the next sequenced customer order code.
func (r *OrderRepository) GenerateCOCode() (string, error) {
	return generateCOCode(r.db)
}

// getOrCreateOpenCO finds the customer's most recent open order, or creates
// one with a freshly sequenced code. Most recent wins when legacy data holds
// more than one open order per customer.
func getOrCreateOpenCO(tx *gorm.DB, customerID uint) (*models.CustomerOrder, error) {
	var co models.CustomerOrder
	err := tx.Where("customer_id = ? AND status = ?", customerID, models.OrderOpen).
		Order("id DESC").
		First(&co).Error
	if err == nil {
		return &co, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code, err := generateCOCode(tx)
	if err != nil {
		return nil, err
	}
	co = models.CustomerOrder{Code: code, CustomerID: &customerID, Status: models.OrderOpen}
	if err := tx.Create(&co).Error; err != nil {
		return nil, err
	}
	return &co, nil
}

// GetOrCreateOpenCO looks up or creates the customer's single open order,
// retrying on a code collision.
func (r *OrderRepository) GetOrCreateOpenCO(customerID uint) (*models.CustomerOrder, error) {
	var co *models.CustomerOrder
	var lastErr error
	for attempt := 0; attempt < codeRetries; attempt++ {
		lastErr = r.db.Transaction(func(tx *gorm.DB) error {
			var err error
			co, err = getOrCreateOpenCO(tx, customerID)
			return err
		})
		if lastErr == nil {
			return co, nil
		}
		if !isDuplicateErr(lastErr) {
			return nil, lastErr
		}
	}
	return nil, ErrCodeConflict
}

// CreateCustomerOrder creates an order. An empty code requests a sequenced
// one; an explicit code that is already taken fails with ErrCodeConflict.
func (r *OrderRepository) CreateCustomerOrder(customerID *uint, code, notes string) (*models.CustomerOrder, error) {
	if customerID != nil {
		var customer models.Customer
		if err := r.db.First(&customer, *customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	generated := code == ""
	var co *models.CustomerOrder
	var lastErr error
	for attempt := 0; attempt < codeRetries; attempt++ {
		lastErr = r.db.Transaction(func(tx *gorm.DB) error {
			useCode := code
			if generated {
				var err error
				useCode, err = generateCOCode(tx)
				if err != nil {
					return err
				}
			}
			co = &models.CustomerOrder{Code: useCode, CustomerID: customerID, Status: models.OrderOpen, Notes: notes}
			return tx.Create(co).Error
		})
		if lastErr == nil {
			return co, nil
		}
		if !isDuplicateErr(lastErr) {
			return nil, lastErr
		}
		if !generated {
			return nil, ErrCodeConflict
		}
	}
	return nil, ErrCodeConflict
}

// ReserveQuantityForCustomer reserves up to qty available units of the item
// against the customer's open order, creating the order if needed. Partial
// fill is accepted: the returned count is how many units were actually
// reserved, zero included, and the line's ordered and reserved counters move
// by that count rather than by the request.
func (r *OrderRepository) ReserveQuantityForCustomer(itemID uint, qty int, customerID uint, note string, actor *models.User, coID *uint) (*models.CustomerOrder, int, error) {
	if qty <= 0 {
		return nil, 0, ErrInvalidArgument
	}

	var co *models.CustomerOrder
	var reserved int
	var lastErr error
	for attempt := 0; attempt < codeRetries; attempt++ {
		lastErr = r.db.Transaction(func(tx *gorm.DB) error {
			item, err := getItem(tx, itemID)
			if err != nil {
				return err
			}
			var customer models.Customer
			if err := tx.First(&customer, customerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			if coID != nil {
				var named models.CustomerOrder
				if err := tx.First(&named, *coID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrNotFound
					}
					return err
				}
				if named.Status != models.OrderOpen {
					return ErrInvalidArgument
				}
				switch {
				case named.CustomerID == nil:
					// Adopt the unowned order for this customer.
					named.CustomerID = &customer.ID
					if err := tx.Save(&named).Error; err != nil {
						return err
					}
				case *named.CustomerID != customer.ID:
					return ErrInvalidArgument
				}
				co = &named
			} else {
				co, err = getOrCreateOpenCO(tx, customer.ID)
				if err != nil {
					return err
				}
			}

			units, err := selectUnits(tx, item.ID, models.UnitAvailable, nil, qty)
			if err != nil {
				return err
			}
			reserved = len(units)
			if reserved == 0 {
				return nil
			}

			if err := tx.Model(&models.ItemUnit{}).
				Where("id IN ?", unitIDsOf(units)).
				Updates(map[string]interface{}{
					"status":         models.UnitReserved,
					"reserved_co_id": co.ID,
				}).Error; err != nil {
				return err
			}

			line, err := ensureLine(tx, co.ID, item.ID)
			if err != nil {
				return err
			}
			line.QtyOrdered += reserved
			line.QtyReserved += reserved
			if err := tx.Save(line).Error; err != nil {
				return err
			}

			for i := range units {
				unitNote := note
				if unitNote == "" {
					unitNote = fmt.Sprintf("Reserve for %s", co.Code)
				}
				if _, err := appendTx(tx, item, 0, unitNote, actor, &units[i].ID, nil, &co.ID); err != nil {
					return err
				}
			}
			return nil
		})
		if lastErr == nil {
			return co, reserved, nil
		}
		if !isDuplicateErr(lastErr) {
			return nil, 0, lastErr
		}
	}
	return nil, 0, ErrCodeConflict
}

// EnsureLine gets or creates the single line for the (order, item) pair.
func (r *OrderRepository) EnsureLine(coID, itemID uint) (*models.CustomerOrderLine, error) {
	var line *models.CustomerOrderLine
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.CustomerOrder{}, coID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.First(&models.Item{}, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var err error
		line, err = ensureLine(tx, coID, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine removes the (order, item) line. Any units still reserved for
// the pair are released back to available first.
func (r *OrderRepository) DeleteLine(coID, itemID uint, actor *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var line models.CustomerOrderLine
		if err := tx.Where("co_id = ? AND item_id = ?", coID, itemID).First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var held []models.ItemUnit
		if err := forUpdate(tx).
			Where("item_id = ? AND reserved_co_id = ?", itemID, coID).
			Where("status IN ?", models.UnitStatusFilter(models.UnitReserved)).
			Find(&held).Error; err != nil {
			return err
		}
		if len(held) > 0 {
			if err := tx.Model(&models.ItemUnit{}).
				Where("id IN ?", unitIDsOf(held)).
				Updates(map[string]interface{}{
					"status":         models.UnitAvailable,
					"reserved_co_id": nil,
				}).Error; err != nil {
				return err
			}
			var item models.Item
			if err := tx.First(&item, itemID).Error; err == nil {
				note := fmt.Sprintf("Delete order line, released %d pcs", len(held))
				if _, err := appendTx(tx, &item, 0, note, actor, nil, nil, &coID); err != nil {
					return err
				}
			}
		}

		return tx.Unscoped().Delete(&line).Error
	})
}

// CreateCustomer stores a new customer.
func (r *OrderRepository) CreateCustomer(customer *models.Customer) error {
	if customer.Name == "" {
		return ErrInvalidArgument
	}
	return r.db.Create(customer).Error
}

// DeleteCustomer removes a customer. When the customer still owns orders the
// delete is blocked until the caller confirms. A confirmed delete either
// orphans the orders (the default) or, with deleteOrders set, removes them
// the same way DeleteCustomerOrder would.
func (r *OrderRepository) DeleteCustomer(customerID uint, confirmCode string, deleteOrders bool, actor *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var orders []models.CustomerOrder
		if err := tx.Where("customer_id = ?", customerID).
			Order("id ASC").
			Find(&orders).Error; err != nil {
			return err
		}
		if len(orders) > 0 && confirmCode != config.DeleteConfirmCode {
			return &ConfirmationRequiredError{
				Dependents: len(orders),
				Detail:     fmt.Sprintf("customer %q still owns orders", customer.Name),
			}
		}

		if deleteOrders {
			for i := range orders {
				if err := deleteCustomerOrderTx(tx, &orders[i]); err != nil {
					return err
				}
			}
		} else if err := tx.Model(&models.CustomerOrder{}).
			Where("customer_id = ?", customerID).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&customer).Error
	})
}

// DeleteCustomerOrder removes an order. When units are still reserved
// against it, or lines exist, the delete is blocked until the caller
// confirms. On confirmed delete reserved units go back to available, every
// unit and ledger link to the order is nulled, and the lines are removed.
func (r *OrderRepository) DeleteCustomerOrder(coID uint, confirmCode string, actor *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var co models.CustomerOrder
		if err := tx.First(&co, coID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var reserved int64
		if err := tx.Model(&models.ItemUnit{}).
			Where("reserved_co_id = ?", coID).
			Where("status IN ?", models.UnitStatusFilter(models.UnitReserved)).
			Count(&reserved).Error; err != nil {
			return err
		}
		var lines int64
		if err := tx.Model(&models.CustomerOrderLine{}).
			Where("co_id = ?", coID).
			Count(&lines).Error; err != nil {
			return err
		}
		if (reserved > 0 || lines > 0) && confirmCode != config.DeleteConfirmCode {
			return &ConfirmationRequiredError{
				Dependents: int(reserved + lines),
				Detail:     fmt.Sprintf("order %s still has %d reserved units and %d lines", co.Code, reserved, lines),
			}
		}

		return deleteCustomerOrderTx(tx, &co)
	})
}

// deleteCustomerOrderTx removes an order inside an open transaction: reserved
// units go back to available, every unit and ledger link to the order is
// nulled, the lines are removed, then the order itself.
func deleteCustomerOrderTx(tx *gorm.DB, co *models.CustomerOrder) error {
	if err := tx.Model(&models.ItemUnit{}).
		Where("reserved_co_id = ?", co.ID).
		Where("status IN ?", models.UnitStatusFilter(models.UnitReserved)).
		Updates(map[string]interface{}{
			"status":         models.UnitAvailable,
			"reserved_co_id": nil,
		}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.ItemUnit{}).
		Where("reserved_co_id = ?", co.ID).
		Update("reserved_co_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.StockTx{}).
		Where("co_id = ?", co.ID).
		Update("co_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().
		Where("co_id = ?", co.ID).
		Delete(&models.CustomerOrderLine{}).Error; err != nil {
		return err
	}
	// Hard delete so the code can be reissued by the sequencer.
	return tx.Unscoped().Delete(co).Error
}

// GetOrder returns an order with its lines.
func (r *OrderRepository) GetOrder(coID uint) (*models.CustomerOrder, []models.CustomerOrderLine, error) {
	var co models.CustomerOrder
	if err := r.db.First(&co, coID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	var lines []models.CustomerOrderLine
	if err := r.db.Where("co_id = ?", coID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, nil, err
	}
	return &co, lines, nil
}

// ListOrders returns orders, optionally filtered by customer and status.
func (r *OrderRepository) ListOrders(customerID *uint, status string) ([]models.CustomerOrder, error) {
	q := r.db.Model(&models.CustomerOrder{})
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.CustomerOrder
	if err := q.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
