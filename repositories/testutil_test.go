package repositories

import (
	"testing"

	"frontline-inventory/config"
	"frontline-inventory/migration"
	"frontline-inventory/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testActor(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{Username: "tester", Name: "Tester", Email: "tester@localhost", Role: "admin"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

func mustReceive(t *testing.T, r *UnitRepository, sku string, qty int, poCode string) *models.Item {
	t.Helper()
	if _, err := r.Receive(sku, sku, qty, poCode, "", nil); err != nil {
		t.Fatalf("receive %d of %s: %v", qty, sku, err)
	}
	var item models.Item
	if err := r.db.Where("sku = ?", sku).First(&item).Error; err != nil {
		t.Fatalf("load item %s: %v", sku, err)
	}
	return &item
}

func mustCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := models.Customer{Name: name}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer %s: %v", name, err)
	}
	return &customer
}

func mustOrder(t *testing.T, db *gorm.DB, code string, customerID *uint) *models.CustomerOrder {
	t.Helper()
	co := models.CustomerOrder{Code: code, CustomerID: customerID, Status: models.OrderOpen}
	if err := db.Create(&co).Error; err != nil {
		t.Fatalf("create order %s: %v", code, err)
	}
	return &co
}

func itemQty(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()
	var item models.Item
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load item %d: %v", itemID, err)
	}
	return item.Qty
}

func unitStatuses(t *testing.T, db *gorm.DB, itemID uint) map[string]int {
	t.Helper()
	var units []models.ItemUnit
	if err := db.Where("item_id = ?", itemID).Find(&units).Error; err != nil {
		t.Fatalf("load units for item %d: %v", itemID, err)
	}
	counts := map[string]int{}
	for _, u := range units {
		status, ok := models.NormalizeUnitStatus(u.Status)
		if !ok {
			t.Fatalf("unit %d has unknown status %q", u.ID, u.Status)
		}
		counts[status]++
	}
	return counts
}

// checkLineMatchesUnits recomputes a line's counters from the unit rows and
// compares them against the stored aggregates.
func checkLineMatchesUnits(t *testing.T, db *gorm.DB, coID, itemID uint) {
	t.Helper()

	var line models.CustomerOrderLine
	if err := db.Where("co_id = ? AND item_id = ?", coID, itemID).First(&line).Error; err != nil {
		t.Fatalf("load line co=%d item=%d: %v", coID, itemID, err)
	}

	var reserved int64
	if err := db.Model(&models.ItemUnit{}).
		Where("item_id = ? AND reserved_co_id = ?", itemID, coID).
		Where("status IN ?", models.UnitStatusFilter(models.UnitReserved)).
		Count(&reserved).Error; err != nil {
		t.Fatalf("count reserved units: %v", err)
	}
	var fulfilled int64
	if err := db.Model(&models.ItemUnit{}).
		Where("item_id = ? AND reserved_co_id = ?", itemID, coID).
		Where("status IN ?", models.UnitStatusFilter(models.UnitConsumed)).
		Count(&fulfilled).Error; err != nil {
		t.Fatalf("count consumed units: %v", err)
	}

	if line.QtyReserved != int(reserved) {
		t.Fatalf("line reserved counter drifted: stored %d, units say %d", line.QtyReserved, reserved)
	}
	if line.QtyFulfilled != int(fulfilled) {
		t.Fatalf("line fulfilled counter drifted: stored %d, units say %d", line.QtyFulfilled, fulfilled)
	}
}

// checkUnitLinkInvariant verifies that every unit's order link matches its
// state: null iff available, set iff reserved or consumed.
func checkUnitLinkInvariant(t *testing.T, db *gorm.DB) {
	t.Helper()
	var units []models.ItemUnit
	if err := db.Find(&units).Error; err != nil {
		t.Fatalf("load units: %v", err)
	}
	for _, u := range units {
		status, _ := models.NormalizeUnitStatus(u.Status)
		switch status {
		case models.UnitAvailable:
			if u.ReservedCoID != nil {
				t.Fatalf("available unit %d still linked to order %d", u.ID, *u.ReservedCoID)
			}
			if u.UsedAt != nil {
				t.Fatalf("available unit %d still has consumption timestamp", u.ID)
			}
		case models.UnitReserved:
			if u.ReservedCoID == nil {
				t.Fatalf("reserved unit %d has no order link", u.ID)
			}
			if u.UsedAt != nil {
				t.Fatalf("reserved unit %d has consumption timestamp", u.ID)
			}
		case models.UnitConsumed:
			if u.ReservedCoID == nil {
				t.Fatalf("consumed unit %d has no order link", u.ID)
			}
			if u.UsedAt == nil {
				t.Fatalf("consumed unit %d has no consumption timestamp", u.ID)
			}
		}
	}
}
