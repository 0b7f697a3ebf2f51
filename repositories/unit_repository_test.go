package repositories

import (
	"errors"
	"testing"

	"frontline-inventory/models"
)

func TestReceiveCreatesUnitsAndStock(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	entry, err := r.Receive("WIDGET", "Widget", 5, "PO-2025-001", "", nil)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if entry.Delta != 5 {
		t.Fatalf("expected ledger delta +5, got %+d", entry.Delta)
	}

	var item models.Item
	if err := db.Where("sku = ?", "WIDGET").First(&item).Error; err != nil {
		t.Fatalf("item not created: %v", err)
	}
	if item.Qty != 5 {
		t.Fatalf("expected qty 5, got %d", item.Qty)
	}

	counts := unitStatuses(t, db, item.ID)
	if counts[models.UnitAvailable] != 5 {
		t.Fatalf("expected 5 available units, got %d", counts[models.UnitAvailable])
	}

	var po models.PurchaseOrder
	if err := db.Where("code = ?", "PO-2025-001").First(&po).Error; err != nil {
		t.Fatalf("purchase order not created: %v", err)
	}
	var line models.PurchaseOrderLine
	if err := db.Where("po_id = ? AND item_id = ?", po.ID, item.ID).First(&line).Error; err != nil {
		t.Fatalf("purchase order line not created: %v", err)
	}
	if line.QtyReceived != 5 {
		t.Fatalf("expected received 5, got %d", line.QtyReceived)
	}

	// Receiving the same sku again reuses the item and the po line.
	if _, err := r.Receive("WIDGET", "", 3, "PO-2025-001", "", nil); err != nil {
		t.Fatalf("second receive: %v", err)
	}
	if qty := itemQty(t, db, item.ID); qty != 8 {
		t.Fatalf("expected qty 8 after second receive, got %d", qty)
	}
	if err := db.Where("po_id = ? AND item_id = ?", po.ID, item.ID).First(&line).Error; err != nil {
		t.Fatalf("reload po line: %v", err)
	}
	if line.QtyReceived != 8 {
		t.Fatalf("expected received 8, got %d", line.QtyReceived)
	}
}

func TestReceiveRejectsBadArguments(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	if _, err := r.Receive("", "x", 1, "", "", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty sku, got %v", err)
	}
	if _, err := r.Receive("WIDGET", "", 0, "", "", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for qty 0, got %v", err)
	}
	if _, err := r.Receive("WIDGET", "", -2, "", "", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative qty, got %v", err)
	}
}

func TestReserveIsFIFO(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 3, "")
	co := mustOrder(t, db, "CO-2025-001", nil)

	var all []models.ItemUnit
	if err := db.Where("item_id = ?", item.ID).Order("id ASC").Find(&all).Error; err != nil {
		t.Fatalf("load units: %v", err)
	}

	if err := r.ReserveUnits(item.ID, co.ID, 2, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	var reserved []models.ItemUnit
	if err := db.Where("item_id = ? AND status = ?", item.ID, models.UnitReserved).
		Order("id ASC").Find(&reserved).Error; err != nil {
		t.Fatalf("load reserved units: %v", err)
	}
	if len(reserved) != 2 {
		t.Fatalf("expected 2 reserved units, got %d", len(reserved))
	}
	if reserved[0].ID != all[0].ID || reserved[1].ID != all[1].ID {
		t.Fatalf("expected oldest units %d,%d reserved, got %d,%d",
			all[0].ID, all[1].ID, reserved[0].ID, reserved[1].ID)
	}
}

func TestReserveInsufficientHasNoPartialEffect(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 2, "")
	co := mustOrder(t, db, "CO-2025-001", nil)

	err := r.ReserveUnits(item.ID, co.ID, 5, "", nil)
	var insufficient *InsufficientUnitsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientUnitsError, got %v", err)
	}
	if insufficient.Requested != 5 || insufficient.Available != 2 {
		t.Fatalf("expected requested=5 available=2, got %+v", insufficient)
	}

	counts := unitStatuses(t, db, item.ID)
	if counts[models.UnitAvailable] != 2 || counts[models.UnitReserved] != 0 {
		t.Fatalf("units mutated on failed reserve: %v", counts)
	}
	var lines int64
	db.Model(&models.CustomerOrderLine{}).Where("co_id = ?", co.ID).Count(&lines)
	if lines != 0 {
		t.Fatalf("line created on failed reserve")
	}
	if qty := itemQty(t, db, item.ID); qty != 2 {
		t.Fatalf("item qty changed on failed reserve: %d", qty)
	}
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 4, "")
	co := mustOrder(t, db, "CO-2025-001", nil)

	if err := r.ReserveUnits(item.ID, co.ID, 3, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	checkLineMatchesUnits(t, db, co.ID, item.ID)

	if err := r.ReleaseUnits(item.ID, co.ID, 3, "", nil); err != nil {
		t.Fatalf("release: %v", err)
	}
	checkLineMatchesUnits(t, db, co.ID, item.ID)
	checkUnitLinkInvariant(t, db)

	counts := unitStatuses(t, db, item.ID)
	if counts[models.UnitAvailable] != 4 {
		t.Fatalf("expected all units available again, got %v", counts)
	}
	// Reserve and release are status-only: stock never moved.
	if qty := itemQty(t, db, item.ID); qty != 4 {
		t.Fatalf("expected qty 4, got %d", qty)
	}
}

func TestReleaseMoreThanHeldFails(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 4, "")
	co := mustOrder(t, db, "CO-2025-001", nil)

	if err := r.ReserveUnits(item.ID, co.ID, 2, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	err := r.ReleaseUnits(item.ID, co.ID, 3, "", nil)
	var insufficient *InsufficientUnitsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientUnitsError, got %v", err)
	}
	if insufficient.State != models.UnitReserved || insufficient.Available != 2 {
		t.Fatalf("unexpected error detail: %+v", insufficient)
	}
	checkLineMatchesUnits(t, db, co.ID, item.ID)
}

func TestFulfillScenario(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)
	actor := testActor(t, db)

	item := mustReceive(t, r, "WIDGET", 5, "PO-2025-001")
	co := mustOrder(t, db, "CO-2025-001", nil)

	if err := r.ReserveUnits(item.ID, co.ID, 3, "", actor); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	counts := unitStatuses(t, db, item.ID)
	if counts[models.UnitReserved] != 3 || counts[models.UnitAvailable] != 2 {
		t.Fatalf("expected 3 reserved / 2 available, got %v", counts)
	}

	entry, err := r.FulfillUnits(item.ID, co.ID, 3, "", actor)
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if entry.Delta != -3 {
		t.Fatalf("expected ledger delta -3, got %+d", entry.Delta)
	}
	if entry.UserName != actor.Username {
		t.Fatalf("expected actor %q recorded, got %q", actor.Username, entry.UserName)
	}

	if qty := itemQty(t, db, item.ID); qty != 2 {
		t.Fatalf("expected qty 2 after fulfill, got %d", qty)
	}
	var line models.CustomerOrderLine
	if err := db.Where("co_id = ? AND item_id = ?", co.ID, item.ID).First(&line).Error; err != nil {
		t.Fatalf("load line: %v", err)
	}
	if line.QtyFulfilled != 3 || line.QtyReserved != 0 {
		t.Fatalf("expected fulfilled=3 reserved=0, got fulfilled=%d reserved=%d",
			line.QtyFulfilled, line.QtyReserved)
	}
	checkLineMatchesUnits(t, db, co.ID, item.ID)
	checkUnitLinkInvariant(t, db)
}

func TestFulfillRequiresReservation(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 5, "")
	co := mustOrder(t, db, "CO-2025-001", nil)

	// No units reserved for the order: fulfill must not consume available
	// stock directly.
	_, err := r.FulfillUnits(item.ID, co.ID, 2, "", nil)
	var insufficient *InsufficientUnitsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientUnitsError, got %v", err)
	}
	if insufficient.State != models.UnitReserved {
		t.Fatalf("expected reserved-state shortfall, got %q", insufficient.State)
	}
}

func TestUnfulfillRestoresUnitsAndStock(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 5, "")
	co := mustOrder(t, db, "CO-2025-001", nil)

	if err := r.ReserveUnits(item.ID, co.ID, 3, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := r.FulfillUnits(item.ID, co.ID, 3, "", nil); err != nil {
		t.Fatalf("fulfill: %v", err)
	}

	entry, err := r.UnfulfillUnits(item.ID, co.ID, 2, "", nil)
	if err != nil {
		t.Fatalf("unfulfill: %v", err)
	}
	if entry.Delta != 2 {
		t.Fatalf("expected ledger delta +2, got %+d", entry.Delta)
	}

	if qty := itemQty(t, db, item.ID); qty != 4 {
		t.Fatalf("expected qty 4, got %d", qty)
	}
	counts := unitStatuses(t, db, item.ID)
	if counts[models.UnitAvailable] != 4 || counts[models.UnitConsumed] != 1 {
		t.Fatalf("expected 4 available / 1 consumed, got %v", counts)
	}
	checkLineMatchesUnits(t, db, co.ID, item.ID)
	checkUnitLinkInvariant(t, db)
}

func TestRoundTripReturnsToBaseline(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 2, "")
	baseline := itemQty(t, db, item.ID)
	co := mustOrder(t, db, "CO-2025-001", nil)

	if _, err := r.Receive("WIDGET", "", 4, "", "", nil); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if err := r.ReserveUnits(item.ID, co.ID, 4, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := r.FulfillUnits(item.ID, co.ID, 4, "", nil); err != nil {
		t.Fatalf("fulfill: %v", err)
	}

	if qty := itemQty(t, db, item.ID); qty != baseline {
		t.Fatalf("expected qty back at %d, got %d", baseline, qty)
	}
	var line models.CustomerOrderLine
	if err := db.Where("co_id = ? AND item_id = ?", co.ID, item.ID).First(&line).Error; err != nil {
		t.Fatalf("load line: %v", err)
	}
	if line.QtyFulfilled != 4 || line.QtyReserved != 0 {
		t.Fatalf("expected fulfilled=4 reserved=0, got %+v", line)
	}
}

func TestIssueUnitsGroupsAndSkips(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	itemA := mustReceive(t, r, "ALPHA", 2, "PO-2025-001")
	itemB := mustReceive(t, r, "BETA", 2, "PO-2025-002")

	var unitsA, unitsB []models.ItemUnit
	if err := db.Where("item_id = ?", itemA.ID).Order("id ASC").Find(&unitsA).Error; err != nil {
		t.Fatalf("load units: %v", err)
	}
	if err := db.Where("item_id = ?", itemB.ID).Order("id ASC").Find(&unitsB).Error; err != nil {
		t.Fatalf("load units: %v", err)
	}

	// Consume one unit up front so the batch has something to skip.
	co := mustOrder(t, db, "CO-2025-009", nil)
	if err := r.ReserveUnits(itemB.ID, co.ID, 1, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := r.FulfillUnits(itemB.ID, co.ID, 1, "", nil); err != nil {
		t.Fatalf("fulfill: %v", err)
	}

	ids := []uint{unitsA[0].ID, unitsA[1].ID, unitsB[0].ID, unitsB[1].ID}
	count, err := r.IssueUnits(ids, "CO-2025-010", "", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 issued (one already consumed), got %d", count)
	}

	if qty := itemQty(t, db, itemA.ID); qty != 0 {
		t.Fatalf("expected ALPHA qty 0, got %d", qty)
	}
	if qty := itemQty(t, db, itemB.ID); qty != 0 {
		t.Fatalf("expected BETA qty 0, got %d", qty)
	}

	// One ledger entry per (item, po) group with the group-sized delta.
	var entries []models.StockTx
	var issueCo models.CustomerOrder
	if err := db.Where("code = ?", "CO-2025-010").First(&issueCo).Error; err != nil {
		t.Fatalf("issue order not created: %v", err)
	}
	if err := db.Where("co_id = ? AND delta < 0", issueCo.ID).Order("id ASC").Find(&entries).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 grouped ledger entries, got %d", len(entries))
	}
	if entries[0].Delta != -2 || entries[1].Delta != -1 {
		t.Fatalf("expected deltas -2,-1, got %+d,%+d", entries[0].Delta, entries[1].Delta)
	}
	checkUnitLinkInvariant(t, db)
}

func TestIssueReservedUnitReleasesOldHold(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 2, "")
	oldCo := mustOrder(t, db, "CO-2025-001", nil)
	if err := r.ReserveUnits(item.ID, oldCo.ID, 2, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	var units []models.ItemUnit
	if err := db.Where("item_id = ?", item.ID).Order("id ASC").Find(&units).Error; err != nil {
		t.Fatalf("load units: %v", err)
	}

	count, err := r.IssueUnits([]uint{units[0].ID}, "CO-2025-002", "", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 issued, got %d", count)
	}

	checkLineMatchesUnits(t, db, oldCo.ID, item.ID)
	var newCo models.CustomerOrder
	if err := db.Where("code = ?", "CO-2025-002").First(&newCo).Error; err != nil {
		t.Fatalf("issue order not created: %v", err)
	}
	checkLineMatchesUnits(t, db, newCo.ID, item.ID)
	checkUnitLinkInvariant(t, db)
}

func TestReserveUnitsByIDSkipsNonAvailable(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 3, "")
	blocker := mustOrder(t, db, "CO-2025-001", nil)
	if err := r.ReserveUnits(item.ID, blocker.ID, 1, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	var units []models.ItemUnit
	if err := db.Where("item_id = ?", item.ID).Order("id ASC").Find(&units).Error; err != nil {
		t.Fatalf("load units: %v", err)
	}

	ids := []uint{units[0].ID, units[1].ID, units[2].ID}
	count, err := r.ReserveUnitsByID(ids, "CO-2025-002", "", nil)
	if err != nil {
		t.Fatalf("reserve by id: %v", err)
	}
	// The unit already held by the first order is skipped, not an error.
	if count != 2 {
		t.Fatalf("expected 2 reserved, got %d", count)
	}

	var co models.CustomerOrder
	if err := db.Where("code = ?", "CO-2025-002").First(&co).Error; err != nil {
		t.Fatalf("order not created: %v", err)
	}
	checkLineMatchesUnits(t, db, co.ID, item.ID)
	checkLineMatchesUnits(t, db, blocker.ID, item.ID)
}

func TestUnreserveUnitsByID(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 3, "")
	co := mustOrder(t, db, "CO-2025-001", nil)
	if err := r.ReserveUnits(item.ID, co.ID, 2, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	var units []models.ItemUnit
	if err := db.Where("item_id = ?", item.ID).Order("id ASC").Find(&units).Error; err != nil {
		t.Fatalf("load units: %v", err)
	}

	// Mix one available unit into the batch; it is skipped.
	ids := []uint{units[0].ID, units[2].ID}
	count, err := r.UnreserveUnitsByID(ids, "", nil)
	if err != nil {
		t.Fatalf("unreserve by id: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 unreserved, got %d", count)
	}

	checkLineMatchesUnits(t, db, co.ID, item.ID)
	checkUnitLinkInvariant(t, db)
}

func TestCountUnits(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 5, "")
	co := mustOrder(t, db, "CO-2025-001", nil)
	if err := r.ReserveUnits(item.ID, co.ID, 3, "", nil); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := r.FulfillUnits(item.ID, co.ID, 2, "", nil); err != nil {
		t.Fatalf("fulfill: %v", err)
	}

	counts, err := r.CountUnits(item.ID)
	if err != nil {
		t.Fatalf("count units: %v", err)
	}
	if counts.Available != 2 || counts.Reserved != 1 || counts.Consumed != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestCountUnitsAcceptsLegacySpellings(t *testing.T) {
	db := openTestDB(t)
	r := NewUnitRepository(db)

	item := mustReceive(t, r, "WIDGET", 1, "")
	co := mustOrder(t, db, "CO-2025-001", nil)

	// Simulate rows written by an older system.
	legacy := []models.ItemUnit{
		{SerialNo: "legacy-1", ItemID: &item.ID, Status: "ledig"},
		{SerialNo: "legacy-2", ItemID: &item.ID, Status: "reservert", ReservedCoID: &co.ID},
		{SerialNo: "legacy-3", ItemID: &item.ID, Status: "brukt", ReservedCoID: &co.ID},
		{SerialNo: "legacy-4", ItemID: &item.ID, Status: "used", ReservedCoID: &co.ID},
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("create legacy units: %v", err)
	}

	counts, err := r.CountUnits(item.ID)
	if err != nil {
		t.Fatalf("count units: %v", err)
	}
	if counts.Available != 2 || counts.Reserved != 1 || counts.Consumed != 2 {
		t.Fatalf("legacy spellings not counted: %+v", counts)
	}
}
