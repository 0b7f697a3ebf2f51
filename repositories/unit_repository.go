package repositories

import (
	"errors"
	"fmt"
	"time"

	"frontline-inventory/controllers/idgen"
	"frontline-inventory/models"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// UnitRepository owns the per-unit state machine: available → reserved →
// consumed, with reverse transitions. Every operation runs in one database
// transaction together with its counter and ledger writes.
type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// UnitCounts is the per-item breakdown by unit state.
type UnitCounts struct {
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Consumed  int `json:"consumed"`
}

func getItem(tx *gorm.DB, itemID uint) (*models.Item, error) {
	var item models.Item
	if err := forUpdate(tx).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func getOrCreatePO(tx *gorm.DB, code string) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := tx.Where("code = ?", code).First(&po).Error
	if err == nil {
		return &po, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	po = models.PurchaseOrder{Code: code, Status: models.OrderOpen}
	if err := tx.Create(&po).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func getOrCreateCOByCode(tx *gorm.DB, code string) (*models.CustomerOrder, error) {
	var co models.CustomerOrder
	err := tx.Where("code = ?", code).First(&co).Error
	if err == nil {
		return &co, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	co = models.CustomerOrder{Code: code, Status: models.OrderOpen}
	if err := tx.Create(&co).Error; err != nil {
		return nil, err
	}
	return &co, nil
}

// selectUnits picks units for an item in the given canonical state, oldest
// first. Selection order is ascending by id so the earliest-received units are
// always taken first.
func selectUnits(tx *gorm.DB, itemID uint, status string, coID *uint, limit int) ([]models.ItemUnit, error) {
	q := forUpdate(tx).
		Where("item_id = ?", itemID).
		Where("status IN ?", models.UnitStatusFilter(status))
	if coID != nil {
		q = q.Where("reserved_co_id = ?", *coID)
	} else if status == models.UnitAvailable {
		q = q.Where("reserved_co_id IS NULL")
	}
	var units []models.ItemUnit
	if err := q.Order("id ASC").Limit(limit).Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func unitIDsOf(units []models.ItemUnit) []uint {
	ids := make([]uint, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	return ids
}

func floorSub(a, b int) int {
	if a-b < 0 {
		return 0
	}
	return a - b
}

// Receive creates qty new available units for the item identified by sku,
// creating the item and the purchase order lazily, increments on-hand stock
// and records the receipt in the ledger.
func (r *UnitRepository) Receive(sku, name string, qty int, poCode, note string, actor *models.User) (*models.StockTx, error) {
	if sku == "" || qty <= 0 {
		return nil, ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var item models.Item
	err := tx.Where("sku = ?", sku).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if name == "" {
			name = sku
		}
		item = models.Item{SKU: sku, Name: name, LastUpdated: time.Now().UTC()}
		err = tx.Create(&item).Error
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	var po *models.PurchaseOrder
	var poID *uint
	if poCode != "" {
		po, err = getOrCreatePO(tx, poCode)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		poID = &po.ID
	}

	units := make([]models.ItemUnit, qty)
	for i := range units {
		units[i] = models.ItemUnit{
			SerialNo: idgen.GenerateSerial(),
			ItemID:   &item.ID,
			PoID:     poID,
			Status:   models.UnitAvailable,
		}
	}
	if err := tx.Create(&units).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if po != nil {
		var line models.PurchaseOrderLine
		err := tx.Where("po_id = ? AND item_id = ?", po.ID, item.ID).First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			line = models.PurchaseOrderLine{PoID: po.ID, ItemID: &item.ID}
			err = tx.Create(&line).Error
		}
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		line.QtyReceived += qty
		if err := tx.Save(&line).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if note == "" {
		note = fmt.Sprintf("Receive %d pcs", qty)
	}
	entry, err := adjustStockTx(tx, &item, qty, note, actor, poID, nil)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ReserveUnits holds qty available units of the item against the order,
// oldest units first. All-or-nothing: if fewer than qty units are available
// the whole call fails with the available count and no unit is touched.
func (r *UnitRepository) ReserveUnits(itemID, coID uint, qty int, note string, actor *models.User) error {
	if qty <= 0 {
		return ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	item, err := getItem(tx, itemID)
	if err != nil {
		tx.Rollback()
		return err
	}
	var co models.CustomerOrder
	if err := tx.First(&co, coID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	units, err := selectUnits(tx, itemID, models.UnitAvailable, nil, qty)
	if err != nil {
		tx.Rollback()
		return err
	}
	if len(units) < qty {
		tx.Rollback()
		return &InsufficientUnitsError{State: models.UnitAvailable, Requested: qty, Available: len(units)}
	}

	if err := tx.Model(&models.ItemUnit{}).
		Where("id IN ?", unitIDsOf(units)).
		Updates(map[string]interface{}{
			"status":         models.UnitReserved,
			"reserved_co_id": co.ID,
		}).Error; err != nil {
		tx.Rollback()
		return err
	}

	line, err := ensureLine(tx, co.ID, item.ID)
	if err != nil {
		tx.Rollback()
		return err
	}
	line.QtyReserved += qty
	if err := tx.Save(line).Error; err != nil {
		tx.Rollback()
		return err
	}

	if note == "" {
		note = fmt.Sprintf("Reserve %d pcs for %s", qty, co.Code)
	}
	if _, err := appendTx(tx, item, 0, note, actor, nil, nil, &co.ID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ReleaseUnits reverses a reservation: qty units held by the order go back to
// available and the line's reserved counter drops by the same count, floored
// at zero.
func (r *UnitRepository) ReleaseUnits(itemID, coID uint, qty int, note string, actor *models.User) error {
	if qty <= 0 {
		return ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	item, err := getItem(tx, itemID)
	if err != nil {
		tx.Rollback()
		return err
	}

	units, err := selectUnits(tx, itemID, models.UnitReserved, &coID, qty)
	if err != nil {
		tx.Rollback()
		return err
	}
	if len(units) < qty {
		tx.Rollback()
		return &InsufficientUnitsError{State: models.UnitReserved, Requested: qty, Available: len(units)}
	}

	if err := tx.Model(&models.ItemUnit{}).
		Where("id IN ?", unitIDsOf(units)).
		Updates(map[string]interface{}{
			"status":         models.UnitAvailable,
			"reserved_co_id": nil,
		}).Error; err != nil {
		tx.Rollback()
		return err
	}

	line, err := ensureLine(tx, coID, item.ID)
	if err != nil {
		tx.Rollback()
		return err
	}
	line.QtyReserved = floorSub(line.QtyReserved, qty)
	if err := tx.Save(line).Error; err != nil {
		tx.Rollback()
		return err
	}

	if note == "" {
		note = fmt.Sprintf("Release %d pcs", qty)
	}
	if _, err := appendTx(tx, item, 0, note, actor, nil, nil, &coID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// FulfillUnits consumes qty units reserved by the order: units move to
// consumed with a consumption timestamp, the line's reserved counter shifts
// into fulfilled, and on-hand stock drops by qty through the stock ledger.
func (r *UnitRepository) FulfillUnits(itemID, coID uint, qty int, note string, actor *models.User) (*models.StockTx, error) {
	if qty <= 0 {
		return nil, ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	item, err := getItem(tx, itemID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	units, err := selectUnits(tx, itemID, models.UnitReserved, &coID, qty)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(units) < qty {
		tx.Rollback()
		return nil, &InsufficientUnitsError{State: models.UnitReserved, Requested: qty, Available: len(units)}
	}

	now := time.Now().UTC()
	if err := tx.Model(&models.ItemUnit{}).
		Where("id IN ?", unitIDsOf(units)).
		Updates(map[string]interface{}{
			"status":  models.UnitConsumed,
			"used_at": now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	line, err := ensureLine(tx, coID, item.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	line.QtyReserved = floorSub(line.QtyReserved, qty)
	line.QtyFulfilled += qty
	if err := tx.Save(line).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if note == "" {
		note = fmt.Sprintf("Fulfill %d pcs", qty)
	}
	entry, err := adjustStockTx(tx, item, -qty, note, actor, nil, &coID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// UnfulfillUnits reverts qty consumed units of the order back to available,
// clearing their consumption timestamp and order link, and restores on-hand
// stock.
func (r *UnitRepository) UnfulfillUnits(itemID, coID uint, qty int, note string, actor *models.User) (*models.StockTx, error) {
	if qty <= 0 {
		return nil, ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	item, err := getItem(tx, itemID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	units, err := selectUnits(tx, itemID, models.UnitConsumed, &coID, qty)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(units) < qty {
		tx.Rollback()
		return nil, &InsufficientUnitsError{State: models.UnitConsumed, Requested: qty, Available: len(units)}
	}

	if err := tx.Model(&models.ItemUnit{}).
		Where("id IN ?", unitIDsOf(units)).
		Updates(map[string]interface{}{
			"status":         models.UnitAvailable,
			"reserved_co_id": nil,
			"used_at":        nil,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	line, err := ensureLine(tx, coID, item.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	line.QtyFulfilled = floorSub(line.QtyFulfilled, qty)
	if err := tx.Save(line).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if note == "" {
		note = fmt.Sprintf("Unfulfill %d pcs", qty)
	}
	entry, err := adjustStockTx(tx, item, qty, note, actor, nil, &coID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return entry, nil
}

type unitGroupKey struct {
	itemID uint
	poID   uint
	hasPo  bool
}

// IssueUnits consumes an explicit set of units against the order identified
// by coCode (created if missing). Units already consumed are skipped rather
// than failing the batch. Stock decrements and ledger entries are grouped per
// (item, purchase order) so the audit trail names the supply source.
func (r *UnitRepository) IssueUnits(unitIDs []uint, coCode, note string, actor *models.User) (int, error) {
	if len(unitIDs) == 0 || coCode == "" {
		return 0, ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	co, err := getOrCreateCOByCode(tx, coCode)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	eligible := append(models.UnitStatusFilter(models.UnitAvailable), models.UnitStatusFilter(models.UnitReserved)...)
	var units []models.ItemUnit
	if err := forUpdate(tx).
		Where("id IN ?", unitIDs).
		Where("status IN ?", eligible).
		Order("id ASC").
		Find(&units).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if len(units) == 0 {
		tx.Rollback()
		return 0, nil
	}

	// Units issued away from an earlier reservation give their hold back to
	// that order's line first.
	type lineKey struct{ coID, itemID uint }
	releasedHolds := map[lineKey]int{}
	for _, u := range units {
		status, _ := models.NormalizeUnitStatus(u.Status)
		if status == models.UnitReserved && u.ReservedCoID != nil && u.ItemID != nil {
			releasedHolds[lineKey{*u.ReservedCoID, *u.ItemID}]++
		}
	}
	holdKeys := maps.Keys(releasedHolds)
	slices.SortFunc(holdKeys, func(a, b lineKey) int {
		if a.coID != b.coID {
			return int(a.coID) - int(b.coID)
		}
		return int(a.itemID) - int(b.itemID)
	})
	for _, k := range holdKeys {
		line, err := ensureLine(tx, k.coID, k.itemID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		line.QtyReserved = floorSub(line.QtyReserved, releasedHolds[k])
		if err := tx.Save(line).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	groups := map[unitGroupKey][]models.ItemUnit{}
	var orphans []models.ItemUnit
	for _, u := range units {
		if u.ItemID == nil {
			orphans = append(orphans, u)
			continue
		}
		key := unitGroupKey{itemID: *u.ItemID}
		if u.PoID != nil {
			key.poID = *u.PoID
			key.hasPo = true
		}
		groups[key] = append(groups[key], u)
	}

	now := time.Now().UTC()
	consume := func(batch []models.ItemUnit) error {
		return tx.Model(&models.ItemUnit{}).
			Where("id IN ?", unitIDsOf(batch)).
			Updates(map[string]interface{}{
				"status":         models.UnitConsumed,
				"reserved_co_id": co.ID,
				"used_at":        now,
			}).Error
	}

	keys := maps.Keys(groups)
	slices.SortFunc(keys, func(a, b unitGroupKey) int {
		if a.itemID != b.itemID {
			return int(a.itemID) - int(b.itemID)
		}
		return int(a.poID) - int(b.poID)
	})

	for _, key := range keys {
		batch := groups[key]
		if err := consume(batch); err != nil {
			tx.Rollback()
			return 0, err
		}

		item, err := getItem(tx, key.itemID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		line, err := ensureLine(tx, co.ID, item.ID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		line.QtyFulfilled += len(batch)
		if err := tx.Save(line).Error; err != nil {
			tx.Rollback()
			return 0, err
		}

		groupNote := note
		if groupNote == "" {
			groupNote = fmt.Sprintf("Issue %d pcs to %s", len(batch), co.Code)
		}
		if key.hasPo {
			var po models.PurchaseOrder
			if err := tx.First(&po, key.poID).Error; err == nil {
				groupNote = fmt.Sprintf("%s (from %s)", groupNote, po.Code)
			}
		}
		var poID *uint
		if key.hasPo {
			poID = uintPtr(key.poID)
		}
		if _, err := adjustStockTx(tx, item, -len(batch), groupNote, actor, poID, &co.ID); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	// Orphaned units (item deleted) still transition and leave a ledger
	// trace, but there is no stock aggregate left to decrement.
	if len(orphans) > 0 {
		if err := consume(orphans); err != nil {
			tx.Rollback()
			return 0, err
		}
		orphanNote := note
		if orphanNote == "" {
			orphanNote = fmt.Sprintf("Issue %d orphaned units to %s", len(orphans), co.Code)
		}
		if _, err := appendTx(tx, nil, 0, orphanNote, actor, nil, nil, &co.ID); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return len(units), nil
}

// ReserveUnitsByID reserves an explicit set of units against the order
// identified by coCode (created if missing). Units not currently available
// are skipped, not failed: identifier-addressed calls come from an operator
// picking rows, where skipping an already-changed row is the right outcome.
func (r *UnitRepository) ReserveUnitsByID(unitIDs []uint, coCode, note string, actor *models.User) (int, error) {
	if len(unitIDs) == 0 || coCode == "" {
		return 0, ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	co, err := getOrCreateCOByCode(tx, coCode)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	var units []models.ItemUnit
	if err := forUpdate(tx).
		Where("id IN ?", unitIDs).
		Where("status IN ?", models.UnitStatusFilter(models.UnitAvailable)).
		Order("id ASC").
		Find(&units).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if len(units) == 0 {
		tx.Rollback()
		return 0, nil
	}

	if err := tx.Model(&models.ItemUnit{}).
		Where("id IN ?", unitIDsOf(units)).
		Updates(map[string]interface{}{
			"status":         models.UnitReserved,
			"reserved_co_id": co.ID,
		}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	perItem := map[uint]int{}
	for _, u := range units {
		if u.ItemID != nil {
			perItem[*u.ItemID]++
		}
	}
	itemIDs := maps.Keys(perItem)
	slices.Sort(itemIDs)
	for _, itemID := range itemIDs {
		k := perItem[itemID]
		item, err := getItem(tx, itemID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		line, err := ensureLine(tx, co.ID, itemID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		line.QtyReserved += k
		if err := tx.Save(line).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
		groupNote := note
		if groupNote == "" {
			groupNote = fmt.Sprintf("Reserve %d pcs for %s", k, co.Code)
		}
		if _, err := appendTx(tx, item, 0, groupNote, actor, nil, nil, &co.ID); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return len(units), nil
}

// UnreserveUnitsByID releases an explicit set of reserved units back to
// available, skipping any unit not currently reserved.
func (r *UnitRepository) UnreserveUnitsByID(unitIDs []uint, note string, actor *models.User) (int, error) {
	if len(unitIDs) == 0 {
		return 0, ErrInvalidArgument
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var units []models.ItemUnit
	if err := forUpdate(tx).
		Where("id IN ?", unitIDs).
		Where("status IN ?", models.UnitStatusFilter(models.UnitReserved)).
		Order("id ASC").
		Find(&units).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if len(units) == 0 {
		tx.Rollback()
		return 0, nil
	}

	if err := tx.Model(&models.ItemUnit{}).
		Where("id IN ?", unitIDsOf(units)).
		Updates(map[string]interface{}{
			"status":         models.UnitAvailable,
			"reserved_co_id": nil,
		}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	type lineKey struct{ coID, itemID uint }
	perLine := map[lineKey]int{}
	for _, u := range units {
		if u.ItemID != nil && u.ReservedCoID != nil {
			perLine[lineKey{*u.ReservedCoID, *u.ItemID}]++
		}
	}
	keys := maps.Keys(perLine)
	slices.SortFunc(keys, func(a, b lineKey) int {
		if a.coID != b.coID {
			return int(a.coID) - int(b.coID)
		}
		return int(a.itemID) - int(b.itemID)
	})
	for _, k := range keys {
		count := perLine[k]
		line, err := ensureLine(tx, k.coID, k.itemID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		line.QtyReserved = floorSub(line.QtyReserved, count)
		if err := tx.Save(line).Error; err != nil {
			tx.Rollback()
			return 0, err
		}

		item, err := getItem(tx, k.itemID)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		groupNote := note
		if groupNote == "" {
			groupNote = fmt.Sprintf("Unreserve %d pcs", count)
		}
		if _, err := appendTx(tx, item, 0, groupNote, actor, nil, nil, uintPtr(k.coID)); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return len(units), nil
}

// CountUnits returns the per-state breakdown for an item.
func (r *UnitRepository) CountUnits(itemID uint) (*UnitCounts, error) {
	counts := &UnitCounts{}
	targets := []struct {
		status string
		dest   *int
	}{
		{models.UnitAvailable, &counts.Available},
		{models.UnitReserved, &counts.Reserved},
		{models.UnitConsumed, &counts.Consumed},
	}
	for _, t := range targets {
		var n int64
		if err := r.db.Model(&models.ItemUnit{}).
			Where("item_id = ?", itemID).
			Where("status IN ?", models.UnitStatusFilter(t.status)).
			Count(&n).Error; err != nil {
			return nil, err
		}
		*t.dest = int(n)
	}
	return counts, nil
}

// ListUnits returns units filtered by item, canonical status and order.
func (r *UnitRepository) ListUnits(itemID *uint, status string, coID *uint) ([]models.ItemUnit, error) {
	q := r.db.Model(&models.ItemUnit{})
	if itemID != nil {
		q = q.Where("item_id = ?", *itemID)
	}
	if status != "" {
		canonical, ok := models.NormalizeUnitStatus(status)
		if !ok {
			return nil, ErrInvalidArgument
		}
		q = q.Where("status IN ?", models.UnitStatusFilter(canonical))
	}
	if coID != nil {
		q = q.Where("reserved_co_id = ?", *coID)
	}
	var units []models.ItemUnit
	if err := q.Order("id ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
