package models

import (
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Canonical unit statuses. Only these are ever written; legacy spellings from
// imported data sets are accepted on read, see UnitStatusFilter.
const (
	UnitAvailable = "available"
	UnitReserved  = "reserved"
	UnitConsumed  = "consumed"
)

// ItemUnit is one physical, individually trackable instance of an Item.
// Units are never deleted: they transition between statuses, and deleting the
// parent item only nulls ItemID so the unit survives as an orphan.
//
// Invariant: ReservedCoID is set iff Status is reserved or consumed, and
// UsedAt is set iff Status is consumed.
type ItemUnit struct {
	gorm.Model
	SerialNo     string     `json:"serial_no" gorm:"uniqueIndex"`
	ItemID       *uint      `json:"item_id" gorm:"index"`
	PoID         *uint      `json:"po_id" gorm:"index"`
	Status       string     `json:"status" gorm:"default:available;index"`
	ReservedCoID *uint      `json:"reserved_co_id" gorm:"index"`
	UsedAt       *time.Time `json:"used_at"`
}

var unitStatusSynonyms = map[string]string{
	"available": UnitAvailable,
	"ledig":     UnitAvailable,
	"reserved":  UnitReserved,
	"reservert": UnitReserved,
	"consumed":  UnitConsumed,
	"used":      UnitConsumed,
	"brukt":     UnitConsumed,
}

// NormalizeUnitStatus maps a stored or user-supplied status string, legacy
// spellings included, onto its canonical value. The second return is false
// for strings that are not a known status.
func NormalizeUnitStatus(s string) (string, bool) {
	canonical, ok := unitStatusSynonyms[s]
	return canonical, ok
}

// UnitStatusFilter returns every stored spelling that reads as the given
// canonical status, for use in WHERE ... IN clauses against data sets that
// predate the canonical values.
func UnitStatusFilter(status string) []string {
	out := make([]string, 0, 3)
	for spelling, canonical := range unitStatusSynonyms {
		if canonical == status {
			out = append(out, spelling)
		}
	}
	slices.Sort(out)
	return out
}
