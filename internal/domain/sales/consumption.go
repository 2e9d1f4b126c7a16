package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionMap maps ingredient IDs to required quantities. Quantities are
// always non-negative; the signed inventory delta of a sale is its negation.
type ConsumptionMap map[uuid.UUID]decimal.Decimal

// NewConsumptionMap returns an empty consumption map
func NewConsumptionMap() ConsumptionMap {
	return make(ConsumptionMap)
}

// Add accumulates qty for the given ingredient
func (m ConsumptionMap) Add(ingredientID uuid.UUID, qty decimal.Decimal) {
	m[ingredientID] = m[ingredientID].Add(qty)
}

// Merge adds every entry of other into m
func (m ConsumptionMap) Merge(other ConsumptionMap) {
	for id, qty := range other {
		m.Add(id, qty)
	}
}

// MergeScaled adds every entry of other multiplied by factor into m
func (m ConsumptionMap) MergeScaled(other ConsumptionMap, factor decimal.Decimal) {
	for id, qty := range other {
		m.Add(id, qty.Mul(factor))
	}
}

// IngredientIDs returns the referenced ingredient IDs in unspecified order
func (m ConsumptionMap) IngredientIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}

// Negate returns the signed delta map a committed sale applies to the ledger
func (m ConsumptionMap) Negate() DeltaMap {
	delta := make(DeltaMap, len(m))
	for id, qty := range m {
		delta[id] = qty.Neg()
	}
	return delta
}

// Equal compares two consumption maps entry-wise
func (m ConsumptionMap) Equal(other ConsumptionMap) bool {
	if len(m) != len(other) {
		return false
	}
	for id, qty := range m {
		if o, ok := other[id]; !ok || !qty.Equal(o) {
			return false
		}
	}
	return true
}

// DeltaMap is a signed per-ingredient stock adjustment. Sale deltas are
// negative; undo and supply deltas are positive.
type DeltaMap map[uuid.UUID]decimal.Decimal

// Invert returns the delta map with every sign flipped, used by the
// compensating undo to credit a sale's consumption back.
func (d DeltaMap) Invert() DeltaMap {
	inverted := make(DeltaMap, len(d))
	for id, qty := range d {
		inverted[id] = qty.Neg()
	}
	return inverted
}
