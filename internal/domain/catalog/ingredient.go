package catalog

import (
	"time"

	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockStatus classifies how full an ingredient's stock is relative to its capacity
type StockStatus string

const (
	StockStatusOK       StockStatus = "OK"       // >= 75% of capacity
	StockStatusLow      StockStatus = "LOW"      // >= 50%
	StockStatusWarning  StockStatus = "WARNING"  // >= 25%
	StockStatusCritical StockStatus = "CRITICAL" // below 25%
)

// Ingredient is the aggregate root for a single stocked ingredient.
// StockQuantity is the authoritative ledger value and must never go negative;
// it is mutated only through Apply inside a transaction scope.
type Ingredient struct {
	shared.BaseAggregateRoot
	Name             string          `gorm:"not null"`
	Unit             string          `gorm:"not null;default:g"` // g, ml, pcs
	StockQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Capacity         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // display only, 0 = unset
	ReorderThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // 0 = no alerting
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient creates a new ingredient with the given starting stock
func NewIngredient(name, unit string, stock decimal.Decimal) (*Ingredient, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if stock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Starting stock cannot be negative")
	}
	if unit == "" {
		unit = "g"
	}
	return &Ingredient{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
		StockQuantity:     stock,
	}, nil
}

// Apply adjusts the stock by delta (negative = consumption, positive = credit).
// The adjustment is rejected if it would take the stock below zero.
func (i *Ingredient) Apply(delta decimal.Decimal) error {
	next := i.StockQuantity.Add(delta)
	if next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	i.StockQuantity = next
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// CanCover returns true if the current stock covers the required quantity
func (i *Ingredient) CanCover(required decimal.Decimal) bool {
	return i.StockQuantity.GreaterThanOrEqual(required)
}

// FillRatio returns current stock as a fraction of capacity, clamped to [0,1].
// Returns 0 when capacity is unset.
func (i *Ingredient) FillRatio() decimal.Decimal {
	if !i.Capacity.IsPositive() {
		return decimal.Zero
	}
	ratio := i.StockQuantity.Div(i.Capacity)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	if ratio.GreaterThan(one) {
		return one
	}
	return ratio
}

// Status returns the stock status band derived from the fill ratio
func (i *Ingredient) Status() StockStatus {
	ratio := i.FillRatio()
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.75)):
		return StockStatusOK
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.50)):
		return StockStatusLow
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.25)):
		return StockStatusWarning
	default:
		return StockStatusCritical
	}
}

// IsBelowThreshold returns true if stock has fallen below the reorder threshold
func (i *Ingredient) IsBelowThreshold() bool {
	return i.ReorderThreshold.IsPositive() && i.StockQuantity.LessThan(i.ReorderThreshold)
}
