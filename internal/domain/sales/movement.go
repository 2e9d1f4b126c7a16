package sales

import (
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies an entry in the append-only stock movement log
type MovementType string

const (
	MovementTypeSale   MovementType = "sale"
	MovementTypeUndo   MovementType = "undo"
	MovementTypeAdjust MovementType = "adjust"
	MovementTypeSupply MovementType = "supply"
)

// StockMovement is the audit trail for every ledger mutation. It mirrors the
// delta that was applied, so the movement log replays to the current stock.
type StockMovement struct {
	shared.BaseEntity
	Type   MovementType `gorm:"not null;index"`
	Delta  DeltaMap     `gorm:"serializer:json"`
	SaleID *uuid.UUID   `gorm:"type:uuid;index"` // set for sale/undo movements
	Note   string
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement entry for the given applied delta
func NewStockMovement(movementType MovementType, delta DeltaMap) *StockMovement {
	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		Type:       movementType,
		Delta:      delta,
	}
}

// ForSale links the movement to the sale that produced it
func (m *StockMovement) ForSale(saleID uuid.UUID) *StockMovement {
	m.SaleID = &saleID
	return m
}

// WithNote attaches a free-form note (e.g. "manual_adjust")
func (m *StockMovement) WithNote(note string) *StockMovement {
	m.Note = note
	return m
}

// Supply is a restock record: a positive quantity credited to one ingredient
type Supply struct {
	shared.BaseEntity
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Supply) TableName() string {
	return "supplies"
}

// NewSupply creates a supply record
func NewSupply(ingredientID uuid.UUID, quantity decimal.Decimal) (*Supply, error) {
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Supply quantity must be positive")
	}
	return &Supply{
		BaseEntity:   shared.NewBaseEntity(),
		IngredientID: ingredientID,
		Quantity:     quantity,
	}, nil
}
