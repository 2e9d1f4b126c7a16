package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shortage describes one ingredient whose stock cannot cover the requirement.
// A rejected sale carries the full list so callers can show every deficit at
// once, not just the first.
type Shortage struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Required       decimal.Decimal `json:"required"`
	Available      decimal.Decimal `json:"available"`
	Deficit        decimal.Decimal `json:"deficit"`
}

// NewShortage builds a shortage, deriving the deficit
func NewShortage(ingredientID uuid.UUID, name string, required, available decimal.Decimal) Shortage {
	return Shortage{
		IngredientID:   ingredientID,
		IngredientName: name,
		Required:       required,
		Available:      available,
		Deficit:        required.Sub(available),
	}
}
