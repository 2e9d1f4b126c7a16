package catalog

import (
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultBaseVolumeML is used when a recipe has no base volume configured
const DefaultBaseVolumeML = 200

// RecipeIngredient is one line of a recipe: how much of an ingredient
// the recipe's base volume consumes.
type RecipeIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RecipeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"` // per base volume
	Position     int             `gorm:"not null;default:0"`          // preserves recipe order
}

// TableName returns the table name for GORM
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// Recipe defines the ingredient quantities a drink consumes at its base volume.
// Actual consumption scales linearly with the requested volume.
type Recipe struct {
	shared.BaseAggregateRoot
	Name         string             `gorm:"not null"`
	BaseVolumeML int                `gorm:"not null;default:0"` // 0 = fall back to DefaultBaseVolumeML
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;references:ID"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// NewRecipe creates a new recipe
func NewRecipe(name string, baseVolumeML int) (*Recipe, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Recipe name cannot be empty")
	}
	if baseVolumeML < 0 {
		return nil, shared.NewDomainError("INVALID_VOLUME", "Base volume cannot be negative")
	}
	return &Recipe{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		BaseVolumeML:      baseVolumeML,
		Ingredients:       make([]RecipeIngredient, 0),
	}, nil
}

// AddIngredient appends an ingredient line to the recipe
func (r *Recipe) AddIngredient(ingredientID uuid.UUID, qty decimal.Decimal) error {
	if ingredientID == uuid.Nil {
		return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Ingredient quantity must be positive")
	}
	r.Ingredients = append(r.Ingredients, RecipeIngredient{
		ID:           uuid.New(),
		RecipeID:     r.ID,
		IngredientID: ingredientID,
		Quantity:     qty,
		Position:     len(r.Ingredients),
	})
	return nil
}

// EffectiveBaseVolume returns the base volume, falling back to the default
// when the recipe was stored without one.
func (r *Recipe) EffectiveBaseVolume() decimal.Decimal {
	if r.BaseVolumeML > 0 {
		return decimal.NewFromInt(int64(r.BaseVolumeML))
	}
	return decimal.NewFromInt(DefaultBaseVolumeML)
}
