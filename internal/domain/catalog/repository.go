package catalog

import (
	"context"

	"github.com/google/uuid"
)

// IngredientRepository is the persistence contract for the ingredient ledger.
// Implementations must support being scoped to a transaction so that a
// read-check-write sequence over several ingredients is atomic.
type IngredientRepository interface {
	// FindByID finds an ingredient by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)

	// FindByIDs finds multiple ingredients by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Ingredient, error)

	// FindByIDsForUpdate finds multiple ingredients and locks their rows for
	// the remainder of the enclosing transaction (SELECT ... FOR UPDATE)
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]Ingredient, error)

	// FindAll lists all ingredients
	FindAll(ctx context.Context) ([]Ingredient, error)

	// FindBelowThreshold lists ingredients below their reorder threshold
	FindBelowThreshold(ctx context.Context) ([]Ingredient, error)

	// Save creates or updates an ingredient
	Save(ctx context.Context, ingredient *Ingredient) error
}

// RecipeRepository is the persistence contract for recipes
type RecipeRepository interface {
	// FindByID finds a recipe with its ingredient lines
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)

	// FindAll lists all recipes with their ingredient lines
	FindAll(ctx context.Context) ([]Recipe, error)

	// Save creates or updates a recipe with its ingredient lines
	Save(ctx context.Context, recipe *Recipe) error
}

// ProductRepository is the persistence contract for products
type ProductRepository interface {
	// FindByID finds a product with its add-ons
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActive lists all active products with their add-ons
	FindActive(ctx context.Context) ([]Product, error)

	// FindActiveByCategory lists active products in a category
	FindActiveByCategory(ctx context.Context, category string) ([]Product, error)

	// Save creates or updates a product with its add-ons
	Save(ctx context.Context, product *Product) error
}
