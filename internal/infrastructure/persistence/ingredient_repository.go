package persistence

import (
	"context"
	"errors"

	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIngredientRepository implements catalog.IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByID finds an ingredient by its ID
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Ingredient, error) {
	var ingredient catalog.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs finds multiple ingredients by their IDs
func (r *GormIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []catalog.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindByIDsForUpdate finds multiple ingredients and locks their rows for the
// remainder of the enclosing transaction. The lock ensures that the
// read-check-write sequence of a sale serializes against concurrent sales
// touching the same ingredients.
func (r *GormIngredientRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []catalog.Ingredient
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindAll lists all ingredients
func (r *GormIngredientRepository) FindAll(ctx context.Context) ([]catalog.Ingredient, error) {
	var ingredients []catalog.Ingredient
	if err := r.db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindBelowThreshold lists ingredients below their reorder threshold
func (r *GormIngredientRepository) FindBelowThreshold(ctx context.Context) ([]catalog.Ingredient, error) {
	var ingredients []catalog.Ingredient
	if err := r.db.WithContext(ctx).
		Where("reorder_threshold > 0 AND stock_quantity < reorder_threshold").
		Order("name").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Save creates or updates an ingredient
func (r *GormIngredientRepository) Save(ctx context.Context, ingredient *catalog.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// Ensure GormIngredientRepository implements the repository interface
var _ catalog.IngredientRepository = (*GormIngredientRepository)(nil)
