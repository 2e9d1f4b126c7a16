package persistence

import (
	"context"
	"errors"

	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecipeRepository implements catalog.RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe with its ingredient lines
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Recipe, error) {
	var recipe catalog.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// FindAll lists all recipes with their ingredient lines
func (r *GormRecipeRepository) FindAll(ctx context.Context) ([]catalog.Recipe, error) {
	var recipes []catalog.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("name").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Save creates or updates a recipe with its ingredient lines
func (r *GormRecipeRepository) Save(ctx context.Context, recipe *catalog.Recipe) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(recipe).Error
}

// Ensure GormRecipeRepository implements the repository interface
var _ catalog.RecipeRepository = (*GormRecipeRepository)(nil)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its add-ons
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("AddOns").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindActive lists all active products with their add-ons
func (r *GormProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("AddOns").
		Where("is_active = ?", true).
		Order("name").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindActiveByCategory lists active products in a category
func (r *GormProductRepository) FindActiveByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("AddOns").
		Where("is_active = ? AND category = ?", true, category).
		Order("name").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product with its add-ons
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

// Ensure GormProductRepository implements the repository interface
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
