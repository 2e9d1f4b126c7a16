package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindLatest returns the most recent sale record, locking its row so two
// concurrent undo attempts cannot both compensate the same sale.
func (r *GormSaleRepository) FindLatest(ctx context.Context) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at DESC").
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindBetween lists sales created in [from, to), oldest first
func (r *GormSaleRepository) FindBetween(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	var records []sales.Sale
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a sale record
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// Ensure GormSaleRepository implements the repository interface
var _ sales.SaleRepository = (*GormSaleRepository)(nil)

// GormStockMovementRepository implements sales.StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append persists a movement entry
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *sales.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindBySale lists movements linked to a sale
func (r *GormStockMovementRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]sales.StockMovement, error) {
	var movements []sales.StockMovement
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Ensure GormStockMovementRepository implements the repository interface
var _ sales.StockMovementRepository = (*GormStockMovementRepository)(nil)

// GormSupplyRepository implements sales.SupplyRepository using GORM
type GormSupplyRepository struct {
	db *gorm.DB
}

// NewGormSupplyRepository creates a new GormSupplyRepository
func NewGormSupplyRepository(db *gorm.DB) *GormSupplyRepository {
	return &GormSupplyRepository{db: db}
}

// Append persists a supply record
func (r *GormSupplyRepository) Append(ctx context.Context, supply *sales.Supply) error {
	return r.db.WithContext(ctx).Create(supply).Error
}

// FindByIngredient lists supplies for an ingredient, newest first
func (r *GormSupplyRepository) FindByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]sales.Supply, error) {
	var supplies []sales.Supply
	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("created_at DESC").
		Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// Ensure GormSupplyRepository implements the repository interface
var _ sales.SupplyRepository = (*GormSupplyRepository)(nil)
