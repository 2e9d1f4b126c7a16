package memory

import (
	"context"
	"time"

	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository implements sales.SaleRepository over the store
type SaleRepository struct {
	store *Store
}

// NewSaleRepository creates a new in-memory sale repository
func NewSaleRepository(store *Store) *SaleRepository {
	return &SaleRepository{store: store}
}

// FindByID finds a sale by its ID
func (r *SaleRepository) FindByID(_ context.Context, id uuid.UUID) (*sales.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.sales {
		if r.store.sales[i].ID == id {
			sale := r.store.sales[i]
			return &sale, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindLatest returns the most recently recorded sale. Insertion order is
// creation order, so the last element is the undo candidate.
func (r *SaleRepository) FindLatest(_ context.Context) (*sales.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if len(r.store.sales) == 0 {
		return nil, shared.ErrNotFound
	}
	sale := r.store.sales[len(r.store.sales)-1]
	return &sale, nil
}

// FindBetween lists sales created in [from, to), oldest first
func (r *SaleRepository) FindBetween(_ context.Context, from, to time.Time) ([]sales.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]sales.Sale, 0)
	for i := range r.store.sales {
		created := r.store.sales[i].CreatedAt
		if !created.Before(from) && created.Before(to) {
			matched = append(matched, r.store.sales[i])
		}
	}
	return matched, nil
}

// Save creates or updates a sale record, keeping insertion order stable
func (r *SaleRepository) Save(_ context.Context, sale *sales.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.sales {
		if r.store.sales[i].ID == sale.ID {
			r.store.sales[i] = *sale
			return nil
		}
	}
	r.store.sales = append(r.store.sales, *sale)
	return nil
}

// Ensure SaleRepository implements the repository interface
var _ sales.SaleRepository = (*SaleRepository)(nil)

// StockMovementRepository implements sales.StockMovementRepository over the store
type StockMovementRepository struct {
	store *Store
}

// NewStockMovementRepository creates a new in-memory movement repository
func NewStockMovementRepository(store *Store) *StockMovementRepository {
	return &StockMovementRepository{store: store}
}

// Append persists a movement entry
func (r *StockMovementRepository) Append(_ context.Context, movement *sales.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movements = append(r.store.movements, *movement)
	return nil
}

// FindBySale lists movements linked to a sale
func (r *StockMovementRepository) FindBySale(_ context.Context, saleID uuid.UUID) ([]sales.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]sales.StockMovement, 0)
	for i := range r.store.movements {
		if r.store.movements[i].SaleID != nil && *r.store.movements[i].SaleID == saleID {
			matched = append(matched, r.store.movements[i])
		}
	}
	return matched, nil
}

// Ensure StockMovementRepository implements the repository interface
var _ sales.StockMovementRepository = (*StockMovementRepository)(nil)

// SupplyRepository implements sales.SupplyRepository over the store
type SupplyRepository struct {
	store *Store
}

// NewSupplyRepository creates a new in-memory supply repository
func NewSupplyRepository(store *Store) *SupplyRepository {
	return &SupplyRepository{store: store}
}

// Append persists a supply record
func (r *SupplyRepository) Append(_ context.Context, supply *sales.Supply) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.supplies = append(r.store.supplies, *supply)
	return nil
}

// FindByIngredient lists supplies for an ingredient, newest first
func (r *SupplyRepository) FindByIngredient(_ context.Context, ingredientID uuid.UUID) ([]sales.Supply, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]sales.Supply, 0)
	for i := len(r.store.supplies) - 1; i >= 0; i-- {
		if r.store.supplies[i].IngredientID == ingredientID {
			matched = append(matched, r.store.supplies[i])
		}
	}
	return matched, nil
}

// Ensure SupplyRepository implements the repository interface
var _ sales.SupplyRepository = (*SupplyRepository)(nil)
