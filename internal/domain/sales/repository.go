package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SaleRepository is the persistence contract for sale records
type SaleRepository interface {
	// FindByID finds a sale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindLatest returns the most recent sale record (committed or undone),
	// or shared.ErrNotFound when no sale exists. Only committed sales are
	// persisted, so this is the undo candidate. Implementations must lock the
	// row when called inside a transaction so two concurrent undo attempts
	// cannot both compensate the same sale.
	FindLatest(ctx context.Context) (*Sale, error)

	// FindBetween lists committed sales created in [from, to), oldest first.
	// Undone sales are included; their delta has been compensated.
	FindBetween(ctx context.Context, from, to time.Time) ([]Sale, error)

	// Save creates or updates a sale record
	Save(ctx context.Context, sale *Sale) error
}

// StockMovementRepository is the append-only contract for the movement log
type StockMovementRepository interface {
	// Append persists a movement entry
	Append(ctx context.Context, movement *StockMovement) error

	// FindBySale lists movements linked to a sale
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]StockMovement, error)
}

// SupplyRepository is the persistence contract for restock records
type SupplyRepository interface {
	// Append persists a supply record
	Append(ctx context.Context, supply *Supply) error

	// FindByIngredient lists supplies for an ingredient, newest first
	FindByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]Supply, error)
}
