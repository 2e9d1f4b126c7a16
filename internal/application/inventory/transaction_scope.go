package inventory

import (
	"context"

	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically. The underlying store must give the read-check-write
// sequence at least serializable behavior for the rows it touches, so two
// concurrent sales whose combined requirement exceeds stock cannot both commit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ledger-touching
// repositories within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// Ingredients returns the ingredient repository scoped to the current transaction
	Ingredients() catalog.IngredientRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() sales.SaleRepository
	// Movements returns the stock movement repository scoped to the current transaction
	Movements() sales.StockMovementRepository
	// Supplies returns the supply repository scoped to the current transaction
	Supplies() sales.SupplyRepository
}
