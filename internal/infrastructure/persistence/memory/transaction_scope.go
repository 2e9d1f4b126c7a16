package memory

import (
	"context"
	"sync"

	"github.com/gipsy-office/backend/internal/application/inventory"
	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
)

// TransactionScope implements inventory.TransactionScope over the in-memory
// store. Transactions run one at a time under txMu, and a failed transaction
// is rolled back by restoring the pre-transaction snapshot.
type TransactionScope struct {
	store *Store
	txMu  sync.Mutex
}

// NewTransactionScope creates a transaction scope bound to the store
func NewTransactionScope(store *Store) *TransactionScope {
	return &TransactionScope{store: store}
}

// Execute runs fn as an atomic, serialized unit of work
func (s *TransactionScope) Execute(ctx context.Context, fn func(repos inventory.TransactionalRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	snap := s.store.takeSnapshot()
	s.store.mu.Unlock()

	if err := fn(&transactionalRepositories{store: s.store}); err != nil {
		s.store.mu.Lock()
		s.store.restore(snap)
		s.store.mu.Unlock()
		return err
	}
	return nil
}

// transactionalRepositories hands out repositories over the shared store.
// No per-transaction binding is needed because txMu already serializes access.
type transactionalRepositories struct {
	store *Store
}

func (r *transactionalRepositories) Ingredients() catalog.IngredientRepository {
	return NewIngredientRepository(r.store)
}

func (r *transactionalRepositories) Sales() sales.SaleRepository {
	return NewSaleRepository(r.store)
}

func (r *transactionalRepositories) Movements() sales.StockMovementRepository {
	return NewStockMovementRepository(r.store)
}

func (r *transactionalRepositories) Supplies() sales.SupplyRepository {
	return NewSupplyRepository(r.store)
}

// Ensure TransactionScope implements the scope interface
var _ inventory.TransactionScope = (*TransactionScope)(nil)
