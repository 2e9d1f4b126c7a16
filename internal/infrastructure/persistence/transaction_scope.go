package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gipsy-office/backend/internal/application/inventory"
	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransactionScope implements inventory.TransactionScope using GORM
// transactions. All repositories handed to the callback share a single
// *gorm.DB bound to the open transaction, so row locks taken by one
// repository are held for the whole unit of work.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. Serialization failures and
// lock conflicts surface as shared.ErrConcurrencyConflict so callers can
// retry the whole unit of work.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos inventory.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	if err != nil {
		return translateConflict(err)
	}
	return nil
}

// gormTransactionalRepositories provides repositories bound to a single transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Ingredients() catalog.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) Movements() sales.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *gormTransactionalRepositories) Supplies() sales.SupplyRepository {
	return NewGormSupplyRepository(r.tx)
}

// translateConflict maps driver-level serialization and lock errors onto the
// domain conflict sentinel. Domain errors pass through untouched.
func translateConflict(err error) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "could not serialize access"),
		strings.Contains(msg, "deadlock detected"),
		strings.Contains(msg, "database is locked"):
		return shared.ErrConcurrencyConflict
	}
	return err
}

// Ensure GormTransactionScope implements the scope interface
var _ inventory.TransactionScope = (*GormTransactionScope)(nil)
