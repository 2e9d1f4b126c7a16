// Package memory provides an in-memory implementation of the repository and
// transaction scope contracts. It backs application-level tests where a real
// database would only add setup cost. Transactions are serialized by a single
// mutex and rolled back by restoring a snapshot, which trivially satisfies the
// serializability requirement of the transaction scope.
package memory

import (
	"sync"

	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/google/uuid"
)

// Store holds all state shared by the in-memory repositories.
type Store struct {
	mu sync.RWMutex

	ingredients map[uuid.UUID]catalog.Ingredient
	recipes     map[uuid.UUID]catalog.Recipe
	products    map[uuid.UUID]catalog.Product

	// sales are kept in insertion order, which is creation order
	sales     []sales.Sale
	movements []sales.StockMovement
	supplies  []sales.Supply
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		ingredients: make(map[uuid.UUID]catalog.Ingredient),
		recipes:     make(map[uuid.UUID]catalog.Recipe),
		products:    make(map[uuid.UUID]catalog.Product),
	}
}

// snapshot captures the mutable ledger state so a failed transaction can be
// rolled back. Catalog maps are included because a transaction may save
// ingredients.
type snapshot struct {
	ingredients map[uuid.UUID]catalog.Ingredient
	sales       []sales.Sale
	movements   []sales.StockMovement
	supplies    []sales.Supply
}

func (s *Store) takeSnapshot() snapshot {
	ingredients := make(map[uuid.UUID]catalog.Ingredient, len(s.ingredients))
	for id, ing := range s.ingredients {
		ingredients[id] = ing
	}
	snap := snapshot{
		ingredients: ingredients,
		sales:       make([]sales.Sale, len(s.sales)),
		movements:   make([]sales.StockMovement, len(s.movements)),
		supplies:    make([]sales.Supply, len(s.supplies)),
	}
	copy(snap.sales, s.sales)
	copy(snap.movements, s.movements)
	copy(snap.supplies, s.supplies)
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.ingredients = snap.ingredients
	s.sales = snap.sales
	s.movements = snap.movements
	s.supplies = snap.supplies
}
