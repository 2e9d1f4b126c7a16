package inventory

import (
	"context"
	"sort"

	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles ledger operations that are not part of a sale: manual
// adjustments, supplies and stock listings. Every mutation runs inside the
// transaction scope and leaves a movement record.
type Service struct {
	scope TransactionScope
	log   *zap.Logger
}

// NewService creates a new inventory Service
func NewService(scope TransactionScope, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{scope: scope, log: log}
}

// Adjust applies a signed correction to one ingredient's stock. The
// adjustment is rejected if it would take the stock below zero.
func (s *Service) Adjust(ctx context.Context, ingredientID uuid.UUID, delta decimal.Decimal) (*IngredientResponse, error) {
	if delta.IsZero() {
		return nil, shared.ErrInvalidInput
	}

	var resp IngredientResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ingredients, err := repos.Ingredients().FindByIDsForUpdate(ctx, []uuid.UUID{ingredientID})
		if err != nil {
			return err
		}
		if len(ingredients) == 0 {
			return shared.ErrNotFound
		}

		ing := &ingredients[0]
		if err := ing.Apply(delta); err != nil {
			return err
		}
		if err := repos.Ingredients().Save(ctx, ing); err != nil {
			return err
		}

		movement := sales.NewStockMovement(sales.MovementTypeAdjust, sales.DeltaMap{ingredientID: delta}).
			WithNote("manual_adjust")
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return err
		}

		resp = toIngredientResponse(ing)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock adjusted",
		zap.String("ingredient_id", ingredientID.String()),
		zap.String("delta", delta.String()),
	)
	return &resp, nil
}

// RecordSupply credits a restock to one ingredient and records the supply
func (s *Service) RecordSupply(ctx context.Context, ingredientID uuid.UUID, quantity decimal.Decimal) (*IngredientResponse, error) {
	supply, err := sales.NewSupply(ingredientID, quantity)
	if err != nil {
		return nil, err
	}

	var resp IngredientResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ingredients, err := repos.Ingredients().FindByIDsForUpdate(ctx, []uuid.UUID{ingredientID})
		if err != nil {
			return err
		}
		if len(ingredients) == 0 {
			return shared.ErrNotFound
		}

		ing := &ingredients[0]
		if err := ing.Apply(quantity); err != nil {
			return err
		}
		if err := repos.Ingredients().Save(ctx, ing); err != nil {
			return err
		}
		if err := repos.Supplies().Append(ctx, supply); err != nil {
			return err
		}

		movement := sales.NewStockMovement(sales.MovementTypeSupply, sales.DeltaMap{ingredientID: quantity})
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return err
		}

		resp = toIngredientResponse(ing)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("supply recorded",
		zap.String("ingredient_id", ingredientID.String()),
		zap.String("quantity", quantity.String()),
	)
	return &resp, nil
}

// List returns all ingredients sorted by fill ratio, lowest first, the way
// the counter display orders them
func (s *Service) List(ctx context.Context) ([]IngredientResponse, error) {
	var responses []IngredientResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ingredients, err := repos.Ingredients().FindAll(ctx)
		if err != nil {
			return err
		}
		responses = make([]IngredientResponse, 0, len(ingredients))
		for i := range ingredients {
			responses = append(responses, toIngredientResponse(&ingredients[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByFillRatio(responses)
	return responses, nil
}

// ListBelowThreshold returns ingredients that need reordering
func (s *Service) ListBelowThreshold(ctx context.Context) ([]IngredientResponse, error) {
	var responses []IngredientResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ingredients, err := repos.Ingredients().FindBelowThreshold(ctx)
		if err != nil {
			return err
		}
		responses = make([]IngredientResponse, 0, len(ingredients))
		for i := range ingredients {
			responses = append(responses, toIngredientResponse(&ingredients[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// sortByFillRatio orders responses by ascending fill ratio
func sortByFillRatio(responses []IngredientResponse) {
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].FillRatio < responses[j].FillRatio
	})
}
