package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	appinv "github.com/gipsy-office/backend/internal/application/inventory"
	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/gipsy-office/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// errSaleRejected aborts the sale transaction after shortages were collected,
// so the rollback discards the validation reads without losing the shortage
// list captured by the closure.
var errSaleRejected = errors.New("sale rejected due to insufficient stock")

// Service coordinates sale commits against the ingredient ledger.
//
// A sale runs PENDING -> VALIDATING -> {COMMITTED, REJECTED}. Validation and
// the decrements happen inside one transaction scope with the referenced
// ingredient rows locked, so concurrent sales over the same ingredients
// serialize: two sales that are individually satisfiable but jointly exceed
// stock can never both commit. Rejected sales leave the ledger untouched and
// are not persisted.
type Service struct {
	productRepo catalog.ProductRepository
	recipeRepo  catalog.RecipeRepository
	scope       appinv.TransactionScope
	log         *zap.Logger
}

// NewService creates a new sales Service
func NewService(
	productRepo catalog.ProductRepository,
	recipeRepo catalog.RecipeRepository,
	scope appinv.TransactionScope,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		scope:       scope,
		log:         log,
	}
}

// Sell validates the cart's aggregated consumption against the ledger and,
// if every ingredient covers its requirement, atomically decrements stock and
// records the sale. On any shortage the whole attempt is rejected and the
// returned result lists every deficit.
func (s *Service) Sell(ctx context.Context, cart []sales.CartItem) (*SellResult, error) {
	if err := sales.ValidateCart(cart); err != nil {
		return nil, err
	}

	snapshot, err := s.loadCatalog(ctx, cart)
	if err != nil {
		return nil, err
	}

	need, skipped := snapshot.Aggregate(cart)
	s.warnLenientItems(snapshot, cart, skipped)

	items, total := s.snapshotItems(snapshot, cart)

	sale := sales.NewSale()
	if err := sale.BeginValidation(); err != nil {
		return nil, err
	}

	var shortages []sales.Shortage
	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		ingredients, err := lockIngredients(ctx, repos.Ingredients(), need)
		if err != nil {
			return err
		}

		for id, required := range need {
			ing := ingredients[id]
			if !ing.CanCover(required) {
				shortages = append(shortages, sales.NewShortage(id, ing.Name, required, ing.StockQuantity))
			}
		}
		if len(shortages) > 0 {
			return errSaleRejected
		}

		for id, required := range need {
			ing := ingredients[id]
			if err := ing.Apply(required.Neg()); err != nil {
				return err
			}
			if err := repos.Ingredients().Save(ctx, ing); err != nil {
				return err
			}
		}

		delta := need.Negate()
		if err := sale.Commit(items, total, delta); err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		movement := sales.NewStockMovement(sales.MovementTypeSale, delta).ForSale(sale.ID)
		return repos.Movements().Append(ctx, movement)
	})

	if errors.Is(err, errSaleRejected) {
		if err := sale.Reject(); err != nil {
			return nil, err
		}
		sortShortages(shortages)
		s.log.Info("sale rejected",
			zap.Int("items", len(cart)),
			zap.Int("shortages", len(shortages)),
		)
		return &SellResult{Committed: false, Shortages: shortages}, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("sale committed",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("items", len(cart)),
		zap.Int64("total_amount", total.Kopecks()),
	)
	return &SellResult{
		Committed:   true,
		SaleID:      sale.ID.String(),
		TotalAmount: total.Kopecks(),
	}, nil
}

// UndoLastSale reverses the most recent committed sale by crediting its
// recorded delta back to the ledger. This is a compensating operation in its
// own transaction, not a rollback of the original commit: sales that touched
// the same ingredients in between are unaffected.
func (s *Service) UndoLastSale(ctx context.Context) (*UndoResult, error) {
	var undoneID uuid.UUID
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		sale, err := repos.Sales().FindLatest(ctx)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrNoSaleToUndo
			}
			return err
		}
		if sale.IsUndone() {
			return shared.ErrAlreadyUndone
		}

		credit := sale.InventoryDelta.Invert()
		need := sales.ConsumptionMap(credit)
		ingredients, err := lockIngredients(ctx, repos.Ingredients(), need)
		if err != nil {
			return err
		}
		for id, qty := range credit {
			ing := ingredients[id]
			if err := ing.Apply(qty); err != nil {
				return err
			}
			if err := repos.Ingredients().Save(ctx, ing); err != nil {
				return err
			}
		}

		if err := sale.MarkUndone(); err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		undoneID = sale.ID
		movement := sales.NewStockMovement(sales.MovementTypeUndo, sales.DeltaMap(credit)).ForSale(sale.ID)
		return repos.Movements().Append(ctx, movement)
	})

	switch {
	case errors.Is(err, shared.ErrNoSaleToUndo):
		return &UndoResult{OK: false, Reason: shared.ErrNoSaleToUndo.Code}, nil
	case errors.Is(err, shared.ErrAlreadyUndone):
		return &UndoResult{OK: false, Reason: shared.ErrAlreadyUndone.Code}, nil
	case err != nil:
		return nil, err
	}

	s.log.Info("sale undone", zap.String("sale_id", undoneID.String()))
	return &UndoResult{OK: true, SaleID: undoneID.String()}, nil
}

// PreviewConsumption computes what a cart would consume and which shortages
// it would hit against current stock, without touching the ledger. The
// result is advisory; stock may change before the sale commits.
func (s *Service) PreviewConsumption(ctx context.Context, cart []sales.CartItem) (*PreviewResult, error) {
	if err := sales.ValidateCart(cart); err != nil {
		return nil, err
	}

	snapshot, err := s.loadCatalog(ctx, cart)
	if err != nil {
		return nil, err
	}
	need, _ := snapshot.Aggregate(cart)

	result := &PreviewResult{Consumption: make([]ConsumptionEntry, 0, len(need))}
	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		ingredients, err := repos.Ingredients().FindByIDs(ctx, need.IngredientIDs())
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Ingredient, len(ingredients))
		for i := range ingredients {
			byID[ingredients[i].ID] = &ingredients[i]
		}

		for id, required := range need {
			entry := ConsumptionEntry{IngredientID: id.String()}
			entry.Required, _ = required.Float64()

			ing := byID[id]
			if ing == nil {
				result.Shortages = append(result.Shortages, sales.NewShortage(id, "", required, decimal.Zero))
			} else {
				entry.IngredientName = ing.Name
				if !ing.CanCover(required) {
					result.Shortages = append(result.Shortages, sales.NewShortage(id, ing.Name, required, ing.StockQuantity))
				}
			}
			result.Consumption = append(result.Consumption, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Consumption, func(i, j int) bool {
		return result.Consumption[i].IngredientID < result.Consumption[j].IngredientID
	})
	sortShortages(result.Shortages)
	return result, nil
}

// SalesBetween lists sales created in [from, to), oldest first
func (s *Service) SalesBetween(ctx context.Context, from, to time.Time) ([]SaleResponse, error) {
	var responses []SaleResponse
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		records, err := repos.Sales().FindBetween(ctx, from, to)
		if err != nil {
			return err
		}
		responses = make([]SaleResponse, 0, len(records))
		for i := range records {
			responses = append(responses, toSaleResponse(&records[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// loadCatalog loads the products referenced by the cart and their recipes
// into an immutable snapshot. Products absent from the store are simply not
// loaded; Aggregate reports them as skipped.
func (s *Service) loadCatalog(ctx context.Context, cart []sales.CartItem) (*Catalog, error) {
	seenProducts := make(map[uuid.UUID]bool, len(cart))
	var products []catalog.Product
	var recipeIDs []uuid.UUID
	seenRecipes := make(map[uuid.UUID]bool)

	for _, item := range cart {
		if seenProducts[item.ProductID] {
			continue
		}
		seenProducts[item.ProductID] = true

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		products = append(products, *product)
		if product.RecipeID != nil && !seenRecipes[*product.RecipeID] {
			seenRecipes[*product.RecipeID] = true
			recipeIDs = append(recipeIDs, *product.RecipeID)
		}
	}

	var recipes []catalog.Recipe
	for _, id := range recipeIDs {
		recipe, err := s.recipeRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}

	return NewCatalog(products, recipes), nil
}

// snapshotItems builds the immutable sale item snapshot and the cart total.
// Items whose product is missing are excluded from the snapshot too.
func (s *Service) snapshotItems(snapshot *Catalog, cart []sales.CartItem) ([]sales.SaleItem, valueobject.Money) {
	items := make([]sales.SaleItem, 0, len(cart))
	total := valueobject.ZeroMoney()
	for _, item := range cart {
		product := snapshot.Product(item.ProductID)
		if product == nil {
			continue
		}
		priceTotal := product.UnitPrice(item.AddOnCodes).MultiplyByInt(int64(item.Quantity))
		items = append(items, sales.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			VolumeML:    item.VolumeML,
			Quantity:    item.Quantity,
			AddOnCodes:  item.AddOnCodes,
			PriceTotal:  priceTotal,
		})
		total = total.Add(priceTotal)
	}
	return items, total
}

// warnLenientItems logs cart items that will not deduct any stock, either
// because the product is gone or because it has no resolvable recipe. The
// sale still goes through; catalog drift must not block the counter.
func (s *Service) warnLenientItems(snapshot *Catalog, cart []sales.CartItem, skipped []uuid.UUID) {
	for _, id := range skipped {
		s.log.Warn("cart item skipped: product not found", zap.String("product_id", id.String()))
	}
	for _, item := range cart {
		product := snapshot.Product(item.ProductID)
		if product == nil {
			continue
		}
		if res := snapshot.Resolve(product, item.VolumeML, nil); !res.Resolved {
			s.log.Warn("product has no resolvable recipe, selling without stock deduction",
				zap.String("product_id", product.ID.String()),
				zap.String("product_name", product.Name),
			)
		}
	}
}

// lockIngredients reads and row-locks every ingredient referenced by the
// consumption map. A referenced ingredient absent from the store is fatal and
// aborts the transaction.
func lockIngredients(ctx context.Context, repo catalog.IngredientRepository, need sales.ConsumptionMap) (map[uuid.UUID]*catalog.Ingredient, error) {
	ids := need.IngredientIDs()
	ingredients, err := repo.FindByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Ingredient, len(ingredients))
	for i := range ingredients {
		byID[ingredients[i].ID] = &ingredients[i]
	}
	for _, id := range ids {
		if byID[id] == nil {
			return nil, shared.ErrUnknownIngredient
		}
	}
	return byID, nil
}

// sortShortages orders shortages by ingredient ID for stable output
func sortShortages(shortages []sales.Shortage) {
	sort.Slice(shortages, func(i, j int) bool {
		return shortages[i].IngredientID.String() < shortages[j].IngredientID.String()
	})
}
