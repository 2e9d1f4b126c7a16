package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gipsy-office/backend/internal/application/inventory"
	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/gipsy-office/backend/internal/domain/shared/valueobject"
	"github.com/gipsy-office/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDB opens a fresh in-memory SQLite database with the full schema
func setupDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGormIngredientRepository(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormIngredientRepository(db.DB)

	t.Run("save and find round trip keeps decimal stock", func(t *testing.T) {
		ing, err := catalog.NewIngredient("Beans", "g", decimal.RequireFromString("123.45"))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, ing))

		found, err := repo.FindByID(ctx, ing.ID)
		require.NoError(t, err)
		assert.Equal(t, "Beans", found.Name)
		assert.True(t, found.StockQuantity.Equal(decimal.RequireFromString("123.45")))
	})

	t.Run("missing ingredient maps to ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by ids skips unknown ids", func(t *testing.T) {
		ing, err := catalog.NewIngredient("Milk", "ml", decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, ing))

		found, err := repo.FindByIDs(ctx, []uuid.UUID{ing.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, ing.ID, found[0].ID)
	})

	t.Run("below threshold filter", func(t *testing.T) {
		low, err := catalog.NewIngredient("Syrup", "ml", decimal.NewFromInt(5))
		require.NoError(t, err)
		low.ReorderThreshold = decimal.NewFromInt(10)
		require.NoError(t, repo.Save(ctx, low))

		ok, err := catalog.NewIngredient("Sugar", "g", decimal.NewFromInt(500))
		require.NoError(t, err)
		ok.ReorderThreshold = decimal.NewFromInt(10)
		require.NoError(t, repo.Save(ctx, ok))

		below, err := repo.FindBelowThreshold(ctx)
		require.NoError(t, err)
		require.Len(t, below, 1)
		assert.Equal(t, "Syrup", below[0].Name)
	})
}

func TestGormCatalogRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	recipeRepo := NewGormRecipeRepository(db.DB)
	productRepo := NewGormProductRepository(db.DB)

	beans := uuid.New()
	milk := uuid.New()
	syrup := uuid.New()

	recipe, err := catalog.NewRecipe("Cappuccino", 200)
	require.NoError(t, err)
	require.NoError(t, recipe.AddIngredient(beans, decimal.NewFromInt(18)))
	require.NoError(t, recipe.AddIngredient(milk, decimal.NewFromInt(150)))
	require.NoError(t, recipeRepo.Save(ctx, recipe))

	product, err := catalog.NewProduct("Cappuccino", "coffee", valueobject.NewMoney(18000))
	require.NoError(t, err)
	product.SetRecipe(recipe.ID)
	require.NoError(t, product.AddAddOn("syrup_vanilla", "Vanilla syrup", valueobject.NewMoney(3000),
		map[uuid.UUID]decimal.Decimal{syrup: decimal.NewFromInt(10)}))
	require.NoError(t, productRepo.Save(ctx, product))

	t.Run("recipe lines come back in position order", func(t *testing.T) {
		found, err := recipeRepo.FindByID(ctx, recipe.ID)
		require.NoError(t, err)
		require.Len(t, found.Ingredients, 2)
		assert.Equal(t, beans, found.Ingredients[0].IngredientID)
		assert.Equal(t, milk, found.Ingredients[1].IngredientID)
	})

	t.Run("product preloads add-ons with their ingredient map", func(t *testing.T) {
		found, err := productRepo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, found.AddOns, 1)
		addOn := found.AddOns[0]
		assert.Equal(t, "syrup_vanilla", addOn.Code)
		assert.True(t, addOn.PriceDelta.Equal(valueobject.NewMoney(3000)))
		assert.True(t, addOn.Ingredients[syrup].Equal(decimal.NewFromInt(10)))
	})

	t.Run("category filter", func(t *testing.T) {
		coffee, err := productRepo.FindActiveByCategory(ctx, "coffee")
		require.NoError(t, err)
		assert.Len(t, coffee, 1)

		tea, err := productRepo.FindActiveByCategory(ctx, "tea")
		require.NoError(t, err)
		assert.Empty(t, tea)
	})

	t.Run("inactive products are hidden", func(t *testing.T) {
		product.IsActive = false
		require.NoError(t, productRepo.Save(ctx, product))

		active, err := productRepo.FindActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})
}

func TestGormSaleRepository(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormSaleRepository(db.DB)

	commit := func(t *testing.T, created time.Time, delta sales.DeltaMap) *sales.Sale {
		t.Helper()
		sale := sales.NewSale()
		require.NoError(t, sale.BeginValidation())
		items := []sales.SaleItem{{
			ProductID:   uuid.New(),
			ProductName: "Cappuccino",
			VolumeML:    200,
			Quantity:    1,
			PriceTotal:  valueobject.NewMoney(18000),
		}}
		require.NoError(t, sale.Commit(items, valueobject.NewMoney(18000), delta))
		sale.CreatedAt = created
		require.NoError(t, repo.Save(ctx, sale))
		return sale
	}

	t.Run("empty ledger", func(t *testing.T) {
		_, err := repo.FindLatest(ctx)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	ingredientID := uuid.New()
	now := time.Now()
	older := commit(t, now.Add(-2*time.Hour), sales.DeltaMap{ingredientID: decimal.NewFromInt(-18)})
	newer := commit(t, now.Add(-time.Hour), sales.DeltaMap{ingredientID: decimal.NewFromInt(-36)})

	t.Run("latest is the newest by creation time", func(t *testing.T) {
		latest, err := repo.FindLatest(ctx)
		require.NoError(t, err)
		assert.Equal(t, newer.ID, latest.ID)
	})

	t.Run("serialized fields survive the round trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Cappuccino", found.Items[0].ProductName)
		assert.True(t, found.TotalAmount.Equal(valueobject.NewMoney(18000)))
		assert.True(t, found.InventoryDelta[ingredientID].Equal(decimal.NewFromInt(-18)))
	})

	t.Run("find between is half-open and ascending", func(t *testing.T) {
		records, err := repo.FindBetween(ctx, now.Add(-3*time.Hour), now)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, older.ID, records[0].ID)
		assert.Equal(t, newer.ID, records[1].ID)

		none, err := repo.FindBetween(ctx, now, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("undo state persists", func(t *testing.T) {
		require.NoError(t, newer.MarkUndone())
		require.NoError(t, repo.Save(ctx, newer))

		latest, err := repo.FindLatest(ctx)
		require.NoError(t, err)
		assert.True(t, latest.IsUndone())
		assert.NotNil(t, latest.UndoneAt)
	})
}

func TestGormMovementAndSupplyRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	movementRepo := NewGormStockMovementRepository(db.DB)
	supplyRepo := NewGormSupplyRepository(db.DB)

	saleID := uuid.New()
	ingredientID := uuid.New()

	movement := sales.NewStockMovement(sales.MovementTypeSale,
		sales.DeltaMap{ingredientID: decimal.NewFromInt(-18)}).ForSale(saleID)
	require.NoError(t, movementRepo.Append(ctx, movement))

	unlinked := sales.NewStockMovement(sales.MovementTypeAdjust,
		sales.DeltaMap{ingredientID: decimal.NewFromInt(5)}).WithNote("manual_adjust")
	require.NoError(t, movementRepo.Append(ctx, unlinked))

	t.Run("find by sale only surfaces linked movements", func(t *testing.T) {
		movements, err := movementRepo.FindBySale(ctx, saleID)
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, sales.MovementTypeSale, movements[0].Type)
		assert.True(t, movements[0].Delta[ingredientID].Equal(decimal.NewFromInt(-18)))
	})

	t.Run("supplies are per ingredient", func(t *testing.T) {
		supply, err := sales.NewSupply(ingredientID, decimal.NewFromInt(500))
		require.NoError(t, err)
		require.NoError(t, supplyRepo.Append(ctx, supply))

		found, err := supplyRepo.FindByIngredient(ctx, ingredientID)
		require.NoError(t, err)
		require.Len(t, found, 1)

		other, err := supplyRepo.FindByIngredient(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestGormTransactionScope(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	scope := NewGormTransactionScope(db.DB)

	ing, err := catalog.NewIngredient("Beans", "g", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, NewGormIngredientRepository(db.DB).Save(ctx, ing))

	t.Run("commits on success", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
			locked, err := repos.Ingredients().FindByIDsForUpdate(ctx, []uuid.UUID{ing.ID})
			if err != nil {
				return err
			}
			if err := locked[0].Apply(decimal.NewFromInt(-40)); err != nil {
				return err
			}
			return repos.Ingredients().Save(ctx, &locked[0])
		})
		require.NoError(t, err)

		found, err := NewGormIngredientRepository(db.DB).FindByID(ctx, ing.ID)
		require.NoError(t, err)
		assert.True(t, found.StockQuantity.Equal(decimal.NewFromInt(60)))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
			locked, err := repos.Ingredients().FindByIDsForUpdate(ctx, []uuid.UUID{ing.ID})
			if err != nil {
				return err
			}
			if err := locked[0].Apply(decimal.NewFromInt(-10)); err != nil {
				return err
			}
			if err := repos.Ingredients().Save(ctx, &locked[0]); err != nil {
				return err
			}
			return shared.ErrInsufficientStock
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		found, err := NewGormIngredientRepository(db.DB).FindByID(ctx, ing.ID)
		require.NoError(t, err)
		assert.True(t, found.StockQuantity.Equal(decimal.NewFromInt(60)))
	})
}

func TestTranslateConflict(t *testing.T) {
	t.Run("serialization failures map to the conflict sentinel", func(t *testing.T) {
		err := translateConflict(errSerialization("pq: could not serialize access due to concurrent update"))
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		err = translateConflict(errSerialization("database is locked"))
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		err := translateConflict(shared.ErrInsufficientStock)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		original := errSerialization("connection refused")
		assert.Equal(t, error(original), translateConflict(original))
	})
}

// errSerialization is a plain error carrying a driver-style message
type errSerialization string

func (e errSerialization) Error() string { return string(e) }
