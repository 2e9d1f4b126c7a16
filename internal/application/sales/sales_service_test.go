package sales

import (
	"context"
	"sync"
	"testing"

	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/gipsy-office/backend/internal/domain/shared/valueobject"
	"github.com/gipsy-office/backend/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture wires a sales service against the in-memory store with the
// cappuccino catalog: 200ml base consuming 18g beans and 150ml milk.
type fixture struct {
	store   *memory.Store
	service *Service
	product *catalog.Product
	beans   *catalog.Ingredient
	milk    *catalog.Ingredient
}

func newFixture(t *testing.T, beansStock, milkStock int64) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	ingredientRepo := memory.NewIngredientRepository(store)
	recipeRepo := memory.NewRecipeRepository(store)
	productRepo := memory.NewProductRepository(store)

	beans, err := catalog.NewIngredient("Coffee beans", "g", decimal.NewFromInt(beansStock))
	require.NoError(t, err)
	milk, err := catalog.NewIngredient("Milk", "ml", decimal.NewFromInt(milkStock))
	require.NoError(t, err)
	require.NoError(t, ingredientRepo.Save(ctx, beans))
	require.NoError(t, ingredientRepo.Save(ctx, milk))

	recipe, err := catalog.NewRecipe("Cappuccino", 200)
	require.NoError(t, err)
	require.NoError(t, recipe.AddIngredient(beans.ID, decimal.NewFromInt(18)))
	require.NoError(t, recipe.AddIngredient(milk.ID, decimal.NewFromInt(150)))
	require.NoError(t, recipeRepo.Save(ctx, recipe))

	product, err := catalog.NewProduct("Cappuccino", "coffee", valueobject.NewMoney(18000))
	require.NoError(t, err)
	product.SetRecipe(recipe.ID)
	require.NoError(t, productRepo.Save(ctx, product))

	scope := memory.NewTransactionScope(store)
	service := NewService(productRepo, recipeRepo, scope, nil)

	return &fixture{
		store:   store,
		service: service,
		product: product,
		beans:   beans,
		milk:    milk,
	}
}

func (f *fixture) stockOf(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	ing, err := memory.NewIngredientRepository(f.store).FindByID(context.Background(), id)
	require.NoError(t, err)
	return ing.StockQuantity
}

func TestSellCommits(t *testing.T) {
	f := newFixture(t, 40, 310)

	result, err := f.service.Sell(context.Background(), []sales.CartItem{
		{ProductID: f.product.ID, VolumeML: 400, Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.NotEmpty(t, result.SaleID)
	assert.Equal(t, int64(18000), result.TotalAmount)
	assert.Empty(t, result.Shortages)

	// 400ml doubles the base recipe: 36g beans, 300ml milk
	assert.True(t, f.stockOf(t, f.beans.ID).Equal(decimal.NewFromInt(4)))
	assert.True(t, f.stockOf(t, f.milk.ID).Equal(decimal.NewFromInt(10)))
}

func TestSellRejectsOnShortage(t *testing.T) {
	f := newFixture(t, 20, 310)

	result, err := f.service.Sell(context.Background(), []sales.CartItem{
		{ProductID: f.product.ID, VolumeML: 400, Quantity: 1},
	})
	require.NoError(t, err)

	require.False(t, result.Committed)
	require.Len(t, result.Shortages, 1)
	shortage := result.Shortages[0]
	assert.Equal(t, f.beans.ID, shortage.IngredientID)
	assert.True(t, shortage.Required.Equal(decimal.NewFromInt(36)))
	assert.True(t, shortage.Available.Equal(decimal.NewFromInt(20)))
	assert.True(t, shortage.Deficit.Equal(decimal.NewFromInt(16)))

	// rejection leaves the ledger untouched, milk included
	assert.True(t, f.stockOf(t, f.beans.ID).Equal(decimal.NewFromInt(20)))
	assert.True(t, f.stockOf(t, f.milk.ID).Equal(decimal.NewFromInt(310)))

	// and persists nothing to undo
	undo, err := f.service.UndoLastSale(context.Background())
	require.NoError(t, err)
	assert.False(t, undo.OK)
	assert.Equal(t, "NO_SALE_TO_UNDO", undo.Reason)
}

func TestSellReportsEveryShortage(t *testing.T) {
	f := newFixture(t, 10, 100)

	result, err := f.service.Sell(context.Background(), []sales.CartItem{
		{ProductID: f.product.ID, VolumeML: 400, Quantity: 1},
	})
	require.NoError(t, err)

	require.False(t, result.Committed)
	assert.Len(t, result.Shortages, 2)
}

func TestSellAggregatesQuantities(t *testing.T) {
	f := newFixture(t, 54, 450)

	result, err := f.service.Sell(context.Background(), []sales.CartItem{
		{ProductID: f.product.ID, VolumeML: 200, Quantity: 3},
	})
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.Equal(t, int64(54000), result.TotalAmount)
	assert.True(t, f.stockOf(t, f.beans.ID).IsZero())
	assert.True(t, f.stockOf(t, f.milk.ID).IsZero())
}

func TestSellEmptyCart(t *testing.T) {
	f := newFixture(t, 40, 310)

	_, err := f.service.Sell(context.Background(), nil)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
}

func TestSellUnknownProductSkipsDeduction(t *testing.T) {
	f := newFixture(t, 40, 310)

	// A cart referencing only a missing product sells with zero consumption,
	// mirroring the lenient source behavior.
	result, err := f.service.Sell(context.Background(), []sales.CartItem{
		{ProductID: uuid.New(), VolumeML: 200, Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.Equal(t, int64(0), result.TotalAmount)
	assert.True(t, f.stockOf(t, f.beans.ID).Equal(decimal.NewFromInt(40)))
}

func TestUndoLastSale(t *testing.T) {
	t.Run("credits the recorded delta back", func(t *testing.T) {
		f := newFixture(t, 40, 310)

		sellResult, err := f.service.Sell(context.Background(), []sales.CartItem{
			{ProductID: f.product.ID, VolumeML: 400, Quantity: 1},
		})
		require.NoError(t, err)
		require.True(t, sellResult.Committed)

		undo, err := f.service.UndoLastSale(context.Background())
		require.NoError(t, err)
		assert.True(t, undo.OK)
		assert.Equal(t, sellResult.SaleID, undo.SaleID)

		assert.True(t, f.stockOf(t, f.beans.ID).Equal(decimal.NewFromInt(40)))
		assert.True(t, f.stockOf(t, f.milk.ID).Equal(decimal.NewFromInt(310)))
	})

	t.Run("second undo of the same sale is refused", func(t *testing.T) {
		f := newFixture(t, 40, 310)

		_, err := f.service.Sell(context.Background(), []sales.CartItem{
			{ProductID: f.product.ID, VolumeML: 200, Quantity: 1},
		})
		require.NoError(t, err)

		first, err := f.service.UndoLastSale(context.Background())
		require.NoError(t, err)
		require.True(t, first.OK)

		second, err := f.service.UndoLastSale(context.Background())
		require.NoError(t, err)
		assert.False(t, second.OK)
		assert.Equal(t, "ALREADY_UNDONE", second.Reason)

		// the compensating credit was applied exactly once
		assert.True(t, f.stockOf(t, f.beans.ID).Equal(decimal.NewFromInt(40)))
	})

	t.Run("nothing to undo on an empty ledger", func(t *testing.T) {
		f := newFixture(t, 40, 310)

		undo, err := f.service.UndoLastSale(context.Background())
		require.NoError(t, err)
		assert.False(t, undo.OK)
		assert.Equal(t, "NO_SALE_TO_UNDO", undo.Reason)
	})

	t.Run("undo then sell then undo reverses the newest sale", func(t *testing.T) {
		f := newFixture(t, 100, 1000)
		ctx := context.Background()

		_, err := f.service.Sell(ctx, []sales.CartItem{{ProductID: f.product.ID, VolumeML: 200, Quantity: 1}})
		require.NoError(t, err)
		second, err := f.service.Sell(ctx, []sales.CartItem{{ProductID: f.product.ID, VolumeML: 400, Quantity: 1}})
		require.NoError(t, err)

		undo, err := f.service.UndoLastSale(ctx)
		require.NoError(t, err)
		require.True(t, undo.OK)
		assert.Equal(t, second.SaleID, undo.SaleID)

		// only the first sale's consumption remains applied
		assert.True(t, f.stockOf(t, f.beans.ID).Equal(decimal.NewFromInt(82)))
		assert.True(t, f.stockOf(t, f.milk.ID).Equal(decimal.NewFromInt(850)))
	})
}

func TestPreviewConsumption(t *testing.T) {
	f := newFixture(t, 20, 310)

	preview, err := f.service.PreviewConsumption(context.Background(), []sales.CartItem{
		{ProductID: f.product.ID, VolumeML: 400, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, preview.Consumption, 2)
	require.Len(t, preview.Shortages, 1)
	assert.Equal(t, f.beans.ID, preview.Shortages[0].IngredientID)

	// preview never touches stock
	assert.True(t, f.stockOf(t, f.beans.ID).Equal(decimal.NewFromInt(20)))
	assert.True(t, f.stockOf(t, f.milk.ID).Equal(decimal.NewFromInt(310)))
}

func TestConcurrentSellsOverlappingStock(t *testing.T) {
	// Stock covers exactly one 400ml cup. Two concurrent sales race for it;
	// exactly one may commit.
	f := newFixture(t, 36, 300)

	const attempts = 2
	results := make([]*SellResult, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.service.Sell(context.Background(), []sales.CartItem{
				{ProductID: f.product.ID, VolumeML: 400, Quantity: 1},
			})
		}(i)
	}
	wg.Wait()

	committed := 0
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		if results[i].Committed {
			committed++
		} else {
			assert.NotEmpty(t, results[i].Shortages)
		}
	}
	assert.Equal(t, 1, committed)
	assert.True(t, f.stockOf(t, f.beans.ID).IsZero())
	assert.True(t, f.stockOf(t, f.milk.ID).IsZero())
}
