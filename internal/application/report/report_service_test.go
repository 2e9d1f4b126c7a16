package report

import (
	"context"
	"testing"
	"time"

	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/domain/shared/valueobject"
	"github.com/gipsy-office/backend/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func committedSale(t *testing.T, productID uuid.UUID, name string, qty int, price int64, delta sales.DeltaMap) *sales.Sale {
	t.Helper()
	sale := sales.NewSale()
	require.NoError(t, sale.BeginValidation())
	total := valueobject.NewMoney(price).MultiplyByInt(int64(qty))
	items := []sales.SaleItem{{
		ProductID:   productID,
		ProductName: name,
		VolumeML:    200,
		Quantity:    qty,
		PriceTotal:  total,
	}}
	require.NoError(t, sale.Commit(items, total, delta))
	return sale
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	saleRepo := memory.NewSaleRepository(store)
	svc := NewService(saleRepo, nil)

	beans := uuid.New()
	milk := uuid.New()
	cappuccino := uuid.New()
	espresso := uuid.New()

	require.NoError(t, saleRepo.Save(ctx, committedSale(t, cappuccino, "Cappuccino", 2, 18000,
		sales.DeltaMap{beans: decimal.NewFromInt(-36), milk: decimal.NewFromInt(-300)})))
	require.NoError(t, saleRepo.Save(ctx, committedSale(t, espresso, "Espresso", 1, 12000,
		sales.DeltaMap{beans: decimal.NewFromInt(-9)})))

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	summary, err := svc.Summarize(ctx, from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SaleCount)
	assert.Equal(t, int64(48000), summary.TotalRevenue)

	require.Len(t, summary.ByProduct, 2)
	assert.Equal(t, "Cappuccino", summary.ByProduct[0].ProductName)
	assert.Equal(t, 2, summary.ByProduct[0].UnitsSold)
	assert.Equal(t, int64(36000), summary.ByProduct[0].Revenue)

	require.Len(t, summary.ByIngredient, 2)
	assert.Equal(t, milk.String(), summary.ByIngredient[0].IngredientID)
	assert.Equal(t, float64(300), summary.ByIngredient[0].Consumed)
	assert.Equal(t, float64(45), summary.ByIngredient[1].Consumed)
}

func TestSummarizeSkipsUndoneSales(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	saleRepo := memory.NewSaleRepository(store)
	svc := NewService(saleRepo, nil)

	beans := uuid.New()
	product := uuid.New()

	kept := committedSale(t, product, "Espresso", 1, 12000, sales.DeltaMap{beans: decimal.NewFromInt(-9)})
	undone := committedSale(t, product, "Espresso", 1, 12000, sales.DeltaMap{beans: decimal.NewFromInt(-9)})
	require.NoError(t, undone.MarkUndone())
	require.NoError(t, saleRepo.Save(ctx, kept))
	require.NoError(t, saleRepo.Save(ctx, undone))

	summary, err := svc.Summarize(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SaleCount)
	assert.Equal(t, int64(12000), summary.TotalRevenue)
	require.Len(t, summary.ByIngredient, 1)
	assert.Equal(t, float64(9), summary.ByIngredient[0].Consumed)
}

func TestSummarizeEmptyRange(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(memory.NewSaleRepository(store), nil)

	summary, err := svc.Summarize(context.Background(), time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 0, summary.SaleCount)
	assert.Empty(t, summary.ByProduct)
	assert.Empty(t, summary.ByIngredient)
}
