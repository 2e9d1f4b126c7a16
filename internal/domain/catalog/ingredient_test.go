package catalog

import (
	"testing"

	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngredient(t *testing.T) {
	t.Run("creates ingredient with stock", func(t *testing.T) {
		ing, err := NewIngredient("Coffee beans", "g", decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, "Coffee beans", ing.Name)
		assert.Equal(t, "g", ing.Unit)
		assert.True(t, ing.StockQuantity.Equal(decimal.NewFromInt(500)))
	})

	t.Run("defaults unit to grams", func(t *testing.T) {
		ing, err := NewIngredient("Milk", "", decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "g", ing.Unit)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewIngredient("", "g", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewIngredient("Milk", "ml", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestIngredientApply(t *testing.T) {
	t.Run("decrements stock", func(t *testing.T) {
		ing, _ := NewIngredient("Beans", "g", decimal.NewFromInt(40))
		err := ing.Apply(decimal.NewFromInt(-36))
		require.NoError(t, err)
		assert.True(t, ing.StockQuantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("credits stock", func(t *testing.T) {
		ing, _ := NewIngredient("Beans", "g", decimal.NewFromInt(10))
		err := ing.Apply(decimal.NewFromInt(36))
		require.NoError(t, err)
		assert.True(t, ing.StockQuantity.Equal(decimal.NewFromInt(46)))
	})

	t.Run("allows draining to exactly zero", func(t *testing.T) {
		ing, _ := NewIngredient("Beans", "g", decimal.NewFromInt(36))
		err := ing.Apply(decimal.NewFromInt(-36))
		require.NoError(t, err)
		assert.True(t, ing.StockQuantity.IsZero())
	})

	t.Run("rejects going below zero and leaves stock untouched", func(t *testing.T) {
		ing, _ := NewIngredient("Beans", "g", decimal.NewFromInt(20))
		err := ing.Apply(decimal.NewFromInt(-36))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, ing.StockQuantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("increments the version on success", func(t *testing.T) {
		ing, _ := NewIngredient("Beans", "g", decimal.NewFromInt(20))
		before := ing.Version
		require.NoError(t, ing.Apply(decimal.NewFromInt(-1)))
		assert.Equal(t, before+1, ing.Version)
	})
}

func TestIngredientCanCover(t *testing.T) {
	ing, _ := NewIngredient("Milk", "ml", decimal.NewFromInt(310))

	assert.True(t, ing.CanCover(decimal.NewFromInt(300)))
	assert.True(t, ing.CanCover(decimal.NewFromInt(310)))
	assert.False(t, ing.CanCover(decimal.NewFromInt(311)))
}

func TestIngredientFillRatio(t *testing.T) {
	t.Run("zero when capacity unset", func(t *testing.T) {
		ing, _ := NewIngredient("Milk", "ml", decimal.NewFromInt(100))
		assert.True(t, ing.FillRatio().IsZero())
	})

	t.Run("clamps above capacity to one", func(t *testing.T) {
		ing, _ := NewIngredient("Milk", "ml", decimal.NewFromInt(150))
		ing.Capacity = decimal.NewFromInt(100)
		assert.True(t, ing.FillRatio().Equal(decimal.NewFromInt(1)))
	})

	t.Run("computes the fraction", func(t *testing.T) {
		ing, _ := NewIngredient("Milk", "ml", decimal.NewFromInt(30))
		ing.Capacity = decimal.NewFromInt(100)
		assert.True(t, ing.FillRatio().Equal(decimal.NewFromFloat(0.3)))
	})
}

func TestIngredientStatus(t *testing.T) {
	cases := []struct {
		stock  int64
		status StockStatus
	}{
		{100, StockStatusOK},
		{75, StockStatusOK},
		{74, StockStatusLow},
		{50, StockStatusLow},
		{49, StockStatusWarning},
		{25, StockStatusWarning},
		{24, StockStatusCritical},
		{0, StockStatusCritical},
	}
	for _, tc := range cases {
		ing, _ := NewIngredient("Milk", "ml", decimal.NewFromInt(tc.stock))
		ing.Capacity = decimal.NewFromInt(100)
		assert.Equal(t, tc.status, ing.Status(), "stock %d", tc.stock)
	}
}

func TestIngredientIsBelowThreshold(t *testing.T) {
	t.Run("false when no threshold configured", func(t *testing.T) {
		ing, _ := NewIngredient("Milk", "ml", decimal.Zero)
		assert.False(t, ing.IsBelowThreshold())
	})

	t.Run("true when stock drops under the threshold", func(t *testing.T) {
		ing, _ := NewIngredient("Milk", "ml", decimal.NewFromInt(9))
		ing.ReorderThreshold = decimal.NewFromInt(10)
		assert.True(t, ing.IsBelowThreshold())
	})

	t.Run("false at exactly the threshold", func(t *testing.T) {
		ing, _ := NewIngredient("Milk", "ml", decimal.NewFromInt(10))
		ing.ReorderThreshold = decimal.NewFromInt(10)
		assert.False(t, ing.IsBelowThreshold())
	})
}
