package sales

import (
	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Resolution is the typed result of resolving one product at one volume.
// Resolved is false when the product has no recipe reference or the referenced
// recipe is absent; the consumption is then empty. Callers must not treat an
// unresolved item as a failure: such items still sell, they just deduct no
// stock. That leniency means a misconfigured product consumes no ingredients,
// so unresolved items are logged at warn level upstream.
type Resolution struct {
	Resolved    bool
	Consumption sales.ConsumptionMap
}

// Catalog is an immutable snapshot of products and recipes taken before a
// sale is resolved. Resolution is a pure function of the snapshot and the
// cart, so a concurrent recipe edit cannot change a sale mid-flight.
type Catalog struct {
	products map[uuid.UUID]*catalog.Product
	recipes  map[uuid.UUID]*catalog.Recipe
}

// NewCatalog builds a snapshot from loaded products and recipes
func NewCatalog(products []catalog.Product, recipes []catalog.Recipe) *Catalog {
	c := &Catalog{
		products: make(map[uuid.UUID]*catalog.Product, len(products)),
		recipes:  make(map[uuid.UUID]*catalog.Recipe, len(recipes)),
	}
	for i := range products {
		c.products[products[i].ID] = &products[i]
	}
	for i := range recipes {
		c.recipes[recipes[i].ID] = &recipes[i]
	}
	return c
}

// Product returns the product with the given ID, or nil if absent
func (c *Catalog) Product(id uuid.UUID) *catalog.Product {
	return c.products[id]
}

// Resolve turns (product, requested volume, selected add-ons) into the
// per-unit ingredient consumption.
//
// Recipe quantities are defined per the recipe's base volume and scale by
// volume / baseVolume; repeated ingredient lines are summed. Add-on
// quantities are fixed and never scale with volume. Unknown add-on codes are
// silently ignored.
func (c *Catalog) Resolve(product *catalog.Product, volumeML int, addOnCodes []string) Resolution {
	consumption := sales.NewConsumptionMap()

	resolved := false
	if product.RecipeID != nil {
		if recipe := c.recipes[*product.RecipeID]; recipe != nil {
			resolved = true
			factor := decimal.NewFromInt(int64(volumeML)).Div(recipe.EffectiveBaseVolume())
			for _, line := range recipe.Ingredients {
				consumption.Add(line.IngredientID, line.Quantity.Mul(factor))
			}
		}
	}

	for _, code := range addOnCodes {
		addOn := product.FindAddOn(code)
		if addOn == nil {
			continue
		}
		for ingredientID, qty := range addOn.Ingredients {
			consumption.Add(ingredientID, qty)
		}
	}

	return Resolution{Resolved: resolved, Consumption: consumption}
}

// Aggregate sums consumption across a cart, weighting each item's per-unit
// consumption by its count. Items whose product is missing from the snapshot
// are skipped; skipped returns their product IDs so callers can log them.
func (c *Catalog) Aggregate(items []sales.CartItem) (need sales.ConsumptionMap, skipped []uuid.UUID) {
	need = sales.NewConsumptionMap()
	for _, item := range items {
		product := c.products[item.ProductID]
		if product == nil {
			skipped = append(skipped, item.ProductID)
			continue
		}
		resolution := c.Resolve(product, item.VolumeML, item.AddOnCodes)
		need.MergeScaled(resolution.Consumption, decimal.NewFromInt(int64(item.Quantity)))
	}
	return need, skipped
}
