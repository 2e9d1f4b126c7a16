package memory

import (
	"context"
	"sort"

	"github.com/gipsy-office/backend/internal/domain/catalog"
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IngredientRepository implements catalog.IngredientRepository over the store
type IngredientRepository struct {
	store *Store
}

// NewIngredientRepository creates a new in-memory ingredient repository
func NewIngredientRepository(store *Store) *IngredientRepository {
	return &IngredientRepository{store: store}
}

// FindByID finds an ingredient by its ID
func (r *IngredientRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Ingredient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ing, ok := r.store.ingredients[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &ing, nil
}

// FindByIDs finds multiple ingredients by their IDs. IDs without a matching
// ingredient are silently skipped, mirroring a WHERE id IN query.
func (r *IngredientRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Ingredient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make([]catalog.Ingredient, 0, len(ids))
	for _, id := range ids {
		if ing, ok := r.store.ingredients[id]; ok {
			found = append(found, ing)
		}
	}
	return found, nil
}

// FindByIDsForUpdate behaves like FindByIDs. Row locking is unnecessary here
// because the transaction scope serializes all transactions with one mutex.
func (r *IngredientRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Ingredient, error) {
	return r.FindByIDs(ctx, ids)
}

// FindAll lists all ingredients sorted by name
func (r *IngredientRepository) FindAll(_ context.Context) ([]catalog.Ingredient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]catalog.Ingredient, 0, len(r.store.ingredients))
	for _, ing := range r.store.ingredients {
		all = append(all, ing)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// FindBelowThreshold lists ingredients below their reorder threshold
func (r *IngredientRepository) FindBelowThreshold(ctx context.Context) ([]catalog.Ingredient, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	below := make([]catalog.Ingredient, 0)
	for _, ing := range all {
		if ing.IsBelowThreshold() {
			below = append(below, ing)
		}
	}
	return below, nil
}

// Save creates or updates an ingredient
func (r *IngredientRepository) Save(_ context.Context, ingredient *catalog.Ingredient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ingredients[ingredient.ID] = *ingredient
	return nil
}

// Ensure IngredientRepository implements the repository interface
var _ catalog.IngredientRepository = (*IngredientRepository)(nil)

// RecipeRepository implements catalog.RecipeRepository over the store
type RecipeRepository struct {
	store *Store
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository(store *Store) *RecipeRepository {
	return &RecipeRepository{store: store}
}

// FindByID finds a recipe with its ingredient lines
func (r *RecipeRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Recipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	recipe, ok := r.store.recipes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &recipe, nil
}

// FindAll lists all recipes sorted by name
func (r *RecipeRepository) FindAll(_ context.Context) ([]catalog.Recipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]catalog.Recipe, 0, len(r.store.recipes))
	for _, recipe := range r.store.recipes {
		all = append(all, recipe)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// Save creates or updates a recipe with its ingredient lines
func (r *RecipeRepository) Save(_ context.Context, recipe *catalog.Recipe) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.recipes[recipe.ID] = *recipe
	return nil
}

// Ensure RecipeRepository implements the repository interface
var _ catalog.RecipeRepository = (*RecipeRepository)(nil)

// ProductRepository implements catalog.ProductRepository over the store
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// FindByID finds a product with its add-ons
func (r *ProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	product, ok := r.store.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &product, nil
}

// FindActive lists all active products sorted by name
func (r *ProductRepository) FindActive(_ context.Context) ([]catalog.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	active := make([]catalog.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		if product.IsActive {
			active = append(active, product)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

// FindActiveByCategory lists active products in a category
func (r *ProductRepository) FindActiveByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	active, err := r.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]catalog.Product, 0, len(active))
	for _, product := range active {
		if product.Category == category {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

// Save creates or updates a product with its add-ons
func (r *ProductRepository) Save(_ context.Context, product *catalog.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[product.ID] = *product
	return nil
}

// Ensure ProductRepository implements the repository interface
var _ catalog.ProductRepository = (*ProductRepository)(nil)
