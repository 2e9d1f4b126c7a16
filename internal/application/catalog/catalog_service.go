package catalog

import (
	"context"
	"sort"

	"github.com/gipsy-office/backend/internal/domain/catalog"
)

// Service is the read-only surface over the catalog. Products, recipes and
// add-ons are maintained by an external CRUD collaborator; the sale engine
// only ever reads them.
type Service struct {
	productRepo catalog.ProductRepository
	recipeRepo  catalog.RecipeRepository
}

// NewService creates a new catalog Service
func NewService(productRepo catalog.ProductRepository, recipeRepo catalog.RecipeRepository) *Service {
	return &Service{productRepo: productRepo, recipeRepo: recipeRepo}
}

// ListProducts returns all active products, optionally filtered by category
func (s *Service) ListProducts(ctx context.Context, category string) ([]ProductResponse, error) {
	var (
		products []catalog.Product
		err      error
	)
	if category != "" {
		products, err = s.productRepo.FindActiveByCategory(ctx, category)
	} else {
		products, err = s.productRepo.FindActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].Name < responses[j].Name })
	return responses, nil
}

// ListCategories returns the distinct categories of active products
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for i := range products {
		if !seen[products[i].Category] {
			seen[products[i].Category] = true
			categories = append(categories, products[i].Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// ListRecipes returns all recipes with their ingredient lines
func (s *Service) ListRecipes(ctx context.Context) ([]RecipeResponse, error) {
	recipes, err := s.recipeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, toRecipeResponse(&recipes[i]))
	}
	return responses, nil
}
