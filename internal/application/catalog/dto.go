package catalog

import (
	"github.com/gipsy-office/backend/internal/domain/catalog"
)

// AddOnResponse is the read model for one product add-on
type AddOnResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"` // kopecks
}

// ProductResponse is the read model for one sellable product
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	BasePrice int64           `json:"base_price"` // kopecks
	Volumes   []int           `json:"volumes"`
	RecipeID  string          `json:"recipe_id,omitempty"`
	AddOns    []AddOnResponse `json:"addons,omitempty"`
}

// RecipeIngredientResponse is one line of a recipe read model
type RecipeIngredientResponse struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// RecipeResponse is the read model for one recipe
type RecipeResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	BaseVolumeML int                        `json:"base_volume_ml"`
	Ingredients  []RecipeIngredientResponse `json:"ingredients"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Category:  p.Category,
		BasePrice: p.BasePrice.Kopecks(),
		Volumes:   p.Volumes,
	}
	if p.RecipeID != nil {
		resp.RecipeID = p.RecipeID.String()
	}
	for _, a := range p.AddOns {
		resp.AddOns = append(resp.AddOns, AddOnResponse{
			Code:       a.Code,
			Name:       a.Name,
			PriceDelta: a.PriceDelta.Kopecks(),
		})
	}
	return resp
}

func toRecipeResponse(r *catalog.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		BaseVolumeML: r.BaseVolumeML,
		Ingredients:  make([]RecipeIngredientResponse, 0, len(r.Ingredients)),
	}
	for _, line := range r.Ingredients {
		qty, _ := line.Quantity.Float64()
		resp.Ingredients = append(resp.Ingredients, RecipeIngredientResponse{
			IngredientID: line.IngredientID.String(),
			Quantity:     qty,
		})
	}
	return resp
}
