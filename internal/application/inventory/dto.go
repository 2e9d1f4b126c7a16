package inventory

import (
	"github.com/gipsy-office/backend/internal/domain/catalog"
)

// IngredientResponse is the read model for one stocked ingredient
type IngredientResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Unit             string  `json:"unit"`
	StockQuantity    float64 `json:"stock_quantity"`
	Capacity         float64 `json:"capacity,omitempty"`
	ReorderThreshold float64 `json:"reorder_threshold,omitempty"`
	FillRatio        float64 `json:"fill_ratio"`
	Status           string  `json:"status"`
	BelowThreshold   bool    `json:"below_threshold"`
	UpdatedAt        string  `json:"updated_at"`
}

// toIngredientResponse maps an ingredient aggregate to its read model
func toIngredientResponse(ing *catalog.Ingredient) IngredientResponse {
	stock, _ := ing.StockQuantity.Float64()
	capacity, _ := ing.Capacity.Float64()
	threshold, _ := ing.ReorderThreshold.Float64()
	ratio, _ := ing.FillRatio().Float64()
	return IngredientResponse{
		ID:               ing.ID.String(),
		Name:             ing.Name,
		Unit:             ing.Unit,
		StockQuantity:    stock,
		Capacity:         capacity,
		ReorderThreshold: threshold,
		FillRatio:        ratio,
		Status:           string(ing.Status()),
		BelowThreshold:   ing.IsBelowThreshold(),
		UpdatedAt:        ing.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
