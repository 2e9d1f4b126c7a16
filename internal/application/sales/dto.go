package sales

import (
	"github.com/gipsy-office/backend/internal/domain/sales"
)

// SellResult is the structured outcome of a sale attempt. Exactly one of the
// two shapes is populated: a committed sale ID, or the full shortage list.
type SellResult struct {
	Committed   bool             `json:"committed"`
	SaleID      string           `json:"sale_id,omitempty"`
	TotalAmount int64            `json:"total_amount,omitempty"` // kopecks
	Shortages   []sales.Shortage `json:"shortages,omitempty"`
}

// UndoResult is the structured outcome of undoing the last sale
type UndoResult struct {
	OK     bool   `json:"ok"`
	SaleID string `json:"sale_id,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ConsumptionEntry is one line of a previewed consumption map
type ConsumptionEntry struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name,omitempty"`
	Required       float64 `json:"required"`
}

// PreviewResult is the read-only projection of what a cart would consume,
// with the shortages it would hit against current stock. The preview is not
// transactional; the authoritative check happens at commit time.
type PreviewResult struct {
	Consumption []ConsumptionEntry `json:"consumption"`
	Shortages   []sales.Shortage   `json:"shortages,omitempty"`
}

// SaleResponse is the read model of a recorded sale
type SaleResponse struct {
	ID          string           `json:"id"`
	CreatedAt   string           `json:"created_at"`
	Status      string           `json:"status"`
	Items       []sales.SaleItem `json:"items"`
	TotalAmount int64            `json:"total_amount"` // kopecks
}

func toSaleResponse(sale *sales.Sale) SaleResponse {
	return SaleResponse{
		ID:          sale.ID.String(),
		CreatedAt:   sale.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Status:      sale.Status.String(),
		Items:       sale.Items,
		TotalAmount: sale.TotalAmount.Kopecks(),
	}
}
