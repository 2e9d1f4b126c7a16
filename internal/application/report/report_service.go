package report

import (
	"context"
	"sort"
	"time"

	"github.com/gipsy-office/backend/internal/domain/sales"
	"go.uber.org/zap"
)

// Service aggregates recorded sales into per-product and per-ingredient
// summaries for a date range. Undone sales are excluded: their ledger effect
// was compensated, so counting them would overstate both revenue and usage.
type Service struct {
	saleRepo sales.SaleRepository
	log      *zap.Logger
}

// NewService creates a new report Service
func NewService(saleRepo sales.SaleRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{saleRepo: saleRepo, log: log}
}

// Summarize aggregates sales in [from, to) by product and by ingredient
func (s *Service) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	records, err := s.saleRepo.FindBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*ProductSales)
	byIngredient := make(map[string]float64)
	var totalRevenue int64
	counted := 0

	for i := range records {
		sale := &records[i]
		if sale.IsUndone() {
			continue
		}
		counted++
		totalRevenue += sale.TotalAmount.Kopecks()

		for _, item := range sale.Items {
			key := item.ProductID.String()
			ps := byProduct[key]
			if ps == nil {
				ps = &ProductSales{ProductID: key, ProductName: item.ProductName}
				byProduct[key] = ps
			}
			ps.UnitsSold += item.Quantity
			ps.Revenue += item.PriceTotal.Kopecks()
		}

		// The recorded delta is negative; consumption is its magnitude.
		for id, delta := range sale.InventoryDelta {
			qty, _ := delta.Neg().Float64()
			byIngredient[id.String()] += qty
		}
	}

	summary := &Summary{
		From:         from.Format(time.RFC3339),
		To:           to.Format(time.RFC3339),
		SaleCount:    counted,
		TotalRevenue: totalRevenue,
		ByProduct:    make([]ProductSales, 0, len(byProduct)),
		ByIngredient: make([]IngredientUsage, 0, len(byIngredient)),
	}
	for _, ps := range byProduct {
		summary.ByProduct = append(summary.ByProduct, *ps)
	}
	for id, qty := range byIngredient {
		summary.ByIngredient = append(summary.ByIngredient, IngredientUsage{IngredientID: id, Consumed: qty})
	}

	sort.Slice(summary.ByProduct, func(i, j int) bool {
		if summary.ByProduct[i].UnitsSold != summary.ByProduct[j].UnitsSold {
			return summary.ByProduct[i].UnitsSold > summary.ByProduct[j].UnitsSold
		}
		return summary.ByProduct[i].ProductID < summary.ByProduct[j].ProductID
	})
	sort.Slice(summary.ByIngredient, func(i, j int) bool {
		if summary.ByIngredient[i].Consumed != summary.ByIngredient[j].Consumed {
			return summary.ByIngredient[i].Consumed > summary.ByIngredient[j].Consumed
		}
		return summary.ByIngredient[i].IngredientID < summary.ByIngredient[j].IngredientID
	})

	return summary, nil
}
