package report

// ProductSales is the per-product aggregate over a reporting period
type ProductSales struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
	Revenue     int64  `json:"revenue"` // kopecks
}

// IngredientUsage is the per-ingredient consumption over a reporting period
type IngredientUsage struct {
	IngredientID string  `json:"ingredient_id"`
	Consumed     float64 `json:"consumed"`
}

// Summary is the sales report for a date range
type Summary struct {
	From         string            `json:"from"`
	To           string            `json:"to"`
	SaleCount    int               `json:"sale_count"`
	TotalRevenue int64             `json:"total_revenue"` // kopecks
	ByProduct    []ProductSales    `json:"by_product"`
	ByIngredient []IngredientUsage `json:"by_ingredient"`
}
