package model

// ParsedSalesRecord is one row of a daily-sales export after header-anchored
// parsing. SaleDate is kept as the export's own YYYY-MM-DD text.
type ParsedSalesRecord struct {
	SaleDate    string
	ProductCode string
	Description string
	Quantity    float64
	Amount      float64
}

// SalesRecord is a row of the sales_records table.
type SalesRecord struct {
	ID          int64   `db:"id" json:"id"`
	SaleDate    string  `db:"sale_date" json:"saleDate"`
	ProductCode string  `db:"product_code" json:"productCode"`
	Description string  `db:"description" json:"description"`
	Quantity    float64 `db:"quantity" json:"quantity"`
	Amount      float64 `db:"amount" json:"amount"`
	BatchID     string  `db:"batch_id" json:"batchId"`
}

// SalesDailySummary is one point of the dashboard sales chart.
type SalesDailySummary struct {
	SaleDate    string  `db:"sale_date" json:"saleDate"`
	TotalAmount float64 `db:"total_amount" json:"totalAmount"`
	LineCount   int     `db:"line_count" json:"lineCount"`
}
