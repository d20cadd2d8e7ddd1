package database

import (
	"fmt"

	"medstock/model"

	"github.com/jmoiron/sqlx"
)

// ReplaceSalesRecords deletes any previously imported rows for the sale
// dates present in the batch, then inserts the new rows. Re-uploading a
// day's export is the normal correction path, not an error.
func ReplaceSalesRecords(tx *sqlx.Tx, records []model.ParsedSalesRecord, batchID string) (int, error) {
	dates := make(map[string]struct{})
	for _, rec := range records {
		if rec.SaleDate != "" {
			dates[rec.SaleDate] = struct{}{}
		}
	}
	for date := range dates {
		if _, err := tx.Exec("DELETE FROM sales_records WHERE sale_date = ?", date); err != nil {
			return 0, fmt.Errorf("failed to clear sales for %s: %w", date, err)
		}
	}

	const q = `
		INSERT INTO sales_records (sale_date, product_code, description, quantity, amount, batch_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, rec := range records {
		if _, err := tx.Exec(q, rec.SaleDate, rec.ProductCode, rec.Description,
			rec.Quantity, rec.Amount, batchID); err != nil {
			return 0, fmt.Errorf("failed to insert sales record for %s: %w", rec.ProductCode, err)
		}
	}
	return len(records), nil
}

// GetSalesDailySummary sums sales per day within [start, end], both
// YYYY-MM-DD inclusive.
func GetSalesDailySummary(conn *sqlx.DB, start, end string) ([]model.SalesDailySummary, error) {
	var summaries []model.SalesDailySummary
	err := conn.Select(&summaries, `
		SELECT sale_date, SUM(amount) AS total_amount, COUNT(*) AS line_count
		FROM sales_records
		WHERE sale_date >= ? AND sale_date <= ?
		GROUP BY sale_date
		ORDER BY sale_date`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales: %w", err)
	}
	return summaries, nil
}
