package aggregation

import (
	"fmt"
	"time"

	"medstock/database"
	"medstock/model"

	"github.com/jmoiron/sqlx"
)

// GetNearExpirySummary lists lots whose expiry falls within the given number
// of months from today, soonest first. Lots without an expiry never appear
// here; they are tracked on the main stock report instead.
func GetNearExpirySummary(conn *sqlx.DB, months int) ([]model.LotStockRow, error) {
	if months <= 0 {
		months = 6
	}
	cutoff := time.Now().AddDate(0, months, 0).Format("2006-01-02")
	rows, err := database.ListLotsExpiringBefore(conn, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query near-expiry lots: %w", err)
	}
	return rows, nil
}

// GetStoreStockSummary aggregates lot quantity and value per store location
// for the dashboard chart.
func GetStoreStockSummary(conn *sqlx.DB) ([]model.StoreStockSummary, error) {
	summaries, err := database.GetStoreStockSummaries(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stock by store: %w", err)
	}
	return summaries, nil
}
