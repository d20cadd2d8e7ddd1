package database

import (
	"fmt"
	"time"

	"medstock/model"

	"github.com/jmoiron/sqlx"
)

// UpsertLot inserts or replaces a lot keyed by (product_code, lot_no). Two
// uploads can race on the same key, so the conflict clause carries the whole
// payload instead of relying on read-then-write.
func UpsertLot(tx *sqlx.Tx, lot model.Lot) error {
	const q = `
		INSERT INTO lots (product_code, lot_no, expiry_date, quantity, store_location, batch_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now', 'localtime'))
		ON CONFLICT(product_code, lot_no) DO UPDATE SET
			expiry_date = excluded.expiry_date,
			quantity = excluded.quantity,
			store_location = excluded.store_location,
			batch_id = excluded.batch_id,
			updated_at = excluded.updated_at`
	if _, err := tx.Exec(q, lot.ProductCode, lot.LotNo, lot.ExpiryDate,
		lot.Quantity, lot.StoreLocation, lot.BatchID); err != nil {
		return fmt.Errorf("failed to upsert lot %s/%s: %w", lot.ProductCode, lot.LotNo, err)
	}
	return nil
}

// ListLots runs the stock report query. Missing expiry dates sort last.
func ListLots(conn *sqlx.DB, filters model.StockFilters) ([]model.LotStockRow, error) {
	query := `
		SELECT l.product_code, p.description, p.unit_of_measure, p.item_type, p.cost,
		       l.lot_no, l.expiry_date, l.quantity, l.store_location
		FROM lots l
		JOIN products p ON p.product_code = l.product_code
		WHERE 1=1`
	var args []interface{}

	if filters.Search != "" {
		query += " AND (l.product_code LIKE ? OR p.description LIKE ? OR l.lot_no LIKE ?)"
		term := "%" + filters.Search + "%"
		args = append(args, term, term, term)
	}
	if filters.Store != "" {
		query += " AND l.store_location = ?"
		args = append(args, filters.Store)
	}
	if filters.ItemType != "" {
		query += " AND p.item_type = ?"
		args = append(args, filters.ItemType)
	}
	if filters.ExpiringWithinM > 0 {
		cutoff := time.Now().AddDate(0, filters.ExpiringWithinM, 0).Format("2006-01-02")
		query += " AND l.expiry_date != '' AND l.expiry_date <= ?"
		args = append(args, cutoff)
	}
	query += ` ORDER BY l.product_code, CASE WHEN l.expiry_date = '' THEN 1 ELSE 0 END, l.expiry_date`

	var rows []model.LotStockRow
	if err := conn.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	return rows, nil
}

// ListLotsExpiringBefore returns dated lots expiring on or before cutoff
// (YYYY-MM-DD), soonest first.
func ListLotsExpiringBefore(conn *sqlx.DB, cutoff string) ([]model.LotStockRow, error) {
	var rows []model.LotStockRow
	err := conn.Select(&rows, `
		SELECT l.product_code, p.description, p.unit_of_measure, p.item_type, p.cost,
		       l.lot_no, l.expiry_date, l.quantity, l.store_location
		FROM lots l
		JOIN products p ON p.product_code = l.product_code
		WHERE l.expiry_date != '' AND l.expiry_date <= ?
		ORDER BY l.expiry_date, l.product_code`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list lots expiring before %s: %w", cutoff, err)
	}
	return rows, nil
}

// GetStoreStockSummaries aggregates quantity and cost value per store.
func GetStoreStockSummaries(conn *sqlx.DB) ([]model.StoreStockSummary, error) {
	var summaries []model.StoreStockSummary
	err := conn.Select(&summaries, `
		SELECT l.store_location,
		       COUNT(DISTINCT l.product_code) AS product_count,
		       SUM(l.quantity) AS total_quantity,
		       SUM(l.quantity * p.cost) AS total_value
		FROM lots l
		JOIN products p ON p.product_code = l.product_code
		GROUP BY l.store_location
		ORDER BY l.store_location`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize stock by store: %w", err)
	}
	return summaries, nil
}
