package database

import (
	"fmt"

	"medstock/model"

	"github.com/jmoiron/sqlx"
)

// InsertImportBatch records the outcome of one processed upload file.
// Failed files are recorded too, so the history screen can show why an
// upload was rejected.
func InsertImportBatch(conn *sqlx.DB, batch model.ImportBatch) error {
	const q = `
		INSERT INTO import_batches (batch_id, source, filename, detail_date, status, record_count, error_text)
		VALUES (:batch_id, :source, :filename, :detail_date, :status, :record_count, :error_text)`
	if _, err := conn.NamedExec(q, batch); err != nil {
		return fmt.Errorf("failed to insert import batch %s: %w", batch.BatchID, err)
	}
	return nil
}

// ListImportBatches returns the most recent batches, newest first.
func ListImportBatches(conn *sqlx.DB, limit int) ([]model.ImportBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	var batches []model.ImportBatch
	err := conn.Select(&batches, `
		SELECT * FROM import_batches
		ORDER BY created_at DESC, batch_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import batches: %w", err)
	}
	return batches, nil
}
