package database

import (
	"database/sql"
	"fmt"

	"medstock/model"

	"github.com/jmoiron/sqlx"
)

// FindOrCreateProduct looks a product up by its natural key and inserts it
// from the draft when missing. A found product gets its descriptive fields
// refreshed when the draft carries a fuller description, because abbreviated
// header rows produce drafts with the code only.
func FindOrCreateProduct(tx *sqlx.Tx, draft model.ProductDraft) (*model.Product, error) {
	var existing model.Product
	err := tx.Get(&existing, "SELECT * FROM products WHERE product_code = ?", draft.ProductCode)
	if err == nil {
		if draft.Description != "" && draft.Description != existing.Description {
			return updateProductFromDraft(tx, draft)
		}
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query products for code %s: %w", draft.ProductCode, err)
	}

	const q = `
		INSERT INTO products (product_code, spare_field, description, unit_of_measure, cost, store_location, item_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.Exec(q, draft.ProductCode, draft.SpareField, draft.Description,
		draft.UnitOfMeasure, draft.Cost, draft.StoreLocation, draft.ItemType); err != nil {
		return nil, fmt.Errorf("failed to insert product %s: %w", draft.ProductCode, err)
	}

	var created model.Product
	if err := tx.Get(&created, "SELECT * FROM products WHERE product_code = ?", draft.ProductCode); err != nil {
		return nil, fmt.Errorf("failed to re-fetch product %s after insert: %w", draft.ProductCode, err)
	}
	return &created, nil
}

func updateProductFromDraft(tx *sqlx.Tx, draft model.ProductDraft) (*model.Product, error) {
	const q = `
		UPDATE products
		SET spare_field = ?, description = ?, unit_of_measure = ?, cost = ?,
		    store_location = ?, item_type = ?, updated_at = datetime('now', 'localtime')
		WHERE product_code = ?`
	if _, err := tx.Exec(q, draft.SpareField, draft.Description, draft.UnitOfMeasure,
		draft.Cost, draft.StoreLocation, draft.ItemType, draft.ProductCode); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", draft.ProductCode, err)
	}
	var updated model.Product
	if err := tx.Get(&updated, "SELECT * FROM products WHERE product_code = ?", draft.ProductCode); err != nil {
		return nil, fmt.Errorf("failed to re-fetch product %s after update: %w", draft.ProductCode, err)
	}
	return &updated, nil
}

// SearchProducts returns products whose code or description contains the
// search text, for the product lookup modal.
func SearchProducts(conn *sqlx.DB, search string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	var products []model.Product
	term := "%" + search + "%"
	err := conn.Select(&products, `
		SELECT * FROM products
		WHERE product_code LIKE ? OR description LIKE ?
		ORDER BY product_code
		LIMIT ?`, term, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}
