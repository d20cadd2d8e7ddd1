package model

import "time"

// Product is a row of the products table. The natural key is ProductCode;
// everything else is descriptive data taken from the latest import.
type Product struct {
	ProductCode   string  `db:"product_code" json:"productCode"`
	SpareField    string  `db:"spare_field" json:"spareField"`
	Description   string  `db:"description" json:"description"`
	UnitOfMeasure string  `db:"unit_of_measure" json:"unitOfMeasure"`
	Cost          float64 `db:"cost" json:"cost"`
	StoreLocation string  `db:"store_location" json:"storeLocation"`
	ItemType      string  `db:"item_type" json:"itemType"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt"`
}

// ProductDraft is the in-progress product identity built while walking an
// inventory sheet. It stays "current" until the next product header row.
type ProductDraft struct {
	SpareField    string  `json:"spareField"`
	ProductCode   string  `json:"productCode"`
	Description   string  `json:"description"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	Cost          float64 `json:"cost"`
	StoreLocation string  `json:"storeLocation"`
	ItemType      string  `json:"itemType"`
}

// LotObservation is one raw lot row's contribution. Never mutated after the
// classifier emits it; duplicates for the same (product, lot, store) are
// merged later by the aggregator.
type LotObservation struct {
	ProductCode string     `json:"productCode"`
	LotNo       string     `json:"lotNo"`
	Expiry      *time.Time `json:"expiry"`
	Quantity    float64    `json:"quantity"`
	Store       string     `json:"store"`
}

// StoreQuantities keeps the individual observed quantities per store so the
// UI can show how a merged total was put together.
type StoreQuantities struct {
	Observed []float64 `json:"observed"`
	Total    float64   `json:"total"`
}

// AggregatedLot is the persistence-ready unit, keyed by (ProductCode, LotNo).
// TotalQuantity always equals the sum of every store's total.
type AggregatedLot struct {
	ProductCode    string                      `json:"productCode"`
	Description    string                      `json:"description"`
	LotNo          string                      `json:"lotNo"`
	Expiry         *time.Time                  `json:"expiry"`
	TotalQuantity  float64                     `json:"totalQuantity"`
	StoreBreakdown map[string]*StoreQuantities `json:"storeBreakdown"`
}

// ParsedInventoryFile is the output of one inventory sheet parse: file-level
// metadata plus the product drafts and lot observations in sheet order.
type ParsedInventoryFile struct {
	DetailDate   string           `json:"detailDate"`
	StoreCode    string           `json:"storeCode"`
	Products     []ProductDraft   `json:"products"`
	Observations []LotObservation `json:"observations"`
}

// Lot is a row of the lots table.
type Lot struct {
	ID            int64   `db:"id" json:"id"`
	ProductCode   string  `db:"product_code" json:"productCode"`
	LotNo         string  `db:"lot_no" json:"lotNo"`
	ExpiryDate    string  `db:"expiry_date" json:"expiryDate"`
	Quantity      float64 `db:"quantity" json:"quantity"`
	StoreLocation string  `db:"store_location" json:"storeLocation"`
	BatchID       string  `db:"batch_id" json:"batchId"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt"`
}

// LotStockRow is a lots row joined with its product, as shown on the stock
// report screen.
type LotStockRow struct {
	ProductCode   string  `db:"product_code" json:"productCode"`
	Description   string  `db:"description" json:"description"`
	UnitOfMeasure string  `db:"unit_of_measure" json:"unitOfMeasure"`
	ItemType      string  `db:"item_type" json:"itemType"`
	LotNo         string  `db:"lot_no" json:"lotNo"`
	ExpiryDate    string  `db:"expiry_date" json:"expiryDate"`
	Quantity      float64 `db:"quantity" json:"quantity"`
	StoreLocation string  `db:"store_location" json:"storeLocation"`
	Cost          float64 `db:"cost" json:"cost"`
}

// StockFilters narrows the lot stock report.
type StockFilters struct {
	Search          string
	Store           string
	ItemType        string
	ExpiringWithinM int
}

// StoreStockSummary is one bar of the stock-by-store dashboard chart.
type StoreStockSummary struct {
	StoreLocation string  `db:"store_location" json:"storeLocation"`
	ProductCount  int     `db:"product_count" json:"productCount"`
	TotalQuantity float64 `db:"total_quantity" json:"totalQuantity"`
	TotalValue    float64 `db:"total_value" json:"totalValue"`
}
