package reports

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"medstock/aggregation"
	"medstock/database"
	"medstock/model"

	"github.com/jmoiron/sqlx"
)

func stockFiltersFromQuery(r *http.Request) model.StockFilters {
	q := r.URL.Query()
	months, _ := strconv.Atoi(q.Get("expiringWithinMonths"))
	return model.StockFilters{
		Search:          q.Get("search"),
		Store:           q.Get("store"),
		ItemType:        q.Get("itemType"),
		ExpiringWithinM: months,
	}
}

// ListLotsHandler serves the lot stock report.
func ListLotsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := database.ListLots(db, stockFiltersFromQuery(r))
		if err != nil {
			http.Error(w, "Failed to list lots: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

// NearExpiryHandler serves the dashboard's expiring-soon list.
func NearExpiryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months, _ := strconv.Atoi(r.URL.Query().Get("months"))
		rows, err := aggregation.GetNearExpirySummary(db, months)
		if err != nil {
			http.Error(w, "Failed to get near-expiry lots: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

// StoreSummaryHandler serves the stock-by-store chart data.
func StoreSummaryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := aggregation.GetStoreStockSummary(db)
		if err != nil {
			http.Error(w, "Failed to summarize stock: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	}
}

// SalesSummaryHandler serves the daily sales chart. Defaults to the last 30
// days when no range is given.
func SalesSummaryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start := q.Get("start")
		end := q.Get("end")
		if end == "" {
			end = time.Now().Format("2006-01-02")
		}
		if start == "" {
			start = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
		}
		summaries, err := database.GetSalesDailySummary(db, start, end)
		if err != nil {
			http.Error(w, "Failed to summarize sales: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	}
}

// ImportBatchesHandler serves the upload history screen.
func ImportBatchesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		batches, err := database.ListImportBatches(db, limit)
		if err != nil {
			http.Error(w, "Failed to list import batches: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(batches)
	}
}
