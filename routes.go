package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"medstock/automation"
	"medstock/database"
	"medstock/inventory"
	"medstock/reports"
	"medstock/sales"
	"medstock/stores"
	"medstock/units"

	"github.com/jmoiron/sqlx"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/inventory/upload", inventory.UploadInventoryHandler(dbConn))
	mux.HandleFunc("/api/sales/upload", sales.UploadSalesHandler(dbConn))

	mux.HandleFunc("/api/lots", reports.ListLotsHandler(dbConn))
	mux.HandleFunc("/api/lots/export/csv", reports.ExportLotsCSVHandler(dbConn))
	mux.HandleFunc("/api/lots/export/xlsx", reports.ExportLotsExcelHandler(dbConn))

	mux.HandleFunc("/api/dashboard/near_expiry", reports.NearExpiryHandler(dbConn))
	mux.HandleFunc("/api/dashboard/store_summary", reports.StoreSummaryHandler(dbConn))
	mux.HandleFunc("/api/dashboard/sales_summary", reports.SalesSummaryHandler(dbConn))

	mux.HandleFunc("/api/imports", reports.ImportBatchesHandler(dbConn))

	mux.HandleFunc("/api/products/search", func(w http.ResponseWriter, r *http.Request) {
		search := strings.TrimSpace(r.URL.Query().Get("q"))
		products, err := database.SearchProducts(dbConn, search, 100)
		if err != nil {
			http.Error(w, "Failed to search products", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	})

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/units/map", units.GetUnitsMapHandler())
	mux.HandleFunc("/api/stores/map", stores.GetStoreMapHandler())

	mux.HandleFunc("/api/automation/portal/download", automation.DownloadInventoryHandler(dbConn))
}
