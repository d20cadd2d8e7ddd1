package automation

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"medstock/config"
	"medstock/inventory"

	"github.com/jmoiron/sqlx"
)

// DownloadInventoryHandler downloads the current export from the reporting
// portal and runs it through the normal import path.
func DownloadInventoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg := config.GetConfig()
		if cfg.PortalUserID == "" || cfg.PortalPassword == "" {
			http.Error(w, "Portal credentials are not configured", http.StatusBadRequest)
			return
		}
		saveDir := cfg.InventoryFolderPath
		if saveDir == "" {
			saveDir = "downloads/inventory"
		}

		log.Println("Starting portal download...")
		savePath, err := DownloadInventoryExport(cfg.PortalURL, cfg.PortalUserID, cfg.PortalPassword, saveDir)
		if err != nil {
			log.Printf("Portal download failed: %v", err)
			http.Error(w, "Download failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		file, err := os.Open(savePath)
		if err != nil {
			http.Error(w, "Failed to open downloaded file: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer file.Close()

		result, err := inventory.ImportInventoryStream(db, file, savePath)
		if err != nil {
			log.Printf("Failed to import downloaded file %s: %v", savePath, err)
			http.Error(w, "Import failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("Downloaded and imported %d lots (%d products).", result.Lots, result.Products),
			"file":    savePath,
			"batchId": result.BatchID,
		})
	}
}
