package sales

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"medstock/database"
	"medstock/model"
	"medstock/parsers"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UploadSalesHandler accepts daily-sales exports (CSV or xlsx), one or more
// per request, with the same per-file isolation as the inventory upload.
// Re-uploading a day replaces that day's records.
func UploadSalesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Println("Received sales upload request...")

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "File upload error: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		var allResults []map[string]interface{}
		successCount := 0
		failureCount := 0

		for _, fileHeader := range r.MultipartForm.File["file"] {
			log.Printf("Processing sales file: %s", fileHeader.Filename)
			fileResult := map[string]interface{}{"filename": fileHeader.Filename}

			file, openErr := fileHeader.Open()
			if openErr != nil {
				fileResult["error"] = fmt.Sprintf("Failed to open file: %v", openErr)
				allResults = append(allResults, fileResult)
				failureCount++
				continue
			}
			fileBytes, readErr := io.ReadAll(file)
			file.Close()
			if readErr != nil {
				fileResult["error"] = fmt.Sprintf("Failed to read file: %v", readErr)
				allResults = append(allResults, fileResult)
				failureCount++
				continue
			}

			inserted, err := ImportSalesStream(db, bytes.NewReader(fileBytes), fileHeader.Filename)
			if err != nil {
				log.Printf("Failed to process sales file %s: %v", fileHeader.Filename, err)
				fileResult["error"] = fmt.Sprintf("Failed to process: %v", err)
				allResults = append(allResults, fileResult)
				failureCount++
				continue
			}

			fileResult["success"] = true
			fileResult["records"] = inserted
			allResults = append(allResults, fileResult)
			successCount++
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":      fmt.Sprintf("Processed %d file(s): %d succeeded, %d failed.", successCount+failureCount, successCount, failureCount),
			"successCount": successCount,
			"failureCount": failureCount,
			"results":      allResults,
		})
		log.Println("Finished sales upload request.")
	}
}

// ImportSalesStream parses one sales export and replaces the affected days'
// records in a single transaction.
func ImportSalesStream(db *sqlx.DB, r io.Reader, filename string) (int, error) {
	batchID := uuid.NewString()

	records, parseErr := parsers.ParseSales(r, filename)
	if parseErr != nil {
		recordBatch(db, model.ImportBatch{
			BatchID:   batchID,
			Source:    model.BatchSourceSales,
			Filename:  filename,
			Status:    model.BatchStatusFailed,
			ErrorText: parseErr.Error(),
		})
		return 0, parseErr
	}

	tx, txErr := db.Beginx()
	if txErr != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", txErr)
	}
	defer tx.Rollback()

	inserted, err := database.ReplaceSalesRecords(tx, records, batchID)
	if err != nil {
		return 0, err
	}
	if commitErr := tx.Commit(); commitErr != nil {
		return 0, fmt.Errorf("commit error: %w", commitErr)
	}

	status := model.BatchStatusSuccess
	if inserted == 0 {
		status = model.BatchStatusEmpty
	}
	recordBatch(db, model.ImportBatch{
		BatchID:     batchID,
		Source:      model.BatchSourceSales,
		Filename:    filename,
		Status:      status,
		RecordCount: inserted,
	})
	return inserted, nil
}

func recordBatch(db *sqlx.DB, batch model.ImportBatch) {
	if err := database.InsertImportBatch(db, batch); err != nil {
		log.Printf("WARN: Failed to record import batch %s: %v", batch.BatchID, err)
	}
}
