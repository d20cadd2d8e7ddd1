package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"medstock/aggregation"
	"medstock/database"
	"medstock/model"
	"medstock/parsers"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ImportResult is the per-file outcome of one inventory import.
type ImportResult struct {
	BatchID    string `json:"batchId"`
	DetailDate string `json:"detailDate"`
	Products   int    `json:"products"`
	Lots       int    `json:"lots"`
}

// UploadInventoryHandler accepts one or more inventory export workbooks in a
// single multipart request. Files are processed independently: a file that
// fails to parse is reported in its own result entry and never aborts its
// siblings.
func UploadInventoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Println("Received inventory upload request...")

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondJSONError(w, "File upload error: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		var allResults []map[string]interface{}
		successCount := 0
		failureCount := 0

		for _, fileHeader := range r.MultipartForm.File["file"] {
			log.Printf("Processing file: %s", fileHeader.Filename)
			fileResult := map[string]interface{}{"filename": fileHeader.Filename}

			file, openErr := fileHeader.Open()
			if openErr != nil {
				log.Printf("Failed to open uploaded file %s: %v", fileHeader.Filename, openErr)
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

			if archivePath, archiveErr := archiveInventoryFile(fileBytes, fileHeader.Filename); archiveErr != nil {
				log.Printf("WARN: Failed to archive inventory file: %v", archiveErr)
			} else if archivePath != "" {
				log.Printf("Archived inventory file to: %s", archivePath)
			}

			result, err := ImportInventoryStream(db, bytes.NewReader(fileBytes), fileHeader.Filename)
			if err != nil {
				log.Printf("Failed to process inventory file %s: %v", fileHeader.Filename, err)
				fileResult["error"] = fmt.Sprintf("Failed to process: %v", err)
				allResults = append(allResults, fileResult)
				failureCount++
				continue
			}

			log.Printf("Imported %d lots (%d products) from %s", result.Lots, result.Products, fileHeader.Filename)
			fileResult["success"] = true
			fileResult["batchId"] = result.BatchID
			fileResult["detailDate"] = result.DetailDate
			fileResult["products"] = result.Products
			fileResult["lots"] = result.Lots
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
		log.Println("Finished inventory upload request.")
	}
}

// ImportInventoryStream parses one workbook and persists its products and
// aggregated lots in a single transaction. A sheet with no data rows is a
// successful import of zero records ("no data found", not "upload failed");
// the batch row records it as empty.
func ImportInventoryStream(db *sqlx.DB, r io.Reader, filename string) (*ImportResult, error) {
	batchID := uuid.NewString()

	parsed, parseErr := parsers.ParseInventoryXLSX(r)
	if parseErr != nil {
		recordBatch(db, model.ImportBatch{
			BatchID:  batchID,
			Source:   model.BatchSourceInventory,
			Filename: filename,
			Status:   model.BatchStatusFailed,
			ErrorText: parseErr.Error(),
		})
		return nil, parseErr
	}

	lots := aggregation.AggregateLots(parsed.Products, parsed.Observations)

	tx, txErr := db.Beginx()
	if txErr != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", txErr)
	}
	defer tx.Rollback()

	seen := make(map[string]struct{}, len(parsed.Products))
	productCount := 0
	for _, draft := range parsed.Products {
		if _, ok := seen[draft.ProductCode]; ok {
			continue
		}
		seen[draft.ProductCode] = struct{}{}
		if _, err := database.FindOrCreateProduct(tx, draft); err != nil {
			return nil, fmt.Errorf("product upsert failed for %s: %w", draft.ProductCode, err)
		}
		productCount++
	}

	drafts := make(map[string]model.ProductDraft, len(parsed.Products))
	for _, draft := range parsed.Products {
		if _, ok := drafts[draft.ProductCode]; !ok {
			drafts[draft.ProductCode] = draft
		}
	}

	for _, lot := range lots {
		expiry := ""
		if lot.Expiry != nil {
			expiry = lot.Expiry.Format("2006-01-02")
		}
		if err := database.UpsertLot(tx, model.Lot{
			ProductCode:   lot.ProductCode,
			LotNo:         lot.LotNo,
			ExpiryDate:    expiry,
			Quantity:      lot.TotalQuantity,
			StoreLocation: lotStore(lot, drafts),
			BatchID:       batchID,
		}); err != nil {
			return nil, err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, fmt.Errorf("commit error: %w", commitErr)
	}

	status := model.BatchStatusSuccess
	if len(lots) == 0 {
		status = model.BatchStatusEmpty
	}
	recordBatch(db, model.ImportBatch{
		BatchID:     batchID,
		Source:      model.BatchSourceInventory,
		Filename:    filename,
		DetailDate:  parsed.DetailDate,
		Status:      status,
		RecordCount: len(lots),
	})

	return &ImportResult{
		BatchID:    batchID,
		DetailDate: parsed.DetailDate,
		Products:   productCount,
		Lots:       len(lots),
	}, nil
}

// lotStore picks the store code persisted with a lot: the file-wide store
// from the product draft, else the single observed store when the breakdown
// is unambiguous.
func lotStore(lot model.AggregatedLot, drafts map[string]model.ProductDraft) string {
	if draft, ok := drafts[lot.ProductCode]; ok && draft.StoreLocation != "" {
		return draft.StoreLocation
	}
	if len(lot.StoreBreakdown) == 1 {
		for store := range lot.StoreBreakdown {
			return store
		}
	}
	return ""
}

func recordBatch(db *sqlx.DB, batch model.ImportBatch) {
	if err := database.InsertImportBatch(db, batch); err != nil {
		log.Printf("WARN: Failed to record import batch %s: %v", batch.BatchID, err)
	}
}

func archiveInventoryFile(data []byte, filename string) (string, error) {
	archiveDir := "archive/inventory"
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(filename))
	savePath := filepath.Join(archiveDir, name)
	if _, err := os.Stat(savePath); err == nil {
		return "", nil
	}
	if err := os.WriteFile(savePath, data, 0644); err != nil {
		return "", err
	}
	return savePath, nil
}

func respondJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
