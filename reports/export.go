package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medstock/database"
	"medstock/model"
	"medstock/stores"
	"medstock/units"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"รหัสสินค้า", "ชื่อสินค้า", "หน่วยนับ", "ประเภท", "ล็อต", "วันหมดอายุ", "จำนวน", "คลัง", "ราคาทุน",
}

func exportRow(row model.LotStockRow) []string {
	return []string{
		row.ProductCode,
		row.Description,
		units.ResolveName(row.UnitOfMeasure),
		row.ItemType,
		row.LotNo,
		row.ExpiryDate,
		fmt.Sprintf("%.2f", row.Quantity),
		stores.ResolveName(row.StoreLocation),
		fmt.Sprintf("%.2f", row.Cost),
	}
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportLotsCSVHandler writes the filtered stock report as a UTF-8 BOM CSV
// so spreadsheet tools open Thai text correctly.
func ExportLotsCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := database.ListLots(db, stockFiltersFromQuery(r))
		if err != nil {
			http.Error(w, "Failed to get lots for export: "+err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
		buf.WriteString(strings.Join(exportHeader, ",") + "\r\n")
		for _, row := range rows {
			fields := exportRow(row)
			for i := range fields {
				fields[i] = quoteAll(fields[i])
			}
			buf.WriteString(strings.Join(fields, ",") + "\r\n")
		}

		filename := fmt.Sprintf("lot_stock_%s.csv", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

// ExportLotsExcelHandler writes the same report as an xlsx workbook.
func ExportLotsExcelHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := database.ListLots(db, stockFiltersFromQuery(r))
		if err != nil {
			http.Error(w, "Failed to get lots for export: "+err.Error(), http.StatusInternalServerError)
			return
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		for col, h := range exportHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for i, row := range rows {
			for col, v := range exportRow(row) {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		filename := fmt.Sprintf("lot_stock_%s.xlsx", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		if err := f.Write(w); err != nil {
			http.Error(w, "Failed to write workbook: "+err.Error(), http.StatusInternalServerError)
		}
	}
}
