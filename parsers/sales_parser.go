package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"medstock/model"
)

// Unlike the inventory export, daily-sales files carry a real header row, so
// columns are located by name.
const (
	salesColDate        = "วันที่"
	salesColProductCode = "รหัสสินค้า"
	salesColDescription = "ชื่อสินค้า"
	salesColQuantity    = "จำนวน"
	salesColAmount      = "มูลค่า"
)

// ParseSales dispatches on the file extension: the daily-sales system
// exports xlsx from its web screen and windows-874 CSV from its legacy
// batch job.
func ParseSales(r io.Reader, filename string) ([]model.ParsedSalesRecord, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return ParseSalesXLSX(r)
	}
	return ParseSalesCSV(r)
}

// ParseSalesCSV parses the legacy CSV export. Rows with a missing product
// code or a non-positive quantity are skipped with a warning, never fatal.
func ParseSalesCSV(r io.Reader) ([]model.ParsedSalesRecord, error) {
	reader := csv.NewReader(DecodeLegacyText(SkipBOM(r)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("sales CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sales CSV header: %w", err)
	}

	colIndex, err := headerIndex(header, []string{salesColDate, salesColProductCode, salesColQuantity})
	if err != nil {
		return nil, err
	}

	var records []model.ParsedSalesRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: sales CSV line %d read error (skipped): %v", line, err)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		parsed, ok := buildSalesRecord(get)
		if !ok {
			continue
		}
		records = append(records, parsed)
	}
	return records, nil
}

// ParseSalesXLSX parses the web export, anchoring on the same header names
// in the first worksheet row.
func ParseSalesXLSX(r io.Reader) ([]model.ParsedSalesRecord, error) {
	rows, err := ReadGrid(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sales sheet is empty")
	}

	header := make([]string, len(rows[0]))
	for i := range rows[0] {
		header[i] = rows[0].Text(i)
	}
	colIndex, err := headerIndex(header, []string{salesColDate, salesColProductCode, salesColQuantity})
	if err != nil {
		return nil, err
	}

	var records []model.ParsedSalesRecord
	for _, row := range rows[1:] {
		get := func(key string) string {
			if idx, ok := colIndex[key]; ok {
				return row.Text(idx)
			}
			return ""
		}
		parsed, ok := buildSalesRecord(get)
		if !ok {
			continue
		}
		records = append(records, parsed)
	}
	return records, nil
}

func buildSalesRecord(get func(string) string) (model.ParsedSalesRecord, bool) {
	qty, _ := strconv.ParseFloat(strings.ReplaceAll(get(salesColQuantity), ",", ""), 64)
	code := get(salesColProductCode)
	if code == "" || qty <= 0 {
		return model.ParsedSalesRecord{}, false
	}
	amount, _ := strconv.ParseFloat(strings.ReplaceAll(get(salesColAmount), ",", ""), 64)
	return model.ParsedSalesRecord{
		SaleDate:    get(salesColDate),
		ProductCode: code,
		Description: get(salesColDescription),
		Quantity:    qty,
		Amount:      amount,
	}, true
}
