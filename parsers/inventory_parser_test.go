package parsers

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes the given cell values into an in-memory workbook and
// returns its bytes, mimicking what the reporting tool exports.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, cells := range rows {
		for c, v := range cells {
			if v == nil || v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("bad coordinates: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("failed to set cell %s: %v", cell, err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseCategoryProductLot(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"หมวด A"},
		{"P001", "P001", "Aspirin", "tab", "x", "12.50"},
		{"240126", "4292552277", "100"},
	})

	parsed, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(parsed.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(parsed.Products))
	}
	p := parsed.Products[0]
	if p.ProductCode != "P001" || p.Description != "Aspirin" {
		t.Errorf("unexpected product: %+v", p)
	}
	if p.ItemType != "หมวด A" {
		t.Errorf("expected item type from category marker, got %q", p.ItemType)
	}
	if p.UnitOfMeasure != "tab" || p.Cost != 12.50 {
		t.Errorf("unexpected unit/cost: %+v", p)
	}

	if len(parsed.Observations) != 1 {
		t.Fatalf("expected 1 lot observation, got %d", len(parsed.Observations))
	}
	lot := parsed.Observations[0]
	if lot.ProductCode != "P001" || lot.LotNo != "240126" {
		t.Errorf("unexpected lot: %+v", lot)
	}
	if lot.Expiry != nil {
		t.Errorf("sentinel expiry must decode to nil, got %v", *lot.Expiry)
	}
	if lot.Quantity != 100 {
		t.Errorf("expected quantity 100, got %g", lot.Quantity)
	}
}

func TestLookaheadDisambiguation(t *testing.T) {
	// The same single-column shape means "category" before a full product
	// line and "abbreviated product" before anything else.
	data := buildWorkbook(t, [][]interface{}{
		{"ยาเสพติด"},
		{"sp", "P002", "Morphine 10mg", "amp", "x", "85.00"},
		{"X001"},
		{"240126", "150624", "50"},
	})

	parsed, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(parsed.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(parsed.Products))
	}

	full := parsed.Products[0]
	if full.ProductCode != "P002" || full.ItemType != "ยาเสพติด" {
		t.Errorf("unexpected full product: %+v", full)
	}

	abbr := parsed.Products[1]
	if abbr.ProductCode != "X001" || abbr.SpareField != "X001" {
		t.Errorf("abbreviated product must use column A as both code and spare field: %+v", abbr)
	}
	if abbr.Description != "" || abbr.Cost != 0 {
		t.Errorf("abbreviated product must have empty description and zero cost: %+v", abbr)
	}
	if abbr.ItemType != "ยาเสพติด" {
		t.Errorf("item type must carry forward, got %q", abbr.ItemType)
	}

	if len(parsed.Observations) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(parsed.Observations))
	}
	lot := parsed.Observations[0]
	if lot.ProductCode != "X001" {
		t.Errorf("lot must attach to the abbreviated product, got %q", lot.ProductCode)
	}
	if lot.Expiry == nil || lot.Expiry.Format("2006-01-02") != "2024-06-15" {
		t.Errorf("expected expiry 2024-06-15, got %v", lot.Expiry)
	}
}

func TestTotalRowsDiscarded(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"sp", "P003", "Gauze", "pc", "x", "3.00"},
		{"240126", "150624", "20"},
		{"รวม"},
		{"", "รวม", "999"},
		{"รวมทั้งสิ้น", "a", "b", "c", "d", "9999"},
	})

	parsed, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed.Products) != 1 {
		t.Errorf("total rows must never create products, got %d", len(parsed.Products))
	}
	if len(parsed.Observations) != 1 {
		t.Errorf("total rows must never create lots, got %d", len(parsed.Observations))
	}
}

func TestHeaderStoreCodeAppliesToLots(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"สำหรับงวดสิ้นสุดวันที่ 30/06/2567", "", "", "", "", "", "คลังยา [ST01]"},
		{"sp", "P004", "Saline 0.9%", "bag", "x", "25.00"},
		{"100123", "150624", "40"},
	})

	parsed, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.DetailDate != "30/06/2567" {
		t.Errorf("expected detail date 30/06/2567, got %q", parsed.DetailDate)
	}
	if parsed.StoreCode != "ST01" {
		t.Errorf("expected store code ST01, got %q", parsed.StoreCode)
	}
	if len(parsed.Observations) != 1 || parsed.Observations[0].Store != "ST01" {
		t.Errorf("lot must carry the file-wide store code: %+v", parsed.Observations)
	}
	if len(parsed.Products) != 1 || parsed.Products[0].StoreLocation != "ST01" {
		t.Errorf("product must carry the file-wide store code: %+v", parsed.Products)
	}
}

func TestPerRowStoreFallback(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"sp", "P005", "Ibuprofen", "tab", "x", "2.00"},
		{"200501", "150624", "10", "", "", "", "[SUB2]"},
		{"200502", "150624", "15", "", "", "", "คลังย่อย 3"},
	})

	parsed, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed.Observations) != 2 {
		t.Fatalf("expected 2 lots, got %d", len(parsed.Observations))
	}
	if parsed.Observations[0].Store != "SUB2" {
		t.Errorf("expected bracket-stripped store SUB2, got %q", parsed.Observations[0].Store)
	}
	if parsed.Observations[1].Store != "คลังย่อย 3" {
		t.Errorf("expected raw store text, got %q", parsed.Observations[1].Store)
	}
}

func TestUnspecifiedLotLabel(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"sp", "P006", "Vitamin C", "tab", "x", "1.00"},
		{"-", "150624", "30"},
	})

	parsed, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed.Observations) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(parsed.Observations))
	}
	if parsed.Observations[0].LotNo != UnspecifiedLot {
		t.Errorf("placeholder lot must map to %q, got %q", UnspecifiedLot, parsed.Observations[0].LotNo)
	}
}

func TestEmptySheetIsNotAnError(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"สำหรับงวดสิ้นสุดวันที่ 30/06/2567"},
	})

	parsed, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("header-only sheet must parse successfully, got %v", err)
	}
	if len(parsed.Products) != 0 || len(parsed.Observations) != 0 {
		t.Errorf("expected empty result, got %d products / %d lots",
			len(parsed.Products), len(parsed.Observations))
	}
}

func TestNotASpreadsheet(t *testing.T) {
	_, err := ParseInventoryXLSX(strings.NewReader("this is not a workbook"))
	if err == nil {
		t.Fatal("expected an error for a non-spreadsheet buffer")
	}
	if !errors.Is(err, ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"หมวด B"},
		{"sp", "P007", "Amoxicillin", "cap", "x", "4.50"},
		{"300725", "150624", "60"},
		{"300726", "4292552277", "40"},
	})

	first, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := ParseInventoryXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same buffer twice produced different results")
	}
}

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		in   string
		kind CellKind
	}{
		{"", CellEmpty},
		{"   ", CellEmpty},
		{"text", CellText},
		{"123", CellNumber},
		{"1,250.50", CellNumber},
	}
	for _, tt := range tests {
		if got := normalizeCell(tt.in); got.Kind != tt.kind {
			t.Errorf("normalizeCell(%q).Kind = %v, want %v", tt.in, got.Kind, tt.kind)
		}
	}
}
