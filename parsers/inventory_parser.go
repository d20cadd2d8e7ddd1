package parsers

import (
	"io"
	"strings"

	"medstock/model"
)

// Inventory exports carry no header row; meaning is inferred from which of
// the first six columns are populated, plus one row of lookahead.
const (
	colSpare       = 0 // product rows: spare field / lot rows: lot number
	colProductCode = 1 // product rows: product code / lot rows: expiry
	colDescription = 2 // product rows: description / lot rows: quantity
	colUnit        = 3
	colCost        = 5
)

// Summary rows are discarded outright. The grand-total marker appears inside
// a longer phrase; the bare marker matches a cell exactly.
const (
	grandTotalMarker = "รวมทั้งสิ้น"
	bareTotalMarker  = "รวม"
)

// UnspecifiedLot is the canonical label stored when a lot row carries the
// "no lot" placeholder or nothing at all.
const UnspecifiedLot = "ไม่ระบุ"

const unspecifiedLotPlaceholder = "-"

type RowKind int

const (
	RowUnclassified RowKind = iota
	RowSummary
	RowCategoryMarker
	RowProductHeader
	RowLotLine
)

// RowEvent is the classifier's tagged verdict for one row. Product is set
// for RowProductHeader, Lot for RowLotLine; both nil otherwise.
type RowEvent struct {
	Kind    RowKind
	Product *model.ProductDraft
	Lot     *model.LotObservation
}

// parseContext is the state carried across rows within a single parse. One
// context per invocation; nothing here is shared between files.
type parseContext struct {
	currentItemType string
	currentProduct  *model.ProductDraft
	storeCode       string
}

// ParseInventoryXLSX runs the whole pipeline over one spreadsheet buffer:
// grid read, header extraction, then row-by-row classification with one-row
// lookahead. A sheet that yields zero products is a successful parse with an
// empty result, not an error.
func ParseInventoryXLSX(r io.Reader) (*model.ParsedInventoryFile, error) {
	rows, err := ReadGrid(r)
	if err != nil {
		return nil, err
	}

	result := &model.ParsedInventoryFile{
		DetailDate: ExtractDetailDate(rows),
		StoreCode:  ExtractStoreCode(rows),
	}
	ctx := &parseContext{storeCode: result.StoreCode}

	// A first row that yielded file metadata is the report header, not data;
	// feeding it to the classifier would turn the label text into a
	// degenerate product.
	start := 0
	if result.DetailDate != "" || result.StoreCode != "" {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		var next Row
		if i+1 < len(rows) {
			next = rows[i+1]
		}
		switch ev := classifyRow(ctx, rows[i], next); ev.Kind {
		case RowProductHeader:
			result.Products = append(result.Products, *ev.Product)
		case RowLotLine:
			result.Observations = append(result.Observations, *ev.Lot)
		}
	}
	return result, nil
}

// classifyRow decides what one row means given the carried context and the
// row that follows it. Rules are tried in priority order; rows matching
// nothing are discarded without error because real exports contain stray
// formatting rows.
func classifyRow(ctx *parseContext, row, next Row) RowEvent {
	if isSummaryRow(row) {
		return RowEvent{Kind: RowSummary}
	}

	// A row with only column A populated is either a category marker or a
	// degenerate one-field product. The shapes are identical; the only
	// reliable signal is whether a full product line follows.
	if !row.Empty(colSpare) && columnsEmpty(row, colProductCode, colCost) {
		if isFullProductRow(next) {
			ctx.currentItemType = row.Text(colSpare)
			return RowEvent{Kind: RowCategoryMarker}
		}
		draft := &model.ProductDraft{
			SpareField:    row.Text(colSpare),
			ProductCode:   row.Text(colSpare),
			StoreLocation: ctx.storeCode,
			ItemType:      ctx.currentItemType,
		}
		ctx.currentProduct = draft
		return RowEvent{Kind: RowProductHeader, Product: draft}
	}

	if isFullProductRow(row) {
		draft := &model.ProductDraft{
			SpareField:    row.Text(colSpare),
			ProductCode:   row.Text(colProductCode),
			Description:   row.Text(colDescription),
			UnitOfMeasure: row.Text(colUnit),
			Cost:          row.Float(colCost),
			StoreLocation: ctx.storeCode,
			ItemType:      ctx.currentItemType,
		}
		ctx.currentProduct = draft
		return RowEvent{Kind: RowProductHeader, Product: draft}
	}

	if ctx.currentProduct != nil && !row.Empty(colDescription) && !isFullProductRow(row) {
		store := ctx.storeCode
		if store == "" {
			store = stripBrackets(row.Text(storeCol))
		}
		lot := &model.LotObservation{
			ProductCode: ctx.currentProduct.ProductCode,
			LotNo:       decodeLotNo(row.Text(colSpare)),
			Expiry:      DecodeExpiry(row.Text(colProductCode)),
			Quantity:    row.Float(colDescription),
			Store:       store,
		}
		return RowEvent{Kind: RowLotLine, Lot: lot}
	}

	return RowEvent{Kind: RowUnclassified}
}

func isSummaryRow(row Row) bool {
	a := row.Text(0)
	if strings.Contains(strings.ToLower(a), strings.ToLower(grandTotalMarker)) {
		return true
	}
	return a == bareTotalMarker || row.Text(1) == bareTotalMarker
}

// isFullProductRow reports whether all six leading columns are populated.
func isFullProductRow(row Row) bool {
	if row == nil {
		return false
	}
	for col := colSpare; col <= colCost; col++ {
		if row.Empty(col) {
			return false
		}
	}
	return true
}

// columnsEmpty reports whether every column in [from, to] is empty.
func columnsEmpty(row Row, from, to int) bool {
	for col := from; col <= to; col++ {
		if !row.Empty(col) {
			return false
		}
	}
	return true
}

// decodeLotNo normalizes a raw lot cell. 6-digit strings pass through
// verbatim, as does any other non-empty text; the placeholder and blank
// cells map to the canonical unspecified label.
func decodeLotNo(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == unspecifiedLotPlaceholder {
		return UnspecifiedLot
	}
	return s
}
