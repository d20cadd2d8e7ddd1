package parsers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrFileFormat marks a buffer that cannot be read as a spreadsheet at all.
// Row-level noise never produces this; only an unreadable workbook does.
var ErrFileFormat = errors.New("file is not a readable spreadsheet")

type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one normalized scalar. Text keeps the original trimmed string even
// for numeric cells, so codes with leading zeros survive untouched.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Row is an ordered sequence of cells. Accessors treat columns past the
// populated width as empty, because exported sheets trim trailing blanks.
type Row []Cell

func (r Row) Cell(col int) Cell {
	if col < 0 || col >= len(r) {
		return Cell{Kind: CellEmpty}
	}
	return r[col]
}

func (r Row) Text(col int) string {
	return r.Cell(col).Text
}

func (r Row) Empty(col int) bool {
	return r.Cell(col).Kind == CellEmpty
}

// Float returns the cell's numeric value, falling back to parsing its text.
// Unparseable cells count as 0 rather than failing the row.
func (r Row) Float(col int) float64 {
	c := r.Cell(col)
	if c.Kind == CellNumber {
		return c.Number
	}
	f, _ := strconv.ParseFloat(strings.ReplaceAll(c.Text, ",", ""), 64)
	return f
}

// ReadGrid opens a spreadsheet buffer and flattens its first worksheet into
// normalized rows. Rich text arrives from excelize already concatenated to
// plain text, so normalization here is trim + numeric detection.
func ReadGrid(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook contains no worksheets", ErrFileFormat)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}

	grid := make([]Row, 0, len(raw))
	for _, cells := range raw {
		row := make(Row, len(cells))
		for i, v := range cells {
			row[i] = normalizeCell(v)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func normalizeCell(v string) Cell {
	s := strings.TrimSpace(v)
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	if n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return Cell{Kind: CellNumber, Text: s, Number: n}
	}
	return Cell{Kind: CellText, Text: s}
}
