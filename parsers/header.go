package parsers

import (
	"regexp"
	"strings"
)

// The reporting tool prints the as-of date as free text in cell A1, prefixed
// by one of these labels. Three spellings have been seen in real exports, so
// all three are tried in order.
var detailDateLabels = []string{
	"สำหรับงวดสิ้นสุดวันที่",
	"สำหรับงวดสิ้นสุด ณ วันที่",
	"ประจำงวดสิ้นสุดวันที่",
}

// storeCol is the column the reporting tool uses for the store code, both in
// the sheet header and on individual lot rows (column G).
const storeCol = 6

var bracketRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// ExtractDetailDate pulls the reporting-period text out of the first row.
// Returns "" when no label matches; the caller treats that as "no detail
// date", not as an error.
func ExtractDetailDate(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	a := rows[0].Text(0)
	for _, label := range detailDateLabels {
		if strings.HasPrefix(a, label) {
			return strings.TrimSpace(strings.TrimPrefix(a, label))
		}
	}
	return ""
}

// ExtractStoreCode reads the bracketed store code from the first row's store
// column, e.g. "คลังยา [ST01]" -> "ST01". Returns "" when absent; lot rows
// then fall back to their own store column.
func ExtractStoreCode(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	return bracketContent(rows[0].Text(storeCol))
}

func bracketContent(s string) string {
	m := bracketRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// stripBrackets returns the bracket interior when present, otherwise the
// trimmed original text.
func stripBrackets(s string) string {
	if inner := bracketContent(s); inner != "" {
		return inner
	}
	return strings.TrimSpace(s)
}
