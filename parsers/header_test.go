package parsers

import "testing"

func textRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = normalizeCell(v)
	}
	return row
}

func TestExtractDetailDateVariants(t *testing.T) {
	tests := []struct {
		name  string
		cellA string
		want  string
	}{
		{"variant one", "สำหรับงวดสิ้นสุดวันที่ 30/06/2567", "30/06/2567"},
		{"variant two", "สำหรับงวดสิ้นสุด ณ วันที่ 30/06/2567", "30/06/2567"},
		{"variant three", "ประจำงวดสิ้นสุดวันที่ 30 มิถุนายน 2567", "30 มิถุนายน 2567"},
		{"no label", "รายงานสินค้าคงคลัง", ""},
		{"empty first cell", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []Row{textRow(tt.cellA)}
			if got := ExtractDetailDate(rows); got != tt.want {
				t.Errorf("ExtractDetailDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDetailDateNoRows(t *testing.T) {
	if got := ExtractDetailDate(nil); got != "" {
		t.Errorf("expected empty detail date for empty sheet, got %q", got)
	}
}

func TestExtractStoreCode(t *testing.T) {
	rows := []Row{textRow("header", "", "", "", "", "", "คลังยา [ST01]")}
	if got := ExtractStoreCode(rows); got != "ST01" {
		t.Errorf("ExtractStoreCode = %q, want ST01", got)
	}
}

func TestExtractStoreCodeAbsent(t *testing.T) {
	rows := []Row{textRow("header", "", "", "", "", "", "คลังยาหลัก")}
	if got := ExtractStoreCode(rows); got != "" {
		t.Errorf("expected empty store code without brackets, got %q", got)
	}
}

func TestStripBrackets(t *testing.T) {
	if got := stripBrackets("คลังย่อย [SUB2]"); got != "SUB2" {
		t.Errorf("stripBrackets = %q, want SUB2", got)
	}
	if got := stripBrackets("  SUB3  "); got != "SUB3" {
		t.Errorf("stripBrackets without brackets = %q, want SUB3", got)
	}
}
