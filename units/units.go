package units

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"medstock/parsers"
)

var internalMap map[string]string

// LoadUnitsFile reads UNITS.CSV (unit code, display name per row) into
// memory. The file is optional; without it unit codes are shown as-is.
func LoadUnitsFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadUnitsFile: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(parsers.SkipBOM(file))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	m := make(map[string]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("LoadUnitsFile: read %s: %w", path, err)
		}
		if len(record) < 2 {
			continue
		}
		m[record[0]] = record[1]
	}
	internalMap = m
	return m, nil
}

// ResolveName converts a unit code to its display name, falling back to the
// code itself.
func ResolveName(code string) string {
	if internalMap == nil {
		return code
	}
	if name, ok := internalMap[code]; ok {
		return name
	}
	return code
}

// GetUnitsMapHandler serves the full code-to-name map to the UI.
func GetUnitsMapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if internalMap == nil {
			json.NewEncoder(w).Encode(map[string]string{})
			return
		}
		json.NewEncoder(w).Encode(internalMap)
	}
}
