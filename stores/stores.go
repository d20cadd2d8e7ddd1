package stores

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"
)

// The store master maps store location codes (the bracketed codes in the
// inventory export header) to display names, e.g. "ST01: คลังยาหลัก".
var storeMap map[string]string

// LoadStoresFile reads stores.yaml. The file is optional; unknown codes are
// displayed raw.
func LoadStoresFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadStoresFile: read %s: %w", path, err)
	}
	m := make(map[string]string)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("LoadStoresFile: parse %s: %w", path, err)
	}
	storeMap = m
	return m, nil
}

// ResolveName converts a store code to its display name, falling back to the
// code itself.
func ResolveName(code string) string {
	if storeMap == nil {
		return code
	}
	if name, ok := storeMap[code]; ok {
		return name
	}
	return code
}

// GetStoreMapHandler serves the full code-to-name map to the UI.
func GetStoreMapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if storeMap == nil {
			json.NewEncoder(w).Encode(map[string]string{})
			return
		}
		json.NewEncoder(w).Encode(storeMap)
	}
}
