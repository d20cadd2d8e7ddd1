package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	InventoryFolderPath string `json:"inventoryFolderPath"`
	SalesFolderPath     string `json:"salesFolderPath"`
	NearExpiryMonths    int    `json:"nearExpiryMonths"`
	PortalURL           string `json:"portalURL"`
	PortalUserID        string `json:"portalUserID"`
	PortalPassword      string `json:"portalPassword"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./medstock_config.json"

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Config{NearExpiryMonths: 6}
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = tempCfg

	if cfg.NearExpiryMonths == 0 {
		cfg.NearExpiryMonths = 6
	}

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if newCfg.NearExpiryMonths == 0 {
		newCfg.NearExpiryMonths = 6
	}

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
