package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// AppConfig holds all kiosk configuration
type AppConfig struct {
	// Store identity printed on the receipt header
	Store StoreConfig `json:"store"`

	// Thermal printer endpoint
	Printer PrinterConfig `json:"printer"`

	// Order number strategy
	OrderNumber OrderNumberConfig `json:"order_number"`

	// Remote order system endpoint
	OrderAPI OrderAPIConfig `json:"order_api"`

	// Catalog data files
	Catalog CatalogConfig `json:"catalog"`

	// Screen server settings
	Screen ScreenConfig `json:"screen"`

	// Tax rate as a decimal fraction, e.g. "0.10"
	TaxRate string `json:"tax_rate"`

	// Directory for logs and the local order archive
	DataPath string `json:"data_path"`
}

// StoreConfig holds the receipt header lines
type StoreConfig struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Phone    string `json:"phone"`
}

// PrinterConfig holds printer connection settings
type PrinterConfig struct {
	Type           string `json:"type"` // "network" or "file"
	Host           string `json:"host"`
	Port           int    `json:"port"`
	FilePath       string `json:"file_path"` // used when Type is "file"
	TimeoutSeconds int    `json:"timeout_seconds"`
	ReceiptQR      bool   `json:"receipt_qr"` // append an order-number QR before the cut
}

// OrderNumberConfig selects how order numbers are issued
type OrderNumberConfig struct {
	Mode     string `json:"mode"` // "local" or "remote"
	FilePath string `json:"file_path"`
}

// OrderAPIConfig holds the remote order system endpoint
type OrderAPIConfig struct {
	URL              string `json:"url"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	NotifyWithNumber bool   `json:"notify_with_number"` // send orderNumber=<n> instead of instruction=completeOrder
}

// CatalogConfig holds the catalog data file paths
type CatalogConfig struct {
	ItemsPath          string `json:"items_path"`
	ModifierPath       string `json:"modifier_path"`
	ModifierDetailPath string `json:"modifier_detail_path"`
}

// ScreenConfig holds the kiosk screen server settings
type ScreenConfig struct {
	Port int `json:"port"`
}

// TaxRateDecimal parses the configured tax rate. A missing or malformed
// value falls back to 10%.
func (cfg *AppConfig) TaxRateDecimal() decimal.Decimal {
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil || rate.IsNegative() {
		return decimal.NewFromFloat(0.10)
	}
	return rate
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	if override := os.Getenv("KIOSK_CONFIG"); override != "" {
		return override, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".kioskapp")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads configuration from config.json
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return &cfg, nil
}

// SaveConfig saves configuration to config.json
func SaveConfig(cfg *AppConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}

	return nil
}

// ConfigExists checks if config file exists
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// CreateDefaultConfig creates a default configuration file
func CreateDefaultConfig() (*AppConfig, error) {
	homeDir, _ := os.UserHomeDir()
	dataPath := filepath.Join(homeDir, ".kioskapp")

	cfg := &AppConfig{
		Store: StoreConfig{
			Name:     "demostore1",
			Address1: "123 Main Str",
			Address2: "Anytown, USA",
			Phone:    "(555) 555-0100",
		},
		Printer: PrinterConfig{
			Type:           "network",
			Host:           "192.168.1.100",
			Port:           9100,
			TimeoutSeconds: 5,
		},
		OrderNumber: OrderNumberConfig{
			Mode:     "local",
			FilePath: filepath.Join(dataPath, "OrderNumber.txt"),
		},
		OrderAPI: OrderAPIConfig{
			URL:            "",
			TimeoutSeconds: 10,
		},
		Catalog: CatalogConfig{
			ItemsPath:          filepath.Join(dataPath, "formatted_items.txt"),
			ModifierPath:       filepath.Join(dataPath, "formatted_modifierDef.txt"),
			ModifierDetailPath: filepath.Join(dataPath, "formatted_modifierDetail.txt"),
		},
		Screen: ScreenConfig{
			Port: 8080,
		},
		TaxRate:  "0.10",
		DataPath: dataPath,
	}

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides lets the environment override deployment-specific fields.
// Values come from the process environment, typically loaded from .env.
func (cfg *AppConfig) applyEnvOverrides() {
	if host := os.Getenv("PRINTER_HOST"); host != "" {
		cfg.Printer.Host = host
	}
	if url := os.Getenv("ORDER_API_URL"); url != "" {
		cfg.OrderAPI.URL = url
	}
	if mode := os.Getenv("ORDER_NUMBER_MODE"); mode != "" {
		cfg.OrderNumber.Mode = mode
	}
}
