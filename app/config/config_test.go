package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("KIOSK_CONFIG", path)
	return path
}

func TestCreateDefaultAndReload(t *testing.T) {
	path := useTempConfig(t)

	created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Store.Name != created.Store.Name {
		t.Errorf("reloaded store name %q, want %q", loaded.Store.Name, created.Store.Name)
	}
	if loaded.Printer.Port != 9100 {
		t.Errorf("default printer port = %d, want 9100", loaded.Printer.Port)
	}
}

func TestConfigExists(t *testing.T) {
	useTempConfig(t)

	exists, err := ConfigExists()
	if err != nil {
		t.Fatalf("ConfigExists: %v", err)
	}
	if exists {
		t.Error("config reported present before creation")
	}

	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatal(err)
	}
	exists, err = ConfigExists()
	if err != nil {
		t.Fatalf("ConfigExists: %v", err)
	}
	if !exists {
		t.Error("config reported missing after creation")
	}
}

func TestLoadConfigMissingFileFails(t *testing.T) {
	useTempConfig(t)

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig succeeded with no file")
	}
}

func TestEnvOverrides(t *testing.T) {
	useTempConfig(t)
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PRINTER_HOST", "10.0.0.99")
	t.Setenv("ORDER_API_URL", "http://orders.example/api")
	t.Setenv("ORDER_NUMBER_MODE", "remote")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Printer.Host != "10.0.0.99" {
		t.Errorf("Printer.Host = %q, want override", cfg.Printer.Host)
	}
	if cfg.OrderAPI.URL != "http://orders.example/api" {
		t.Errorf("OrderAPI.URL = %q, want override", cfg.OrderAPI.URL)
	}
	if cfg.OrderNumber.Mode != "remote" {
		t.Errorf("OrderNumber.Mode = %q, want override", cfg.OrderNumber.Mode)
	}
}

func TestTaxRateDecimal(t *testing.T) {
	tests := []struct {
		rate string
		want string
	}{
		{"0.0825", "0.0825"},
		{"0.10", "0.1"},
		{"", "0.1"},
		{"lots", "0.1"},
		{"-0.05", "0.1"},
	}
	for _, tt := range tests {
		cfg := &AppConfig{TaxRate: tt.rate}
		if got := cfg.TaxRateDecimal().String(); got != tt.want {
			t.Errorf("TaxRateDecimal(%q) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}
