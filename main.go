package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"KioskApp/app/config"
	"KioskApp/app/database"
	"KioskApp/app/services"
	"KioskApp/app/websocket"
)

func main() {
	// Optional .env next to the binary for development overrides
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := loadOrCreateConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := services.NewLoggerService(cfg.DataPath, cfg.Store.Name)
	defer logger.Close()
	defer logger.RecoverPanic()

	logger.LogInfo("Kiosk starting", cfg.Store.Name)

	catalog := services.NewCatalogService(logger)
	catalog.Load(cfg.Catalog.ItemsPath, cfg.Catalog.ModifierPath, cfg.Catalog.ModifierDetailPath)

	var archive *services.ArchiveService
	if err := database.Initialize(filepath.Join(cfg.DataPath, "kiosk.db")); err != nil {
		// The kiosk still sells without a local archive.
		logger.LogError("Local archive unavailable", err)
	} else {
		archive = services.NewArchiveService(database.GetDB())
		defer database.Close()
	}

	httpService := services.NewHttpService(cfg.OrderAPI)
	numbers := services.NewOrderNumberService(cfg.OrderNumber, httpService)
	printer := services.NewPrinterService(cfg.Printer)
	encoder := services.NewReceiptEncoder(cfg.Store, cfg.Printer.ReceiptQR)

	selection := services.NewSelectionEngine(catalog)
	ledger := services.NewOrderLedger(cfg.TaxRateDecimal())

	server := websocket.NewServer(fmt.Sprintf(":%d", cfg.Screen.Port))

	var archiver services.OrderArchiver
	if archive != nil {
		archiver = archive
	}
	var notifier services.OrderNotifier
	if cfg.OrderAPI.URL != "" {
		notifier = httpService
	}

	session := services.NewSessionService(
		catalog, selection, ledger, encoder,
		server, logger,
		printer, numbers, notifier, archiver,
	)
	server.SetSession(session)

	go func() {
		if err := server.Start(); err != nil {
			logger.LogFatal("Screen server stopped", err)
		}
	}()

	if printers, err := services.DetectNetworkPrinters(5 * time.Second); err == nil {
		for _, p := range printers {
			logger.LogInfo("Network printer found", fmt.Sprintf("%s at %s:%d", p.Name, p.Address, p.Port))
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.LogInfo("Kiosk shutting down")
	server.Stop()
}

// loadOrCreateConfig loads the configuration, creating a default file on
// first run so operators have something to edit.
func loadOrCreateConfig() (*config.AppConfig, error) {
	exists, err := config.ConfigExists()
	if err != nil {
		return nil, err
	}
	if !exists {
		cfg, err := config.CreateDefaultConfig()
		if err != nil {
			return nil, fmt.Errorf("could not create default config: %w", err)
		}
		if path, err := config.GetConfigPath(); err == nil {
			log.Printf("Created default configuration at %s", path)
		}
		return cfg, nil
	}
	return config.LoadConfig()
}
