package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"KioskApp/app/models"
)

var db *gorm.DB

// GetDB returns the local database instance
func GetDB() *gorm.DB {
	return db
}

// Initialize opens the local SQLite database (CGO-free driver) and migrates
// the order archive tables.
func Initialize(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	opened, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}

	db = opened

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run local migrations: %w", err)
	}

	return nil
}

func runMigrations() error {
	return db.AutoMigrate(
		&models.ArchivedOrder{},
		&models.ArchivedOrderItem{},
		&models.ArchivedItemModifier{},
	)
}

// Close closes the database connection
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
