package services

import (
	"fmt"

	"gorm.io/gorm"

	"KioskApp/app/models"
)

// ArchiveService persists finished orders to the local SQLite archive
type ArchiveService struct {
	db *gorm.DB
}

// NewArchiveService creates an archive backed by the given database
func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// SaveOrder stores one finished order with its items and modifier lines
func (s *ArchiveService) SaveOrder(order models.Order, orderNumber int) error {
	record := models.ArchivedOrder{
		OrderNumber: orderNumber,
		Subtotal:    order.Subtotal.StringFixed(2),
		Tax:         order.Tax.StringFixed(2),
		Total:       order.Total.StringFixed(2),
		PlacedAt:    order.PlacedAt,
	}

	for _, item := range order.Items {
		archivedItem := models.ArchivedOrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		}
		for _, mod := range item.Modifiers {
			archivedItem.Modifiers = append(archivedItem.Modifiers, models.ArchivedItemModifier{
				Code:        mod.Code,
				Description: mod.Description,
				Cost:        mod.Cost.StringFixed(2),
			})
		}
		record.Items = append(record.Items, archivedItem)
	}

	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to archive order %d: %w", orderNumber, err)
	}
	return nil
}

// RecentOrders returns the most recently archived orders, newest first
func (s *ArchiveService) RecentOrders(limit int) ([]models.ArchivedOrder, error) {
	var orders []models.ArchivedOrder
	err := s.db.
		Preload("Items.Modifiers").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load archived orders: %w", err)
	}
	return orders, nil
}
