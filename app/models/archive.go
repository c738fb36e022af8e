package models

import "time"

// ArchivedOrder is a finished order persisted to the local SQLite archive.
// Money fields are stored as decimal strings.
type ArchivedOrder struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	OrderNumber int                 `gorm:"index" json:"order_number"`
	Subtotal    string              `json:"subtotal"`
	Tax         string              `json:"tax"`
	Total       string              `json:"total"`
	PlacedAt    time.Time           `gorm:"index" json:"placed_at"`
	Items       []ArchivedOrderItem `gorm:"foreignKey:ArchivedOrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ArchivedOrderItem is one item line of an archived order
type ArchivedOrderItem struct {
	ID              uint                   `gorm:"primaryKey" json:"id"`
	ArchivedOrderID uint                   `gorm:"index" json:"archived_order_id"`
	Name            string                 `json:"name"`
	Quantity        int                    `json:"quantity"`
	UnitPrice       string                 `json:"unit_price"`
	Modifiers       []ArchivedItemModifier `gorm:"foreignKey:ArchivedOrderItemID;constraint:OnDelete:CASCADE" json:"modifiers"`
}

// ArchivedItemModifier is one modifier line of an archived item
type ArchivedItemModifier struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	ArchivedOrderItemID uint   `gorm:"index" json:"archived_order_item_id"`
	Code                string `json:"code"`
	Description         string `json:"description"`
	Cost                string `json:"cost"`
}
