package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryPurchase is a batch of identical items bought together.
// Quantity is fixed at creation; depletion is derived from the batch's
// sales, never stored on the row.
type InventoryPurchase struct {
	Base
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	ItemName     string          `gorm:"not null" json:"item_name"`
	PurchaseDate time.Time       `gorm:"not null;index" json:"purchase_date"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_cost"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_cost"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_cost"`
	Notes        string          `json:"notes,omitempty"`

	Sales []InventorySale `gorm:"foreignKey:PurchaseID" json:"sales,omitempty"`
}
