package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySale is a disposal of units from exactly one purchase batch.
// Revenue, COGS, and Profit are computed from the batch's per-unit cost at
// the moment of sale and frozen thereafter.
type InventorySale struct {
	Base
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	PurchaseID   uint            `gorm:"not null;index" json:"purchase_id"`
	SaleDate     time.Time       `gorm:"not null;index" json:"sale_date"`
	QuantitySold int             `gorm:"not null" json:"quantity_sold"`
	SalePrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	Revenue      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"revenue"`
	COGS         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cogs"`
	Profit       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"profit"`
	Notes        string          `json:"notes,omitempty"`

	Purchase *InventoryPurchase `gorm:"foreignKey:PurchaseID" json:"purchase,omitempty"`
}
