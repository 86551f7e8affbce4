package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationType represents how a donation was given
type DonationType string

const (
	DonationTypeCash         DonationType = "Cash"
	DonationTypeCreditCard   DonationType = "Credit Card"
	DonationTypeBankTransfer DonationType = "Bank Transfer"
	DonationTypeCheck        DonationType = "Check"
	DonationTypeOnline       DonationType = "Online"
	DonationTypeGoods        DonationType = "Goods"
	DonationTypeStocks       DonationType = "Stocks"
	DonationTypeOther        DonationType = "Other"
)

// Donation represents a charitable-giving event
type Donation struct {
	Base
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Charity      string          `gorm:"not null" json:"charity"`
	DonationType DonationType    `gorm:"not null" json:"donation_type"`
	Method       string          `json:"method,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ReceiptURL   string          `json:"receipt_url,omitempty"`
}
