package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// IncomeSource is the revenue stream an income transaction belongs to
type IncomeSource string

const (
	IncomeSourceSubscriptions IncomeSource = "Subscriptions"
	IncomeSourceBookSales     IncomeSource = "Book Sales"
	IncomeSourcePartnerSpots  IncomeSource = "Partner Spots"
)

// Transaction represents a single income or expense event. Income and
// expense rows share one shape: Category, Vendor, and ReceiptURL are only
// meaningful for expenses, IncomeSource only for income.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`

	// Expense fields
	Category   string `json:"category,omitempty"`
	Vendor     string `json:"vendor,omitempty"`
	ReceiptURL string `json:"receipt_url,omitempty"`

	// Income fields
	IncomeSource IncomeSource `json:"income_source,omitempty"`

	// Set on the income row an inventory sale creates, so deleting the
	// sale removes its income too
	SaleID *uint `gorm:"index" json:"sale_id,omitempty"`
}
