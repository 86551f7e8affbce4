// Package services contains the business logic layer for the Bookkeeper API.
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
)

// UserService handles user account operations.
type UserService interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, hash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	ClearRefreshToken(userID uint) error
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Type     models.TransactionType
	Source   models.IncomeSource
	Category string
	Year     int
	Month    time.Month
}

// TransactionService handles income and expense records.
type TransactionService interface {
	Create(userID uint, input CreateTransactionInput) (*models.Transaction, error)
	GetByID(userID, id uint) (*models.Transaction, error)
	List(userID uint, filter TransactionFilter, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error)
	ListForExport(userID uint, transactionType models.TransactionType, year int) ([]models.Transaction, error)
	Update(userID, id uint, input UpdateTransactionInput) (*models.Transaction, error)
	Delete(userID, id uint) error
}

// DonationService handles charitable-giving records.
type DonationService interface {
	Create(userID uint, input CreateDonationInput) (*models.Donation, error)
	GetByID(userID, id uint) (*models.Donation, error)
	List(userID uint, year int, page pagination.PageRequest) (pagination.PageResponse[models.Donation], error)
	ListForExport(userID uint, year int) ([]models.Donation, error)
	Update(userID, id uint, input UpdateDonationInput) (*models.Donation, error)
	Delete(userID, id uint) error
}

// BatchStock is the derived depletion state of a purchase batch.
type BatchStock struct {
	Purchase       models.InventoryPurchase `json:"purchase"`
	UnitCost       decimal.Decimal          `json:"unit_cost"`
	SoldCount      int                      `json:"sold_count"`
	RemainingStock int                      `json:"remaining_stock"`
	TotalValue     decimal.Decimal          `json:"total_value"`
}

// SalesReport is a windowed list of sales with aggregate figures.
type SalesReport struct {
	Sales        []models.InventorySale `json:"sales"`
	TotalUnits   int                    `json:"total_units"`
	TotalRevenue decimal.Decimal        `json:"total_revenue"`
	TotalCOGS    decimal.Decimal        `json:"total_cogs"`
	TotalProfit  decimal.Decimal        `json:"total_profit"`
	MarginPct    decimal.Decimal        `json:"margin_pct"`
}

// InventoryService handles purchase batches and sales against them.
type InventoryService interface {
	CreatePurchase(userID uint, input CreatePurchaseInput) (*models.InventoryPurchase, error)
	GetPurchase(userID, id uint) (*BatchStock, error)
	ListPurchases(userID uint, page pagination.PageRequest) (pagination.PageResponse[BatchStock], error)
	ListAvailableBatches(userID uint) ([]BatchStock, error)
	UpdatePurchase(userID, id uint, input UpdatePurchaseInput) (*models.InventoryPurchase, error)
	DeletePurchase(userID, id uint) error

	RecordSale(userID uint, input RecordSaleInput) (*models.InventorySale, error)
	GetSalesReport(userID uint, start, end time.Time) (*SalesReport, error)
	DeleteSale(userID, id uint) error
}

// SummaryService computes financial roll-ups over a reporting window.
type SummaryService interface {
	MonthlySummary(userID uint, year int, month time.Month) (*MonthlyReport, error)
	YearlySummary(userID uint, year int) (*Summary, error)
}

// AuditService records user actions against ledger resources.
type AuditService interface {
	Record(userID uint, action, resourceType string, resourceID uint, ipAddress string) error
	ListForUser(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.AuditLog], error)
}
