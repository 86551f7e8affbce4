package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
)

// CreatePurchaseInput carries the fields needed to record a purchase batch.
type CreatePurchaseInput struct {
	ItemName     string
	PurchaseDate time.Time
	Quantity     int
	UnitCost     decimal.Decimal
	ShippingCost decimal.Decimal
	Notes        string
}

// UpdatePurchaseInput carries the mutable fields of a purchase batch.
// Quantity and costs are fixed at creation because sales freeze their
// COGS from them.
type UpdatePurchaseInput struct {
	ItemName *string
	Notes    *string
}

// RecordSaleInput carries the fields needed to record a sale against a batch.
type RecordSaleInput struct {
	PurchaseID   uint
	SaleDate     time.Time
	QuantitySold int
	SalePrice    decimal.Decimal
	Notes        string
}

type inventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new InventoryService backed by the given database.
func NewInventoryService(db *gorm.DB) InventoryService {
	return &inventoryService{db: db}
}

// computeBatchStock derives the depletion state of a purchase batch from its
// sales. Stock is never stored: it is always quantity minus the sum of
// quantities sold, so deleting a sale restores stock automatically.
func computeBatchStock(purchase models.InventoryPurchase) BatchStock {
	sold := 0
	for _, sale := range purchase.Sales {
		sold += sale.QuantitySold
	}

	unitCost := decimal.Zero
	if purchase.Quantity > 0 {
		unitCost = purchase.TotalCost.Div(decimal.NewFromInt(int64(purchase.Quantity))).Round(2)
	}

	remaining := purchase.Quantity - sold
	totalValue := unitCost.Mul(decimal.NewFromInt(int64(remaining)))

	return BatchStock{
		Purchase:       purchase,
		UnitCost:       unitCost,
		SoldCount:      sold,
		RemainingStock: remaining,
		TotalValue:     totalValue,
	}
}

// saleFigures computes the frozen revenue, COGS, and profit for a sale of
// quantity units at salePrice each, drawn from a batch with the given
// per-unit cost.
func saleFigures(quantity int, salePrice, unitCost decimal.Decimal) (revenue, cogs, profit decimal.Decimal) {
	qty := decimal.NewFromInt(int64(quantity))
	revenue = salePrice.Mul(qty)
	cogs = unitCost.Mul(qty)
	profit = revenue.Sub(cogs)
	return revenue, cogs, profit
}

// marginPct returns profit as a percentage of revenue, or zero when revenue
// is zero.
func marginPct(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(1)
}

func (s *inventoryService) CreatePurchase(userID uint, input CreatePurchaseInput) (*models.InventoryPurchase, error) {
	if input.ItemName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Item name is required")
	}
	if input.Quantity < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be at least 1")
	}
	if input.UnitCost.IsNegative() || input.ShippingCost.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Costs cannot be negative")
	}

	totalCost := input.UnitCost.Mul(decimal.NewFromInt(int64(input.Quantity))).Add(input.ShippingCost)

	purchase := &models.InventoryPurchase{
		UserID:       userID,
		ItemName:     input.ItemName,
		PurchaseDate: input.PurchaseDate,
		Quantity:     input.Quantity,
		UnitCost:     input.UnitCost,
		ShippingCost: input.ShippingCost,
		TotalCost:    totalCost,
		Notes:        input.Notes,
	}
	if err := s.db.Create(purchase).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return purchase, nil
}

func (s *inventoryService) GetPurchase(userID, id uint) (*BatchStock, error) {
	var purchase models.InventoryPurchase
	if err := s.db.Preload("Sales").
		Where("id = ? AND user_id = ?", id, userID).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	stock := computeBatchStock(purchase)
	return &stock, nil
}

func (s *inventoryService) ListPurchases(userID uint, page pagination.PageRequest) (pagination.PageResponse[BatchStock], error) {
	page.Defaults()

	query := s.db.Model(&models.InventoryPurchase{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[BatchStock]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var purchases []models.InventoryPurchase
	if err := s.db.Preload("Sales").
		Where("user_id = ?", userID).
		Order("purchase_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&purchases).Error; err != nil {
		return pagination.PageResponse[BatchStock]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stocks := make([]BatchStock, 0, len(purchases))
	for _, p := range purchases {
		stocks = append(stocks, computeBatchStock(p))
	}

	return pagination.NewPageResponse(stocks, page.Page, page.PageSize, total), nil
}

// ListAvailableBatches returns the user's batches that still have stock,
// newest purchase first. The caller chooses which batch a sale draws from.
func (s *inventoryService) ListAvailableBatches(userID uint) ([]BatchStock, error) {
	var purchases []models.InventoryPurchase
	if err := s.db.Preload("Sales").
		Where("user_id = ?", userID).
		Order("purchase_date DESC, id DESC").
		Find(&purchases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	available := make([]BatchStock, 0, len(purchases))
	for _, p := range purchases {
		stock := computeBatchStock(p)
		if stock.RemainingStock > 0 {
			available = append(available, stock)
		}
	}
	return available, nil
}

func (s *inventoryService) UpdatePurchase(userID, id uint, input UpdatePurchaseInput) (*models.InventoryPurchase, error) {
	var purchase models.InventoryPurchase
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if input.ItemName != nil {
		if *input.ItemName == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Item name cannot be empty")
		}
		updates["item_name"] = *input.ItemName
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return &purchase, nil
	}

	if err := s.db.Model(&purchase).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &purchase, nil
}

// DeletePurchase removes a batch that has no recorded sales. Batches with
// sales are kept so historical COGS stays reconstructible.
func (s *inventoryService) DeletePurchase(userID, id uint) error {
	var purchase models.InventoryPurchase
	if err := s.db.Preload("Sales").
		Where("id = ? AND user_id = ?", id, userID).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPurchaseNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(purchase.Sales) > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Cannot delete a batch that has recorded sales")
	}

	if err := s.db.Delete(&purchase).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RecordSale records a sale against a purchase batch and the matching
// "Book Sales" income transaction in a single database transaction, so the
// sales ledger and the income ledger can never disagree. The availability
// check runs inside the transaction.
func (s *inventoryService) RecordSale(userID uint, input RecordSaleInput) (*models.InventorySale, error) {
	if input.QuantitySold < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity sold must be at least 1")
	}
	if input.SalePrice.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Sale price cannot be negative")
	}

	var sale *models.InventorySale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var purchase models.InventoryPurchase
		if err := tx.Preload("Sales").
			Where("id = ? AND user_id = ?", input.PurchaseID, userID).
			First(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPurchaseNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		stock := computeBatchStock(purchase)
		if input.QuantitySold > stock.RemainingStock {
			return apperrors.WithMessage(apperrors.ErrInsufficientStock,
				fmt.Sprintf("Only %d units remaining in this batch", stock.RemainingStock))
		}

		revenue, cogs, profit := saleFigures(input.QuantitySold, input.SalePrice, stock.UnitCost)

		sale = &models.InventorySale{
			UserID:       userID,
			PurchaseID:   purchase.ID,
			SaleDate:     input.SaleDate,
			QuantitySold: input.QuantitySold,
			SalePrice:    input.SalePrice,
			Revenue:      revenue,
			COGS:         cogs,
			Profit:       profit,
			Notes:        input.Notes,
		}
		if err := tx.Create(sale).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		income := &models.Transaction{
			UserID:       userID,
			Type:         models.TransactionTypeIncome,
			Amount:       revenue,
			Date:         input.SaleDate,
			Description:  fmt.Sprintf("Sold %d %s", input.QuantitySold, purchase.ItemName),
			IncomeSource: models.IncomeSourceBookSales,
			SaleID:       &sale.ID,
		}
		if err := tx.Create(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSalesReport returns the sales between start and end with aggregate
// totals. Both bounds are inclusive calendar dates: a report "to 2025-04-30"
// covers all of April 30.
func (s *inventoryService) GetSalesReport(userID uint, start, end time.Time) (*SalesReport, error) {
	var sales []models.InventorySale
	if err := s.db.Preload("Purchase").
		Where("user_id = ? AND sale_date >= ? AND sale_date < ?", userID, start, end.AddDate(0, 0, 1)).
		Order("sale_date ASC, id ASC").
		Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &SalesReport{
		Sales:        sales,
		TotalRevenue: decimal.Zero,
		TotalCOGS:    decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, sale := range sales {
		report.TotalUnits += sale.QuantitySold
		report.TotalRevenue = report.TotalRevenue.Add(sale.Revenue)
		report.TotalCOGS = report.TotalCOGS.Add(sale.COGS)
		report.TotalProfit = report.TotalProfit.Add(sale.Profit)
	}
	report.MarginPct = marginPct(report.TotalProfit, report.TotalRevenue)

	return report, nil
}

// DeleteSale removes a sale and the income transaction it created, in one
// database transaction. The batch's derived stock increases accordingly.
func (s *inventoryService) DeleteSale(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.InventorySale{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrSaleNotFound
		}

		if err := tx.Where("sale_id = ? AND user_id = ?", id, userID).
			Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
