package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
)

// CreateTransactionInput carries the fields needed to record an income or
// expense transaction. Category, Vendor, and ReceiptURL apply to expenses;
// IncomeSource applies to income.
type CreateTransactionInput struct {
	Type         models.TransactionType
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Notes        string
	Category     string
	Vendor       string
	ReceiptURL   string
	IncomeSource models.IncomeSource
}

// UpdateTransactionInput carries the mutable fields of a transaction.
type UpdateTransactionInput struct {
	Amount   *decimal.Decimal
	Category *string
}

type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionService backed by the given database.
func NewTransactionService(db *gorm.DB) TransactionService {
	return &transactionService{db: db}
}

func (s *transactionService) Create(userID uint, input CreateTransactionInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	tx := &models.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
		Notes:       input.Notes,
	}

	switch input.Type {
	case models.TransactionTypeIncome:
		if input.IncomeSource == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Income transactions require an income source")
		}
		tx.IncomeSource = input.IncomeSource
	case models.TransactionTypeExpense:
		if input.Category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense transactions require a category")
		}
		tx.Category = input.Category
		tx.Vendor = input.Vendor
		tx.ReceiptURL = input.ReceiptURL
	default:
		return nil, apperrors.ErrInvalidTransactionType
	}

	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

func (s *transactionService) GetByID(userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// windowBounds returns the [start, end) bounds for a year or year+month window.
func windowBounds(year int, month time.Month) (time.Time, time.Time) {
	if month == 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s *transactionService) List(userID uint, filter TransactionFilter, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Source != "" {
		query = query.Where("income_source = ?", filter.Source)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Year != 0 {
		start, end := windowBounds(filter.Year, filter.Month)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.Transaction]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return pagination.PageResponse[models.Transaction]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return pagination.NewPageResponse(transactions, page.Page, page.PageSize, total), nil
}

// ListForExport returns all of a user's transactions of the given type in a
// calendar year, ordered by date ascending for stable export output.
func (s *transactionService) ListForExport(userID uint, transactionType models.TransactionType, year int) ([]models.Transaction, error) {
	start, end := windowBounds(year, 0)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND type = ? AND date >= ? AND date < ?",
		userID, transactionType, start, end).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func (s *transactionService) Update(userID, id uint, input UpdateTransactionInput) (*models.Transaction, error) {
	tx, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
		}
		updates["amount"] = *input.Amount
	}
	if input.Category != nil {
		if tx.Type != models.TransactionTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Only expense transactions have a category")
		}
		updates["category"] = *input.Category
	}
	if len(updates) == 0 {
		return tx, nil
	}

	if err := s.db.Model(tx).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

func (s *transactionService) Delete(userID, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
