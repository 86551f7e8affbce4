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

// CreateDonationInput carries the fields needed to record a donation.
type CreateDonationInput struct {
	Date         time.Time
	Amount       decimal.Decimal
	Charity      string
	DonationType models.DonationType
	Method       string
	Notes        string
	ReceiptURL   string
}

// UpdateDonationInput carries the mutable fields of a donation.
type UpdateDonationInput struct {
	Amount  *decimal.Decimal
	Charity *string
	Notes   *string
}

type donationService struct {
	db *gorm.DB
}

// NewDonationService creates a new DonationService backed by the given database.
func NewDonationService(db *gorm.DB) DonationService {
	return &donationService{db: db}
}

func (s *donationService) Create(userID uint, input CreateDonationInput) (*models.Donation, error) {
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if input.Charity == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Charity is required")
	}

	donation := &models.Donation{
		UserID:       userID,
		Date:         input.Date,
		Amount:       input.Amount,
		Charity:      input.Charity,
		DonationType: input.DonationType,
		Method:       input.Method,
		Notes:        input.Notes,
		ReceiptURL:   input.ReceiptURL,
	}
	if err := s.db.Create(donation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return donation, nil
}

func (s *donationService) GetByID(userID, id uint) (*models.Donation, error) {
	var donation models.Donation
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDonationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &donation, nil
}

func (s *donationService) List(userID uint, year int, page pagination.PageRequest) (pagination.PageResponse[models.Donation], error) {
	page.Defaults()

	query := s.db.Model(&models.Donation{}).Where("user_id = ?", userID)
	if year != 0 {
		start, end := windowBounds(year, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.Donation]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var donations []models.Donation
	if err := query.Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&donations).Error; err != nil {
		return pagination.PageResponse[models.Donation]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return pagination.NewPageResponse(donations, page.Page, page.PageSize, total), nil
}

func (s *donationService) ListForExport(userID uint, year int) ([]models.Donation, error) {
	start, end := windowBounds(year, 0)

	var donations []models.Donation
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC, id ASC").
		Find(&donations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return donations, nil
}

func (s *donationService) Update(userID, id uint, input UpdateDonationInput) (*models.Donation, error) {
	donation, err := s.GetByID(userID, id)
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
	if input.Charity != nil {
		if *input.Charity == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Charity cannot be empty")
		}
		updates["charity"] = *input.Charity
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return donation, nil
	}

	if err := s.db.Model(donation).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return donation, nil
}

func (s *donationService) Delete(userID, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Donation{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrDonationNotFound
	}
	return nil
}
