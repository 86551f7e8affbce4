package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/models"
)

// Summary is a financial roll-up over a reporting window, including the
// donation-target benchmark derived from total income.
type Summary struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month,omitempty"`

	TotalIncome    decimal.Decimal            `json:"total_income"`
	IncomeBySource map[string]decimal.Decimal `json:"income_by_source"`
	TotalExpenses  decimal.Decimal            `json:"total_expenses"`
	TotalDonations decimal.Decimal            `json:"total_donations"`

	DonationTarget   decimal.Decimal `json:"donation_target"`
	DonationVariance decimal.Decimal `json:"donation_variance"`
	PercentDonated   decimal.Decimal `json:"percent_donated"`

	NetProfitBeforeDonations decimal.Decimal `json:"net_profit_before_donations"`
	NetProfitAfterDonations  decimal.Decimal `json:"net_profit_after_donations"`
}

// MonthlyReport pairs one month's summary with the year-to-date figures
// through the end of that month.
type MonthlyReport struct {
	Month      Summary `json:"month"`
	YearToDate Summary `json:"year_to_date"`
}

type summaryService struct {
	db   *gorm.DB
	rate decimal.Decimal
}

// NewSummaryService creates a SummaryService with the given donation target
// rate (a fraction of income, e.g. 0.20 for 20%).
func NewSummaryService(db *gorm.DB, donationTargetRate decimal.Decimal) SummaryService {
	return &summaryService{db: db, rate: donationTargetRate}
}

// Summarize computes the financial roll-up for a set of transactions and
// donations. It is window-agnostic: callers pick what falls in the window.
func Summarize(transactions []models.Transaction, donations []models.Donation, donationTargetRate decimal.Decimal) Summary {
	summary := Summary{
		TotalIncome:    decimal.Zero,
		IncomeBySource: map[string]decimal.Decimal{},
		TotalExpenses:  decimal.Zero,
		TotalDonations: decimal.Zero,
	}

	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
			source := string(tx.IncomeSource)
			summary.IncomeBySource[source] = summary.IncomeBySource[source].Add(tx.Amount)
		case models.TransactionTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
		}
	}

	for _, d := range donations {
		summary.TotalDonations = summary.TotalDonations.Add(d.Amount)
	}

	summary.DonationTarget = summary.TotalIncome.Mul(donationTargetRate).Round(2)
	summary.DonationVariance = summary.TotalDonations.Sub(summary.DonationTarget)
	if summary.TotalIncome.IsZero() {
		summary.PercentDonated = decimal.Zero
	} else {
		summary.PercentDonated = summary.TotalDonations.Div(summary.TotalIncome).
			Mul(decimal.NewFromInt(100)).Round(1)
	}
	summary.NetProfitBeforeDonations = summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.NetProfitAfterDonations = summary.NetProfitBeforeDonations.Sub(summary.TotalDonations)

	return summary
}

func (s *summaryService) summarizeWindow(userID uint, start, end time.Time) (*Summary, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var donations []models.Donation
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&donations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := Summarize(transactions, donations, s.rate)
	return &summary, nil
}

// MonthlySummary returns the month's roll-up together with the year-to-date
// figures from January 1 through the end of that month.
func (s *summaryService) MonthlySummary(userID uint, year int, month time.Month) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 1 and 12")
	}

	start, end := windowBounds(year, month)
	monthly, err := s.summarizeWindow(userID, start, end)
	if err != nil {
		return nil, err
	}
	monthly.Year = year
	monthly.Month = month

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	ytd, err := s.summarizeWindow(userID, yearStart, end)
	if err != nil {
		return nil, err
	}
	ytd.Year = year

	return &MonthlyReport{Month: *monthly, YearToDate: *ytd}, nil
}

func (s *summaryService) YearlySummary(userID uint, year int) (*Summary, error) {
	start, end := windowBounds(year, 0)
	summary, err := s.summarizeWindow(userID, start, end)
	if err != nil {
		return nil, err
	}
	summary.Year = year
	return summary, nil
}
