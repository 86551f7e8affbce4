package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
	"bookkeeper/internal/services"
)

// --- mock donation service ---

type mockDonationService struct{}

func (m *mockDonationService) Create(userID uint, _ services.CreateDonationInput) (*models.Donation, error) {
	return &models.Donation{Base: models.Base{ID: 1}, UserID: userID}, nil
}

func (m *mockDonationService) GetByID(userID, id uint) (*models.Donation, error) {
	return &models.Donation{Base: models.Base{ID: id}, UserID: userID}, nil
}

func (m *mockDonationService) List(_ uint, _ int, page pagination.PageRequest) (pagination.PageResponse[models.Donation], error) {
	page.Defaults()
	return pagination.NewPageResponse([]models.Donation{}, page.Page, page.PageSize, 0), nil
}

func (m *mockDonationService) ListForExport(_ uint, _ int) ([]models.Donation, error) {
	return []models.Donation{}, nil
}

func (m *mockDonationService) Update(userID, id uint, _ services.UpdateDonationInput) (*models.Donation, error) {
	return &models.Donation{Base: models.Base{ID: id}, UserID: userID}, nil
}

func (m *mockDonationService) Delete(_, _ uint) error { return nil }

var _ services.DonationService = (*mockDonationService)(nil)

// --- mock summary service ---

type mockSummaryService struct{}

func (m *mockSummaryService) MonthlySummary(_ uint, year int, month time.Month) (*services.MonthlyReport, error) {
	return &services.MonthlyReport{
		Month:      services.Summary{Year: year, Month: month},
		YearToDate: services.Summary{Year: year},
	}, nil
}

func (m *mockSummaryService) YearlySummary(_ uint, year int) (*services.Summary, error) {
	return &services.Summary{
		Year:                    year,
		TotalIncome:             decimal.RequireFromString("150.00"),
		TotalExpenses:           decimal.RequireFromString("40.00"),
		TotalDonations:          decimal.RequireFromString("20.00"),
		NetProfitAfterDonations: decimal.RequireFromString("90.00"),
	}, nil
}

var _ services.SummaryService = (*mockSummaryService)(nil)

func setupExportRouter(txSvc services.TransactionService, invSvc services.InventoryService) *gin.Engine {
	handler := NewExportHandler(txSvc, &mockDonationService{}, invSvc, &mockSummaryService{})
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/exports/expenses", handler.ExportExpenses)
	auth.GET("/exports/summary", handler.ExportSummary)
	auth.GET("/exports/inventory-sales", handler.ExportInventorySales)
	return r
}

// --- tests ---

func TestExportHandler_ExportExpenses(t *testing.T) {
	txSvc := &mockTransactionService{
		listForExportFn: func(_ uint, transactionType models.TransactionType, _ int) ([]models.Transaction, error) {
			if transactionType != models.TransactionTypeExpense {
				t.Errorf("transaction type = %s, want Expense", transactionType)
			}
			return []models.Transaction{
				{
					Type:        models.TransactionTypeExpense,
					Date:        time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
					Category:    "Office",
					Description: "Printer paper",
					Amount:      decimal.RequireFromString("40.00"),
				},
			}, nil
		},
	}
	r := setupExportRouter(txSvc, &mockInventoryService{})

	rec := doRequest(r, "GET", "/exports/expenses?year=2025", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "expenses-2025.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if lines[0] != "date,description,amount,category,payment_method,notes" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
}

func TestExportHandler_ExportSummary(t *testing.T) {
	r := setupExportRouter(&mockTransactionService{}, &mockInventoryService{})

	rec := doRequest(r, "GET", "/exports/summary?year=2025", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if lines[1] != "2025,150.00,40.00,20.00,90.00" {
		t.Errorf("summary row = %q", lines[1])
	}
}

func TestExportHandler_ExportInventorySales(t *testing.T) {
	t.Run("passes the parsed window to the service", func(t *testing.T) {
		var gotFrom, gotTo time.Time
		invSvc := &mockInventoryService{
			getSalesReportFn: func(_ uint, start, end time.Time) (*services.SalesReport, error) {
				gotFrom, gotTo = start, end
				return &services.SalesReport{Sales: []models.InventorySale{}}, nil
			},
		}
		r := setupExportRouter(&mockTransactionService{}, invSvc)

		rec := doRequest(r, "GET", "/exports/inventory-sales?from_date=2025-04-01&to_date=2025-04-30", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotFrom.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("from = %v", gotFrom)
		}
		if !gotTo.Equal(time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("to = %v", gotTo)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "inventory-sales-2025-04-01-to-2025-04-30.csv") {
			t.Errorf("Content-Disposition = %q", cd)
		}
	})

	t.Run("requires a date window", func(t *testing.T) {
		r := setupExportRouter(&mockTransactionService{}, &mockInventoryService{})

		rec := doRequest(r, "GET", "/exports/inventory-sales", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
