package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
	"bookkeeper/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createFn        func(userID uint, input services.CreateTransactionInput) (*models.Transaction, error)
	listFn          func(userID uint, filter services.TransactionFilter, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error)
	listForExportFn func(userID uint, transactionType models.TransactionType, year int) ([]models.Transaction, error)
	deleteFn        func(userID, id uint) error
}

func (m *mockTransactionService) Create(userID uint, input services.CreateTransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(userID, input)
	}
	return &models.Transaction{Base: models.Base{ID: 1}, UserID: userID}, nil
}

func (m *mockTransactionService) GetByID(userID, id uint) (*models.Transaction, error) {
	return &models.Transaction{Base: models.Base{ID: id}, UserID: userID}, nil
}

func (m *mockTransactionService) List(userID uint, filter services.TransactionFilter, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error) {
	if m.listFn != nil {
		return m.listFn(userID, filter, page)
	}
	page.Defaults()
	return pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0), nil
}

func (m *mockTransactionService) ListForExport(userID uint, transactionType models.TransactionType, year int) ([]models.Transaction, error) {
	if m.listForExportFn != nil {
		return m.listForExportFn(userID, transactionType, year)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) Update(userID, id uint, _ services.UpdateTransactionInput) (*models.Transaction, error) {
	return &models.Transaction{Base: models.Base{ID: id}, UserID: userID}, nil
}

func (m *mockTransactionService) Delete(userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, id)
	}
	return nil
}

var _ services.TransactionService = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.ListTransactions)
	auth.GET("/transactions/:id", handler.GetTransaction)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

// --- tests ---

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createFn: func(userID uint, input services.CreateTransactionInput) (*models.Transaction, error) {
				return &models.Transaction{
					Base:         models.Base{ID: 1},
					UserID:       userID,
					Type:         input.Type,
					Amount:       input.Amount,
					IncomeSource: input.IncomeSource,
				}, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"Income","amount":"100.00","income_source":"Subscriptions"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["type"] != "Income" {
			t.Errorf("type = %v", result["type"])
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"Transfer","amount":"100.00"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown income source", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"Income","amount":"100.00","income_source":"Lemonade"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("passes filters to the service", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			listFn: func(_ uint, filter services.TransactionFilter, page pagination.PageRequest) (pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				page.Defaults()
				return pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0), nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?type=Expense&year=2025&month=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Type != models.TransactionTypeExpense || gotFilter.Year != 2025 || int(gotFilter.Month) != 3 {
			t.Errorf("filter = %+v", gotFilter)
		}
	})

	t.Run("rejects month without year", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?month=3", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
	r := setupTransactionRouter(handler)

	rec := doRequest(r, "PUT", "/transactions/1", `{"amount":"45.00"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			deleteFn: func(_, _ uint) error { return apperrors.ErrTransactionNotFound },
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/transactions/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/transactions/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
