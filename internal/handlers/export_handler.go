package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/export"
	"bookkeeper/internal/models"
	"bookkeeper/internal/services"
)

// ExportHandler serves CSV downloads for tax preparation.
type ExportHandler struct {
	transactionService services.TransactionService
	donationService    services.DonationService
	inventoryService   services.InventoryService
	summaryService     services.SummaryService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(
	transactionService services.TransactionService,
	donationService services.DonationService,
	inventoryService services.InventoryService,
	summaryService services.SummaryService,
) *ExportHandler {
	return &ExportHandler{
		transactionService: transactionService,
		donationService:    donationService,
		inventoryService:   inventoryService,
		summaryService:     summaryService,
	}
}

func serveCSV(c *gin.Context, filename string, render func() error) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := render(); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}

// ExportExpenses downloads a year's expenses as CSV
// @Summary     Export expenses
// @Description Download a calendar year's expense transactions as CSV
// @Tags        exports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year query int false "Calendar year (defaults to current)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/expenses [get]
func (h *ExportHandler) ExportExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListForExport(userID, models.TransactionTypeExpense, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	serveCSV(c, export.ExpensesFilename(year), func() error {
		return export.WriteExpenses(c.Writer, transactions)
	})
}

// ExportIncome downloads a year's income as CSV
// @Summary     Export income
// @Description Download a calendar year's income transactions as CSV
// @Tags        exports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year query int false "Calendar year (defaults to current)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/income [get]
func (h *ExportHandler) ExportIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListForExport(userID, models.TransactionTypeIncome, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	serveCSV(c, export.IncomeFilename(year), func() error {
		return export.WriteIncome(c.Writer, transactions)
	})
}

// ExportDonations downloads a year's donations as CSV
// @Summary     Export donations
// @Description Download a calendar year's donations as CSV
// @Tags        exports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year query int false "Calendar year (defaults to current)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/donations [get]
func (h *ExportHandler) ExportDonations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	donations, err := h.donationService.ListForExport(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	serveCSV(c, export.DonationsFilename(year), func() error {
		return export.WriteDonations(c.Writer, donations)
	})
}

// ExportSummary downloads a year's financial summary as CSV
// @Summary     Export yearly summary
// @Description Download a calendar year's financial summary as CSV
// @Tags        exports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year query int false "Calendar year (defaults to current)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/summary [get]
func (h *ExportHandler) ExportSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.YearlySummary(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	serveCSV(c, export.SummaryFilename(year), func() error {
		return export.WriteSummary(c.Writer, *summary)
	})
}

// ExportInventorySales downloads a windowed inventory sales report as CSV
// @Summary     Export inventory sales
// @Description Download inventory sales in a date window as CSV, with totals
// @Tags        exports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       from_date query string true "Window start (inclusive, YYYY-MM-DD)"
// @Param       to_date query string true "Window end (inclusive, YYYY-MM-DD)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/inventory-sales [get]
func (h *ExportHandler) ExportInventorySales(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fromStr := c.Query("from_date")
	if fromStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date is required"))
		return
	}
	from, err := parseFlexibleTime(fromStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	toStr := c.Query("to_date")
	if toStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date is required"))
		return
	}
	to, err := parseFlexibleTime(toStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.inventoryService.GetSalesReport(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	serveCSV(c, export.InventorySalesFilename(from, to), func() error {
		return export.WriteInventorySales(c.Writer, *report)
	})
}
