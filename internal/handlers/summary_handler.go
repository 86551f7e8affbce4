package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/services"
)

// SummaryHandler handles financial summary requests.
type SummaryHandler struct {
	summaryService services.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func parseYear(c *gin.Context) (int, error) {
	yearStr := c.Query("year")
	if yearStr == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1900 || year > 9999 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
	}
	return year, nil
}

// GetMonthlySummary returns the financial summary for one month with year-to-date figures
// @Summary     Get a monthly summary
// @Description Get income, expenses, donations, donation target, and net profit for one month, with year-to-date figures through that month
// @Tags        summaries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Calendar year (defaults to current)"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} services.MonthlyReport "Monthly summary with year-to-date block"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summaries/monthly [get]
func (h *SummaryHandler) GetMonthlySummary(c *gin.Context) {
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

	monthStr := c.Query("month")
	if monthStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required"))
		return
	}
	month, convErr := strconv.Atoi(monthStr)
	if convErr != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
		return
	}

	summary, err := h.summaryService.MonthlySummary(userID, year, time.Month(month))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetYearlySummary returns the financial summary for one year
// @Summary     Get a yearly summary
// @Description Get income, expenses, donations, donation target, and net profit for one year
// @Tags        summaries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Calendar year (defaults to current)"
// @Success     200 {object} services.Summary "Yearly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summaries/yearly [get]
func (h *SummaryHandler) GetYearlySummary(c *gin.Context) {
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

	c.JSON(http.StatusOK, summary)
}
