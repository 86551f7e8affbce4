package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
	"bookkeeper/internal/services"
)

// DonationHandler handles donation-related requests.
type DonationHandler struct {
	donationService services.DonationService
	auditService    services.AuditService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(donationService services.DonationService, auditService services.AuditService) *DonationHandler {
	return &DonationHandler{donationService: donationService, auditService: auditService}
}

// CreateDonationRequest represents the request payload for recording a donation
type CreateDonationRequest struct {
	Date         *string             `json:"date"`
	Amount       decimal.Decimal     `json:"amount" binding:"required"`
	Charity      string              `json:"charity" binding:"required,max=200"`
	DonationType models.DonationType `json:"donation_type" binding:"required,donation_type"`
	Method       string              `json:"method" binding:"max=100"`
	Notes        string              `json:"notes" binding:"max=1000"`
	ReceiptURL   string              `json:"receipt_url" binding:"max=500"`
}

// UpdateDonationRequest represents the request payload for updating a donation
type UpdateDonationRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	Charity *string          `json:"charity" binding:"omitempty,max=200"`
	Notes   *string          `json:"notes" binding:"omitempty,max=1000"`
}

// CreateDonation records a new donation
// @Summary     Record a donation
// @Description Record a new charitable donation
// @Tags        donations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDonationRequest true "Donation details"
// @Success     201 {object} models.Donation "Donation recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /donations [post]
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	donationDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		donationDate = parsed
	}

	donation, err := h.donationService.Create(userID, services.CreateDonationInput{
		Date:         donationDate,
		Amount:       req.Amount,
		Charity:      req.Charity,
		DonationType: req.DonationType,
		Method:       req.Method,
		Notes:        req.Notes,
		ReceiptURL:   req.ReceiptURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "create", "donation", donation.ID, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// ListDonations lists the user's donations
// @Summary     List donations
// @Description List donations, optionally limited to one calendar year
// @Tags        donations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Calendar year filter"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Donation] "Donations"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /donations [get]
func (h *DonationHandler) ListDonations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year := 0
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, convErr := strconv.Atoi(yearStr)
		if convErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
		year = parsed
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.donationService.List(userID, year, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDonation returns a single donation
// @Summary     Get a donation
// @Description Get a donation by ID
// @Tags        donations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Donation ID"
// @Success     200 {object} models.Donation "Donation"
// @Failure     400 {object} ErrorResponse "Invalid donation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Donation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /donations/{id} [get]
func (h *DonationHandler) GetDonation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	donation, err := h.donationService.GetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// UpdateDonation updates a donation
// @Summary     Update a donation
// @Description Update a donation's amount, charity, or notes
// @Tags        donations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Donation ID"
// @Param       request body UpdateDonationRequest true "Fields to update"
// @Success     200 {object} models.Donation "Donation updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Donation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /donations/{id} [put]
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	donation, err := h.donationService.Update(userID, id, services.UpdateDonationInput{
		Amount:  req.Amount,
		Charity: req.Charity,
		Notes:   req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "update", "donation", id, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// DeleteDonation deletes a donation
// @Summary     Delete a donation
// @Description Delete a donation by ID
// @Tags        donations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Donation ID"
// @Success     200 {object} MessageResponse "Donation deleted"
// @Failure     400 {object} ErrorResponse "Invalid donation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Donation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /donations/{id} [delete]
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.donationService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "delete", "donation", id, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Donation deleted successfully"})
}
