package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/pagination"
	"bookkeeper/internal/services"
)

// InventoryHandler handles inventory purchase and sale requests.
type InventoryHandler struct {
	inventoryService services.InventoryService
	auditService     services.AuditService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService services.InventoryService, auditService services.AuditService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, auditService: auditService}
}

// CreatePurchaseRequest represents the request payload for recording a purchase batch
type CreatePurchaseRequest struct {
	ItemName     string          `json:"item_name" binding:"required,max=200"`
	PurchaseDate *string         `json:"purchase_date"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Notes        string          `json:"notes" binding:"max=1000"`
}

// UpdatePurchaseRequest represents the request payload for updating a purchase batch
type UpdatePurchaseRequest struct {
	ItemName *string `json:"item_name" binding:"omitempty,max=200"`
	Notes    *string `json:"notes" binding:"omitempty,max=1000"`
}

// RecordSaleRequest represents the request payload for recording a sale
type RecordSaleRequest struct {
	PurchaseID   uint            `json:"purchase_id" binding:"required"`
	SaleDate     *string         `json:"sale_date"`
	QuantitySold int             `json:"quantity_sold" binding:"required,min=1"`
	SalePrice    decimal.Decimal `json:"sale_price" binding:"required"`
	Notes        string          `json:"notes" binding:"max=1000"`
}

// CreatePurchase records a new purchase batch
// @Summary     Record an inventory purchase
// @Description Record a new batch of items bought together
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePurchaseRequest true "Purchase details"
// @Success     201 {object} models.InventoryPurchase "Purchase recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/purchases [post]
func (h *InventoryHandler) CreatePurchase(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil && *req.PurchaseDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.PurchaseDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		purchaseDate = parsed
	}

	input := services.CreatePurchaseInput{
		ItemName:     req.ItemName,
		PurchaseDate: purchaseDate,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		ShippingCost: req.ShippingCost,
		Notes:        req.Notes,
	}

	purchase, err := h.inventoryService.CreatePurchase(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "create", "inventory_purchase", purchase.ID, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// ListPurchases lists the user's purchase batches with derived stock
// @Summary     List inventory purchases
// @Description List purchase batches with derived stock figures, newest first
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[services.BatchStock] "Purchases"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/purchases [get]
func (h *InventoryHandler) ListPurchases(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.inventoryService.ListPurchases(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPurchase returns a single purchase batch with derived stock
// @Summary     Get an inventory purchase
// @Description Get a purchase batch by ID, with derived stock figures
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Purchase ID"
// @Success     200 {object} services.BatchStock "Purchase"
// @Failure     400 {object} ErrorResponse "Invalid purchase ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Purchase not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/purchases/{id} [get]
func (h *InventoryHandler) GetPurchase(c *gin.Context) {
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

	stock, err := h.inventoryService.GetPurchase(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stock)
}

// ListAvailableBatches lists batches that still have stock
// @Summary     List available batches
// @Description List purchase batches with remaining stock, for picking a batch to sell from
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.BatchStock "Available batches"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/batches/available [get]
func (h *InventoryHandler) ListAvailableBatches(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	batches, err := h.inventoryService.ListAvailableBatches(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, batches)
}

// UpdatePurchase updates a purchase batch's name or notes
// @Summary     Update an inventory purchase
// @Description Update a purchase batch's item name or notes
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Purchase ID"
// @Param       request body UpdatePurchaseRequest true "Fields to update"
// @Success     200 {object} models.InventoryPurchase "Purchase updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Purchase not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/purchases/{id} [put]
func (h *InventoryHandler) UpdatePurchase(c *gin.Context) {
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

	var req UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	purchase, err := h.inventoryService.UpdatePurchase(userID, id, services.UpdatePurchaseInput{
		ItemName: req.ItemName,
		Notes:    req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "update", "inventory_purchase", id, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchase)
}

// DeletePurchase deletes a purchase batch with no sales
// @Summary     Delete an inventory purchase
// @Description Delete a purchase batch that has no recorded sales
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Purchase ID"
// @Success     200 {object} MessageResponse "Purchase deleted"
// @Failure     400 {object} ErrorResponse "Batch has recorded sales"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Purchase not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/purchases/{id} [delete]
func (h *InventoryHandler) DeletePurchase(c *gin.Context) {
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

	if err := h.inventoryService.DeletePurchase(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "delete", "inventory_purchase", id, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted successfully"})
}

// RecordSale records a sale against a purchase batch
// @Summary     Record an inventory sale
// @Description Record a sale drawn from one purchase batch; also records the matching income transaction
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordSaleRequest true "Sale details"
// @Success     201 {object} models.InventorySale "Sale recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient stock"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Purchase not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/sales [post]
func (h *InventoryHandler) RecordSale(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	saleDate := time.Now()
	if req.SaleDate != nil && *req.SaleDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.SaleDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		saleDate = parsed
	}

	input := services.RecordSaleInput{
		PurchaseID:   req.PurchaseID,
		SaleDate:     saleDate,
		QuantitySold: req.QuantitySold,
		SalePrice:    req.SalePrice,
		Notes:        req.Notes,
	}

	sale, err := h.inventoryService.RecordSale(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "create", "inventory_sale", sale.ID, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// GetSalesReport returns a windowed sales report with totals
// @Summary     Get a sales report
// @Description Get sales in a date window with total revenue, COGS, profit, and margin
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string true "Window start (inclusive, YYYY-MM-DD)"
// @Param       to_date query string true "Window end (inclusive, YYYY-MM-DD)"
// @Success     200 {object} services.SalesReport "Sales report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/sales/report [get]
func (h *InventoryHandler) GetSalesReport(c *gin.Context) {
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

	c.JSON(http.StatusOK, report)
}

// DeleteSale deletes a sale, restoring the batch's derived stock
// @Summary     Delete an inventory sale
// @Description Delete a sale by ID; the batch's derived stock increases accordingly
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sale ID"
// @Success     200 {object} MessageResponse "Sale deleted"
// @Failure     400 {object} ErrorResponse "Invalid sale ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sale not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inventory/sales/{id} [delete]
func (h *InventoryHandler) DeleteSale(c *gin.Context) {
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

	if err := h.inventoryService.DeleteSale(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.auditService.Record(userID, "delete", "inventory_sale", id, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}
