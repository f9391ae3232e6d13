package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/services"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// InvoiceLineHandler is the HTTP surface of the billing service for
// facture-soins. Every mutation keeps the facture total consistent.
type InvoiceLineHandler struct {
	Svc *services.BillingService
}

// NewInvoiceLineHandler creates a new InvoiceLineHandler.
func NewInvoiceLineHandler(svc *services.BillingService) *InvoiceLineHandler {
	return &InvoiceLineHandler{Svc: svc}
}

// CreateInvoiceLineRequest represents the request body for adding a facture-soin.
type CreateInvoiceLineRequest struct {
	InvoiceID     string  `json:"factureId" binding:"required"`
	TreatmentCode string  `json:"soinId" binding:"required"`
	Amount        float64 `json:"montant" binding:"required"`
}

// CreateInvoiceLine adds a facture-soin; the facture total is
// incremented in the same transaction.
func (h *InvoiceLineHandler) CreateInvoiceLine(c *gin.Context) {
	var req CreateInvoiceLineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	line, err := h.Svc.AddLineItem(req.InvoiceID, req.TreatmentCode, req.Amount)
	if err != nil {
		respondServiceError(c, "create facture-soin", err)
		return
	}
	utils.Created(c, "FactureSoin created successfully", line)
}

// GetInvoiceLines lists the facture-soins of a facture.
func (h *InvoiceLineHandler) GetInvoiceLines(c *gin.Context) {
	lines, err := h.Svc.LinesByInvoice(c.Param("factureId"))
	if err != nil {
		respondServiceError(c, "list facture-soins", err)
		return
	}
	utils.Success(c, "FactureSoins fetched successfully", lines)
}

// UpdateInvoiceLineRequest represents the request body for changing a
// facture-soin amount.
type UpdateInvoiceLineRequest struct {
	Amount float64 `json:"montant" binding:"required"`
}

// UpdateInvoiceLine changes a facture-soin amount; the facture total is
// adjusted by the delta in the same transaction.
func (h *InvoiceLineHandler) UpdateInvoiceLine(c *gin.Context) {
	var req UpdateInvoiceLineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	line, err := h.Svc.UpdateLineItemAmount(c.Param("id"), req.Amount)
	if err != nil {
		respondServiceError(c, "update facture-soin", err)
		return
	}
	utils.Success(c, "FactureSoin updated successfully", line)
}

// DeleteInvoiceLine removes a facture-soin; the facture total is
// decremented in the same transaction.
func (h *InvoiceLineHandler) DeleteInvoiceLine(c *gin.Context) {
	if err := h.Svc.RemoveLineItem(c.Param("id")); err != nil {
		respondServiceError(c, "delete facture-soin", err)
		return
	}
	utils.Success(c, "FactureSoin deleted successfully", nil)
}

// GetRevenueSummary aggregates billed facture-soins per soin.
func (h *InvoiceLineHandler) GetRevenueSummary(c *gin.Context) {
	summary, err := h.Svc.RevenueSummary()
	if err != nil {
		respondServiceError(c, "facture-soin summary", err)
		return
	}
	utils.Success(c, "Summary fetched successfully", summary)
}
