package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/services"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// InvoiceHandler is the HTTP surface of the billing service for factures.
type InvoiceHandler struct {
	Svc *services.BillingService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(svc *services.BillingService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// CreateInvoiceRequest represents the request body for creating a facture.
type CreateInvoiceRequest struct {
	PatientID     string               `json:"patientId" binding:"required"`
	PaymentMethod string               `json:"methodPaiement" binding:"required"`
	DueDate       string               `json:"dateEcheance" binding:"required,calendardate"`
	Lines         []services.LineInput `json:"factureSoins"`
}

// CreateInvoice creates a facture with its initial facture-soins.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	invoice, err := h.Svc.CreateInvoice(services.CreateInvoiceInput{
		PatientID:     req.PatientID,
		PaymentMethod: req.PaymentMethod,
		DueDate:       req.DueDate,
		Lines:         req.Lines,
	})
	if err != nil {
		respondServiceError(c, "create facture", err)
		return
	}
	utils.Success(c, "Facture created successfully", invoice)
}

// GetInvoicesByPatient lists a patient's factures.
func (h *InvoiceHandler) GetInvoicesByPatient(c *gin.Context) {
	page, size := pagination(c)
	invoices, err := h.Svc.ListByPatient(c.Param("patientId"), page, size)
	if err != nil {
		respondServiceError(c, "list factures", err)
		return
	}
	utils.Success(c, "Factures fetched successfully", invoices)
}

// GetInvoiceByID returns one facture with its lines.
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	invoice, err := h.Svc.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "get facture", err)
		return
	}
	utils.Success(c, "Facture fetched successfully", invoice)
}

// UpdateInvoiceRequest represents the partial request body for updating
// facture metadata. The montant is never settable here.
type UpdateInvoiceRequest struct {
	Status        string `json:"statut"`
	PaymentMethod string `json:"methodPaiement"`
	DueDate       string `json:"dateEcheance" binding:"omitempty,calendardate"`
}

// UpdateInvoice updates facture metadata.
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req UpdateInvoiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	invoice, err := h.Svc.UpdateInvoice(c.Param("id"), services.UpdateInvoiceInput{
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		DueDate:       req.DueDate,
	})
	if err != nil {
		respondServiceError(c, "update facture", err)
		return
	}
	utils.Success(c, "Facture updated successfully", invoice)
}

// DeleteInvoice removes a facture and its lines.
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.Svc.DeleteInvoice(c.Param("id")); err != nil {
		respondServiceError(c, "delete facture", err)
		return
	}
	utils.Success(c, "Facture deleted successfully", nil)
}

// GetOverdueInvoices lists unpaid factures past their due date,
// earliest due first.
func (h *InvoiceHandler) GetOverdueInvoices(c *gin.Context) {
	invoices, err := h.Svc.Overdue()
	if err != nil {
		respondServiceError(c, "list overdue factures", err)
		return
	}
	utils.Success(c, "Overdue factures fetched successfully", invoices)
}

// MarkInvoicePaid sets a facture's statut to PAYE.
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	if err := h.Svc.MarkPaid(c.Param("id")); err != nil {
		respondServiceError(c, "mark facture paid", err)
		return
	}
	utils.Success(c, "Facture marked as paid", nil)
}
