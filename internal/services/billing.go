package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// BillingService keeps every facture's total equal to the sum of its
// line amounts. Each line mutation and the matching total adjustment
// share one transaction; no partial state is ever visible to another
// reader.
type BillingService struct {
	DB *gorm.DB
	// Now is the time source for invoice dates, invoice numbers and
	// the overdue query. Tests replace it with a fixed instant.
	Now func() time.Time
}

// NewBillingService creates a BillingService on the given database.
func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db, Now: time.Now}
}

// LineInput is one facture-soin of a create-invoice request.
type LineInput struct {
	TreatmentCode string  `json:"soinId"`
	Amount        float64 `json:"montant"`
}

// CreateInvoiceInput carries the fields of a create-invoice request.
type CreateInvoiceInput struct {
	PatientID     string
	PaymentMethod string
	DueDate       string
	Lines         []LineInput
}

// CreateInvoice creates a facture and its initial lines atomically.
// The total is the sum of the initial line amounts, zero for an empty
// invoice. The invoice number is drawn from a per-month counter inside
// the same transaction, so sequential creation yields INV-YYYYMM-0001,
// 0002, ... without duplicates.
func (b *BillingService) CreateInvoice(in CreateInvoiceInput) (*models.Invoice, error) {
	if in.PatientID == "" || in.PaymentMethod == "" || in.DueDate == "" {
		return nil, validationf("all fields are required")
	}
	dueDate, err := utils.ParseCalendarDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, line := range in.Lines {
		if err := utils.RequirePositiveAmount(line.Amount, "montant"); err != nil {
			return nil, err
		}
		total += line.Amount
	}

	var invoice models.Invoice
	err = b.DB.Transaction(func(tx *gorm.DB) error {
		if err := firstOrNotFound(tx, &models.Patient{}, in.PatientID, "Patient"); err != nil {
			return err
		}
		number, err := b.nextInvoiceNumber(tx)
		if err != nil {
			return err
		}
		invoice = models.Invoice{
			Number:        number,
			Date:          b.Now().UTC(),
			Total:         total,
			Status:        models.InvoicePending,
			PaymentMethod: in.PaymentMethod,
			DueDate:       dueDate,
			PatientID:     in.PatientID,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		for _, line := range in.Lines {
			var treatment models.Treatment
			if err := tx.First(&treatment, "code = ?", line.TreatmentCode).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "Soin"}
				}
				return err
			}
			item := models.InvoiceLine{
				InvoiceID:     invoice.ID,
				TreatmentCode: line.TreatmentCode,
				Amount:        line.Amount,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	}, serializable)
	if err != nil {
		return nil, err
	}
	return b.GetByID(invoice.ID)
}

// nextInvoiceNumber increments the counter row of the current month and
// formats INV-YYYYMM-NNNN. Must run inside the caller's transaction.
func (b *BillingService) nextInvoiceNumber(tx *gorm.DB) (string, error) {
	period := b.Now().UTC().Format("200601")
	var seq models.InvoiceSequence
	if err := tx.FirstOrCreate(&seq, models.InvoiceSequence{Period: period}).Error; err != nil {
		return "", err
	}
	seq.Counter++
	if err := tx.Save(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%04d", period, seq.Counter), nil
}

// GetByID loads one facture with its patient and lines.
func (b *BillingService) GetByID(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := b.DB.Preload("Patient").Preload("Lines.Treatment").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Facture"}
		}
		return nil, err
	}
	return &invoice, nil
}

// ListByPatient returns the factures of a patient, most recent first.
func (b *BillingService) ListByPatient(patientID string, page, size int) ([]models.Invoice, error) {
	if err := firstOrNotFound(b.DB, &models.Patient{}, patientID, "Patient"); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 10
	}
	if page <= 0 {
		page = 1
	}
	var invoices []models.Invoice
	err := b.DB.Where("patient_id = ?", patientID).
		Preload("Patient").Preload("Lines.Treatment").
		Order("date desc").
		Offset((page - 1) * size).Limit(size).
		Find(&invoices).Error
	return invoices, err
}

// UpdateInvoiceInput carries the mutable facture metadata. The total is
// never settable directly; it only moves with line mutations.
type UpdateInvoiceInput struct {
	Status        string
	PaymentMethod string
	DueDate       string
}

// UpdateInvoice updates facture metadata.
func (b *BillingService) UpdateInvoice(id string, in UpdateInvoiceInput) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := b.DB.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Facture"}
		}
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Status != "" {
		if in.Status != string(models.InvoicePending) && in.Status != string(models.InvoicePaid) {
			return nil, validationf("statut must be EN_ATTENTE or PAYE")
		}
		updates["status"] = in.Status
	}
	if in.PaymentMethod != "" {
		updates["payment_method"] = in.PaymentMethod
	}
	if in.DueDate != "" {
		dueDate, err := utils.ParseCalendarDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = dueDate
	}
	if len(updates) > 0 {
		if err := b.DB.Model(&invoice).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return b.GetByID(id)
}

// DeleteInvoice removes a facture and its lines.
func (b *BillingService) DeleteInvoice(id string) error {
	var invoice models.Invoice
	if err := b.DB.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Facture"}
		}
		return err
	}
	return b.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}

// MarkPaid sets a facture's statut to PAYE. The total is untouched.
func (b *BillingService) MarkPaid(id string) error {
	var invoice models.Invoice
	if err := b.DB.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Facture"}
		}
		return err
	}
	return b.DB.Model(&invoice).Update("status", models.InvoicePaid).Error
}

// Overdue returns the unpaid factures whose due date has passed,
// earliest due first.
func (b *BillingService) Overdue() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := b.DB.Where("due_date < ? AND status <> ?", b.Now(), models.InvoicePaid).
		Preload("Patient").Preload("Lines.Treatment").
		Order("due_date asc").
		Find(&invoices).Error
	return invoices, err
}

// AddLineItem inserts a facture-soin and increments the facture total
// by its amount, both in one transaction.
func (b *BillingService) AddLineItem(invoiceID, treatmentCode string, amount float64) (*models.InvoiceLine, error) {
	if invoiceID == "" || treatmentCode == "" {
		return nil, validationf("all fields are required")
	}
	if err := utils.RequirePositiveAmount(amount, "montant"); err != nil {
		return nil, err
	}
	line := models.InvoiceLine{
		InvoiceID:     invoiceID,
		TreatmentCode: treatmentCode,
		Amount:        amount,
	}
	err := b.DB.Transaction(func(tx *gorm.DB) error {
		if err := firstOrNotFound(tx, &models.Invoice{}, invoiceID, "Facture"); err != nil {
			return err
		}
		var treatment models.Treatment
		if err := tx.First(&treatment, "code = ?", treatmentCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "Soin"}
			}
			return err
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).
			Update("total", gorm.Expr("total + ?", amount)).Error
	}, serializable)
	if err != nil {
		return nil, err
	}
	return b.lineByID(line.ID)
}

// LinesByInvoice returns the facture-soins of a facture.
func (b *BillingService) LinesByInvoice(invoiceID string) ([]models.InvoiceLine, error) {
	if err := firstOrNotFound(b.DB, &models.Invoice{}, invoiceID, "Facture"); err != nil {
		return nil, err
	}
	var lines []models.InvoiceLine
	err := b.DB.Where("invoice_id = ?", invoiceID).Preload("Treatment").Find(&lines).Error
	return lines, err
}

// UpdateLineItemAmount changes a line's amount and adjusts the facture
// total by the delta, not by recomputation, in one transaction.
func (b *BillingService) UpdateLineItemAmount(lineID string, amount float64) (*models.InvoiceLine, error) {
	if err := utils.RequirePositiveAmount(amount, "montant"); err != nil {
		return nil, err
	}
	var line models.InvoiceLine
	err := b.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&line, "id = ?", lineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "FactureSoin"}
			}
			return err
		}
		delta := amount - line.Amount
		if err := tx.Model(&line).Update("amount", amount).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", line.InvoiceID).
			Update("total", gorm.Expr("total + ?", delta)).Error
	}, serializable)
	if err != nil {
		return nil, err
	}
	return b.lineByID(line.ID)
}

// RemoveLineItem deletes a facture-soin and decrements the facture
// total by its amount, both in one transaction.
func (b *BillingService) RemoveLineItem(lineID string) error {
	return b.DB.Transaction(func(tx *gorm.DB) error {
		var line models.InvoiceLine
		if err := tx.First(&line, "id = ?", lineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "FactureSoin"}
			}
			return err
		}
		if err := tx.Delete(&line).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", line.InvoiceID).
			Update("total", gorm.Expr("total - ?", line.Amount)).Error
	}, serializable)
}

// TreatmentRevenue aggregates billed lines per soin.
type TreatmentRevenue struct {
	TreatmentCode string  `json:"soinId"`
	Count         int64   `json:"count"`
	Total         float64 `json:"total"`
}

// RevenueSummary returns, per soin, how many times it was billed and
// for how much.
func (b *BillingService) RevenueSummary() ([]TreatmentRevenue, error) {
	var rows []TreatmentRevenue
	err := b.DB.Model(&models.InvoiceLine{}).
		Select("treatment_code, COUNT(*) AS count, SUM(amount) AS total").
		Group("treatment_code").
		Order("treatment_code asc").
		Scan(&rows).Error
	return rows, err
}

func (b *BillingService) lineByID(id string) (*models.InvoiceLine, error) {
	var line models.InvoiceLine
	if err := b.DB.Preload("Treatment").First(&line, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}
