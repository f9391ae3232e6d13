package services

import (
	"errors"
	"math"
	"testing"

	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// assertTotalMatchesLines reloads the facture and checks the stored
// total against the sum of its line amounts.
func assertTotalMatchesLines(t *testing.T, db *gorm.DB, invoiceID string) {
	t.Helper()
	var invoice models.Invoice
	if err := db.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	var lines []models.InvoiceLine
	if err := db.Where("invoice_id = ?", invoiceID).Find(&lines).Error; err != nil {
		t.Fatalf("load lines: %v", err)
	}
	var sum float64
	for _, line := range lines {
		sum += line.Amount
	}
	if math.Abs(invoice.Total-sum) > 1e-9 {
		t.Errorf("total = %.2f, lines sum to %.2f", invoice.Total, sum)
	}
}

func TestCreateInvoiceNumbersAreSequentialPerMonth(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, treatment := seedClinicFixtures(t, db)
	svc := newTestBillingService(db)

	in := CreateInvoiceInput{
		PatientID:     patient.ID,
		PaymentMethod: "CARTE",
		DueDate:       "2025-04-10",
		Lines:         []LineInput{{TreatmentCode: treatment.Code, Amount: 50}},
	}
	want := []string{"INV-202503-0001", "INV-202503-0002", "INV-202503-0003"}
	for _, number := range want {
		invoice, err := svc.CreateInvoice(in)
		if err != nil {
			t.Fatalf("create invoice: %v", err)
		}
		if invoice.Number != number {
			t.Errorf("number = %s, want %s", invoice.Number, number)
		}
	}
}

func TestCreateInvoiceTotalAndStatus(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, treatment := seedClinicFixtures(t, db)
	svc := newTestBillingService(db)

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID:     patient.ID,
		PaymentMethod: "ESPECES",
		DueDate:       "2025-04-10",
		Lines: []LineInput{
			{TreatmentCode: treatment.Code, Amount: 50},
			{TreatmentCode: treatment.Code, Amount: 75.5},
		},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if invoice.Total != 125.5 {
		t.Errorf("total = %.2f, want 125.50", invoice.Total)
	}
	if invoice.Status != models.InvoicePending {
		t.Errorf("status = %s, want EN_ATTENTE", invoice.Status)
	}
	if len(invoice.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(invoice.Lines))
	}
	assertTotalMatchesLines(t, db, invoice.ID)

	empty, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID:     patient.ID,
		PaymentMethod: "CARTE",
		DueDate:       "2025-04-10",
	})
	if err != nil {
		t.Fatalf("create empty invoice: %v", err)
	}
	if empty.Total != 0 {
		t.Errorf("empty invoice total = %.2f, want 0", empty.Total)
	}
}

func TestCreateInvoiceValidationAndRollback(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, treatment := seedClinicFixtures(t, db)
	svc := newTestBillingService(db)

	var validation *ValidationError
	if _, err := svc.CreateInvoice(CreateInvoiceInput{PatientID: patient.ID}); !errors.As(err, &validation) {
		t.Errorf("missing fields: got %v, want ValidationError", err)
	}
	if _, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID: patient.ID, PaymentMethod: "CARTE", DueDate: "10/04/2025",
	}); !errors.Is(err, utils.ErrInvalidFormat) {
		t.Errorf("bad due date: got %v, want ErrInvalidFormat", err)
	}
	if _, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID: patient.ID, PaymentMethod: "CARTE", DueDate: "2025-04-10",
		Lines: []LineInput{{TreatmentCode: treatment.Code, Amount: -5}},
	}); !errors.Is(err, utils.ErrInvalidValue) {
		t.Errorf("negative amount: got %v, want ErrInvalidValue", err)
	}

	var notFound *NotFoundError
	if _, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID: "unknown", PaymentMethod: "CARTE", DueDate: "2025-04-10",
	}); !errors.As(err, &notFound) {
		t.Errorf("unknown patient: got %v, want NotFoundError", err)
	}

	// An unknown soin rolls back the whole creation, invoice included.
	if _, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID: patient.ID, PaymentMethod: "CARTE", DueDate: "2025-04-10",
		Lines: []LineInput{
			{TreatmentCode: treatment.Code, Amount: 50},
			{TreatmentCode: "MISSING", Amount: 20},
		},
	}); !errors.As(err, &notFound) {
		t.Fatalf("unknown soin: got %v, want NotFoundError", err)
	}
	var invoices int64
	if err := db.Model(&models.Invoice{}).Count(&invoices).Error; err != nil {
		t.Fatalf("count invoices: %v", err)
	}
	var lines int64
	if err := db.Model(&models.InvoiceLine{}).Count(&lines).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if invoices != 0 || lines != 0 {
		t.Errorf("rollback left %d invoices and %d lines", invoices, lines)
	}
}

func TestLineMutationsAdjustTotalByDelta(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, treatment := seedClinicFixtures(t, db)
	svc := newTestBillingService(db)

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID:     patient.ID,
		PaymentMethod: "CARTE",
		DueDate:       "2025-04-10",
		Lines:         []LineInput{{TreatmentCode: treatment.Code, Amount: 50}},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	line, err := svc.AddLineItem(invoice.ID, treatment.Code, 30)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	assertTotalMatchesLines(t, db, invoice.ID)
	reloaded, err := svc.GetByID(invoice.ID)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if reloaded.Total != 80 {
		t.Errorf("total after add = %.2f, want 80.00", reloaded.Total)
	}

	if _, err := svc.UpdateLineItemAmount(line.ID, 45); err != nil {
		t.Fatalf("update line amount: %v", err)
	}
	assertTotalMatchesLines(t, db, invoice.ID)
	reloaded, _ = svc.GetByID(invoice.ID)
	if reloaded.Total != 95 {
		t.Errorf("total after update = %.2f, want 95.00", reloaded.Total)
	}

	if err := svc.RemoveLineItem(line.ID); err != nil {
		t.Fatalf("remove line: %v", err)
	}
	assertTotalMatchesLines(t, db, invoice.ID)
	reloaded, _ = svc.GetByID(invoice.ID)
	if reloaded.Total != 50 {
		t.Errorf("total after remove = %.2f, want 50.00", reloaded.Total)
	}

	var notFound *NotFoundError
	if _, err := svc.AddLineItem(invoice.ID, "MISSING", 10); !errors.As(err, &notFound) {
		t.Errorf("unknown soin: got %v, want NotFoundError", err)
	}
	if _, err := svc.AddLineItem(invoice.ID, treatment.Code, 0); !errors.Is(err, utils.ErrInvalidValue) {
		t.Errorf("zero amount: got %v, want ErrInvalidValue", err)
	}
	if _, err := svc.UpdateLineItemAmount("missing", 10); !errors.As(err, &notFound) {
		t.Errorf("unknown line: got %v, want NotFoundError", err)
	}
	if err := svc.RemoveLineItem("missing"); !errors.As(err, &notFound) {
		t.Errorf("remove unknown line: got %v, want NotFoundError", err)
	}
	assertTotalMatchesLines(t, db, invoice.ID)
}

func TestUpdateInvoiceMetadata(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, _ := seedClinicFixtures(t, db)
	svc := newTestBillingService(db)

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID: patient.ID, PaymentMethod: "CARTE", DueDate: "2025-04-10",
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	updated, err := svc.UpdateInvoice(invoice.ID, UpdateInvoiceInput{
		Status:        string(models.InvoicePaid),
		PaymentMethod: "CHEQUE",
		DueDate:       "2025-05-01",
	})
	if err != nil {
		t.Fatalf("update invoice: %v", err)
	}
	if updated.Status != models.InvoicePaid {
		t.Errorf("status = %s, want PAYE", updated.Status)
	}
	if updated.PaymentMethod != "CHEQUE" {
		t.Errorf("payment method = %s, want CHEQUE", updated.PaymentMethod)
	}

	var validation *ValidationError
	if _, err := svc.UpdateInvoice(invoice.ID, UpdateInvoiceInput{Status: "ANNULE"}); !errors.As(err, &validation) {
		t.Errorf("bad statut: got %v, want ValidationError", err)
	}
}

func TestOverdueReturnsUnpaidPastDueEarliestFirst(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, _ := seedClinicFixtures(t, db)
	svc := newTestBillingService(db)

	create := func(dueDate string) *models.Invoice {
		t.Helper()
		invoice, err := svc.CreateInvoice(CreateInvoiceInput{
			PatientID: patient.ID, PaymentMethod: "CARTE", DueDate: dueDate,
		})
		if err != nil {
			t.Fatalf("create invoice due %s: %v", dueDate, err)
		}
		return invoice
	}

	late := create("2025-03-01")
	later := create("2025-02-15")
	paid := create("2025-01-01")
	create("2025-06-01") // not yet due

	if err := svc.MarkPaid(paid.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	overdue, err := svc.Overdue()
	if err != nil {
		t.Fatalf("overdue: %v", err)
	}
	if len(overdue) != 2 {
		t.Fatalf("overdue = %d invoices, want 2", len(overdue))
	}
	if overdue[0].ID != later.ID || overdue[1].ID != late.ID {
		t.Errorf("overdue order = [%s %s], want earliest due first", overdue[0].Number, overdue[1].Number)
	}
}

func TestDeleteInvoiceRemovesLines(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, treatment := seedClinicFixtures(t, db)
	svc := newTestBillingService(db)

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID: patient.ID, PaymentMethod: "CARTE", DueDate: "2025-04-10",
		Lines: []LineInput{{TreatmentCode: treatment.Code, Amount: 50}},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if err := svc.DeleteInvoice(invoice.ID); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}
	var lines int64
	if err := db.Model(&models.InvoiceLine{}).Where("invoice_id = ?", invoice.ID).Count(&lines).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lines != 0 {
		t.Errorf("delete left %d lines", lines)
	}
	var notFound *NotFoundError
	if _, err := svc.GetByID(invoice.ID); !errors.As(err, &notFound) {
		t.Errorf("get deleted invoice: got %v, want NotFoundError", err)
	}
}

func TestRevenueSummary(t *testing.T) {
	db := setupTestDB(t)
	patient, _, _, treatment := seedClinicFixtures(t, db)
	other := models.Treatment{Code: "EXT", Description: "Extraction", Price: 120, Category: "Chirurgie"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("second treatment: %v", err)
	}
	svc := newTestBillingService(db)

	if _, err := svc.CreateInvoice(CreateInvoiceInput{
		PatientID: patient.ID, PaymentMethod: "CARTE", DueDate: "2025-04-10",
		Lines: []LineInput{
			{TreatmentCode: treatment.Code, Amount: 50},
			{TreatmentCode: treatment.Code, Amount: 60},
			{TreatmentCode: other.Code, Amount: 120},
		},
	}); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	rows, err := svc.RevenueSummary()
	if err != nil {
		t.Fatalf("revenue summary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("summary rows = %d, want 2", len(rows))
	}
	// Ordered by treatment code: DET before EXT.
	if rows[0].TreatmentCode != treatment.Code || rows[0].Count != 2 || rows[0].Total != 110 {
		t.Errorf("DET row = %+v, want count 2 total 110", rows[0])
	}
	if rows[1].TreatmentCode != other.Code || rows[1].Count != 1 || rows[1].Total != 120 {
		t.Errorf("EXT row = %+v, want count 1 total 120", rows[1])
	}
}
