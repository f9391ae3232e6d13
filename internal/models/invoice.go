package models

import "time"

// InvoiceStatus represents the statut of a facture.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "EN_ATTENTE"
	InvoicePaid    InvoiceStatus = "PAYE"
)

// Invoice represents a facture. Total must equal the sum of its line
// amounts after every committed write; all line mutations go through
// the billing service, which adjusts Total in the same transaction.
type Invoice struct {
	BaseModel
	Number        string        `gorm:"uniqueIndex;size:20;not null" json:"numeroFacture"`
	Date          time.Time     `json:"date"`
	Total         float64       `gorm:"type:decimal(10,2);not null;default:0" json:"montant"`
	Status        InvoiceStatus `gorm:"size:20;default:'EN_ATTENTE'" json:"statut"`
	PaymentMethod string        `gorm:"size:50" json:"methodPaiement"`
	DueDate       time.Time     `gorm:"index" json:"dateEcheance"`
	PatientID     string        `gorm:"size:36;index" json:"patientId"`

	Patient Patient       `gorm:"foreignKey:PatientID" json:"-"`
	Lines   []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"factureSoins"`
}

// InvoiceLine is a facture-soin: one billed treatment on an invoice.
type InvoiceLine struct {
	BaseModel
	InvoiceID     string  `gorm:"size:36;index;not null" json:"factureId"`
	TreatmentCode string  `gorm:"size:20;index;not null" json:"soinId"`
	Amount        float64 `gorm:"type:decimal(10,2);not null" json:"montant"`

	Treatment Treatment `gorm:"foreignKey:TreatmentCode;references:Code" json:"soin,omitempty"`
}

// InvoiceSequence holds the monotonic per-month counter backing invoice
// number generation. Incremented inside the invoice-create transaction.
type InvoiceSequence struct {
	Period  string `gorm:"primaryKey;size:6"`
	Counter int    `gorm:"not null;default:0"`
}
