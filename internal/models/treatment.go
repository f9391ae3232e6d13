package models

// Treatment is a soin catalog entry. Line items reference it by code,
// the catalog entry itself is shared and never owned by an invoice.
type Treatment struct {
	BaseModel
	Code        string  `gorm:"uniqueIndex;size:20;not null" json:"code"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null;default:0" json:"prix"`
	Category    string  `gorm:"size:100" json:"categorie"`
}
