package models

// Product represents a consumable inventory item.
type Product struct {
	BaseModel
	Name      string  `gorm:"size:150;not null" json:"nom"`
	Quantity  int     `gorm:"not null;default:0" json:"quantite"`
	Threshold int     `gorm:"not null;default:0" json:"seuil"`
	Supplier  string  `gorm:"size:150" json:"fournisseur"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null;default:0" json:"prixUnitaire"`
}
