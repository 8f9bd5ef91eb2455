package model

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseTransaction records incoming stock from one supplier. It owns its
// line items: deleting the transaction deletes them with it.
type PurchaseTransaction struct {
	BaseModel
	Date       time.Time `gorm:"index;not null" json:"date"`
	Note       string    `json:"note"`
	SupplierID uuid.UUID `gorm:"type:uuid;index;not null" json:"supplier_id"`
	Supplier   *Supplier `json:"supplier,omitempty" validate:"-"`

	Items []PurchaseItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
}

// PurchaseItem is one product line within a purchase. UnitCostPrice is the
// cost at the time of purchase; MinimumSalePrice is an informational snapshot.
type PurchaseItem struct {
	BaseModel
	TransactionID    uuid.UUID `gorm:"type:uuid;index;not null" json:"transaction_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product          *Product  `json:"product,omitempty" validate:"-"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	UnitCostPrice    float64   `gorm:"not null" json:"unit_cost_price"`
	MinimumSalePrice float64   `json:"minimum_sale_price"`
}
