package model

import (
	"time"

	"github.com/google/uuid"
)

// SaleTransaction records outgoing stock to one customer. Sales affect
// quantity only; the product cost price is never touched by a sale.
type SaleTransaction struct {
	BaseModel
	Date       time.Time `gorm:"index;not null" json:"date"`
	Note       string    `json:"note"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty" validate:"-"`

	Items []SaleItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
}

// SaleItem is one product line within a sale. CustomSalePrice is the unit
// price actually charged (resolved at save time); MinimumSalePrice snapshots
// the product's list price so negotiated discounts stay visible.
type SaleItem struct {
	BaseModel
	TransactionID    uuid.UUID `gorm:"type:uuid;index;not null" json:"transaction_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product          *Product  `json:"product,omitempty" validate:"-"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	CustomSalePrice  float64   `gorm:"not null" json:"custom_sale_price"`
	MinimumSalePrice float64   `json:"minimum_sale_price"`
}
