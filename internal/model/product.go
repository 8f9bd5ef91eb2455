package model

// Product carries the inventory ledger state for one item. CostPrice is the
// running weighted-average unit cost, and StockValue is always re-derived as
// CostPrice * StockQuantity; it is never written independently. Stock may go
// negative, there is no floor.
type Product struct {
	BaseModel
	Name             string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CostPrice        float64 `gorm:"default:0" json:"cost_price"`
	StockQuantity    int     `gorm:"default:0" json:"stock_quantity"`
	StockValue       float64 `gorm:"default:0" json:"stock_value"`
	MinimumSalePrice float64 `gorm:"default:0" json:"minimum_sale_price"`

	PurchaseItems []PurchaseItem `gorm:"foreignKey:ProductID" json:"purchase_items,omitempty"`
	SaleItems     []SaleItem     `gorm:"foreignKey:ProductID" json:"sale_items,omitempty"`
}
