package model

// Contact holds the fields shared by suppliers and customers. Both entities
// embed it directly instead of going through a generic contact layer.
type Contact struct {
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Location    string `gorm:"type:varchar(255)" json:"location"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
}

// Supplier is the counterparty of purchase transactions. No business logic,
// referenced by foreign key only.
type Supplier struct {
	BaseModel
	Contact `gorm:"embedded"`

	Purchases []PurchaseTransaction `gorm:"foreignKey:SupplierID" json:"purchases,omitempty"`
}

// Customer is the counterparty of sale transactions.
type Customer struct {
	BaseModel
	Contact `gorm:"embedded"`

	Sales []SaleTransaction `gorm:"foreignKey:CustomerID" json:"sales,omitempty"`
}
