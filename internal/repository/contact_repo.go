package repository

import (
	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository covers both supplier and customer records. They share the
// same Contact fields but live in separate tables so each transaction type
// keeps a typed foreign key.
type ContactRepository interface {
	CreateSupplier(supplier *model.Supplier) error
	FindAllSuppliers() ([]model.Supplier, error)
	FindSupplierByID(id uuid.UUID) (*model.Supplier, error)
	SaveSupplier(supplier *model.Supplier) error
	DeleteSupplier(id uuid.UUID) error

	CreateCustomer(customer *model.Customer) error
	FindAllCustomers() ([]model.Customer, error)
	FindCustomerByID(id uuid.UUID) (*model.Customer, error)
	SaveCustomer(customer *model.Customer) error
	DeleteCustomer(id uuid.UUID) error
}

type contactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db}
}

func (r *contactRepo) CreateSupplier(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *contactRepo) FindAllSuppliers() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *contactRepo) FindSupplierByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &supplier, nil
}

func (r *contactRepo) SaveSupplier(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *contactRepo) DeleteSupplier(id uuid.UUID) error {
	return r.db.Delete(&model.Supplier{}, "id = ?", id).Error
}

func (r *contactRepo) CreateCustomer(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *contactRepo) FindAllCustomers() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *contactRepo) FindCustomerByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &customer, nil
}

func (r *contactRepo) SaveCustomer(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *contactRepo) DeleteCustomer(id uuid.UUID) error {
	return r.db.Delete(&model.Customer{}, "id = ?", id).Error
}
