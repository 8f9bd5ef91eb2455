package repository

import (
	"time"

	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(transaction *model.SaleTransaction) error
	Update(transaction *model.SaleTransaction) error
	FindByID(id uuid.UUID) (*model.SaleTransaction, error)
	FindAll() ([]model.SaleTransaction, error)
	FindBetween(start, end time.Time) ([]model.SaleTransaction, error)
	CreateItem(item *model.SaleItem) error
	DeleteItems(transactionID uuid.UUID) error
	Delete(id uuid.UUID) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(transaction *model.SaleTransaction) error {
	return r.db.Create(transaction).Error
}

func (r *saleRepo) Update(transaction *model.SaleTransaction) error {
	return r.db.Model(&model.SaleTransaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"date":        transaction.Date,
			"note":        transaction.Note,
			"customer_id": transaction.CustomerID,
			"updated_by":  transaction.UpdatedBy,
		}).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.SaleTransaction, error) {
	var transaction model.SaleTransaction
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &transaction, nil
}

func (r *saleRepo) FindAll() ([]model.SaleTransaction, error) {
	var transactions []model.SaleTransaction
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").
		Order("date DESC").Find(&transactions).Error
	return transactions, err
}

// FindBetween returns sales with start <= date < end, items and products
// preloaded. The dashboard derives daily and monthly figures from this.
func (r *saleRepo) FindBetween(start, end time.Time) ([]model.SaleTransaction, error) {
	var transactions []model.SaleTransaction
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("date >= ? AND date < ?", start, end).
		Order("date DESC").Find(&transactions).Error
	return transactions, err
}

func (r *saleRepo) CreateItem(item *model.SaleItem) error {
	return r.db.Create(item).Error
}

func (r *saleRepo) DeleteItems(transactionID uuid.UUID) error {
	return r.db.Where("transaction_id = ?", transactionID).Delete(&model.SaleItem{}).Error
}

func (r *saleRepo) Delete(id uuid.UUID) error {
	if err := r.DeleteItems(id); err != nil {
		return err
	}
	return r.db.Delete(&model.SaleTransaction{}, "id = ?", id).Error
}
