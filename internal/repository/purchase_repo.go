package repository

import (
	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(transaction *model.PurchaseTransaction) error
	Update(transaction *model.PurchaseTransaction) error
	FindByID(id uuid.UUID) (*model.PurchaseTransaction, error)
	FindAll() ([]model.PurchaseTransaction, error)
	CreateItem(item *model.PurchaseItem) error
	DeleteItems(transactionID uuid.UUID) error
	Delete(id uuid.UUID) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(transaction *model.PurchaseTransaction) error {
	return r.db.Create(transaction).Error
}

// Update touches the header fields only. Line items are managed explicitly by
// the reconciliation flow (delete-all then recreate), never saved through the
// association.
func (r *purchaseRepo) Update(transaction *model.PurchaseTransaction) error {
	return r.db.Model(&model.PurchaseTransaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"date":        transaction.Date,
			"note":        transaction.Note,
			"supplier_id": transaction.SupplierID,
			"updated_by":  transaction.UpdatedBy,
		}).Error
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.PurchaseTransaction, error) {
	var transaction model.PurchaseTransaction
	err := r.db.Preload("Supplier").Preload("Items").Preload("Items.Product").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &transaction, nil
}

func (r *purchaseRepo) FindAll() ([]model.PurchaseTransaction, error) {
	var transactions []model.PurchaseTransaction
	err := r.db.Preload("Supplier").Preload("Items").Preload("Items.Product").
		Order("date DESC").Find(&transactions).Error
	return transactions, err
}

func (r *purchaseRepo) CreateItem(item *model.PurchaseItem) error {
	return r.db.Create(item).Error
}

func (r *purchaseRepo) DeleteItems(transactionID uuid.UUID) error {
	return r.db.Where("transaction_id = ?", transactionID).Delete(&model.PurchaseItem{}).Error
}

// Delete removes the transaction and its line items. Items are deleted
// explicitly because soft deletes bypass the database-level cascade.
func (r *purchaseRepo) Delete(id uuid.UUID) error {
	if err := r.DeleteItems(id); err != nil {
		return err
	}
	return r.db.Delete(&model.PurchaseTransaction{}, "id = ?", id).Error
}
