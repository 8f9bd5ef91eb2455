package repository

import (
	"go-stockledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryTotals is the aggregate snapshot over all products.
type InventoryTotals struct {
	TotalProducts   int64   `json:"total_products"`
	TotalStock      int64   `json:"total_stock"`
	TotalStockValue float64 `json:"total_stock_value"`
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Save(product *model.Product) error
	Delete(id uuid.UUID) error
	HasLineItems(id uuid.UUID) (bool, error)
	Totals() (*InventoryTotals, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &product, nil
}

func (r *productRepo) Save(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// HasLineItems reports whether any purchase or sale line still references the
// product. Products with history must not be deleted out from under it.
func (r *productRepo) HasLineItems(id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&model.PurchaseItem{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&model.SaleItem{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepo) Totals() (*InventoryTotals, error) {
	var totals InventoryTotals
	if err := r.db.Model(&model.Product{}).Count(&totals.TotalProducts).Error; err != nil {
		return nil, err
	}
	row := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock_quantity), 0), COALESCE(SUM(stock_value), 0)").
		Row()
	if err := row.Scan(&totals.TotalStock, &totals.TotalStockValue); err != nil {
		return nil, err
	}
	return &totals, nil
}
