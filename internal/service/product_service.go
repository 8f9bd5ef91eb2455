package service

import (
	"fmt"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/logger"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProductInput creates a product. Initial cost and stock are accepted here
// once; every later change to them goes through purchase/sale reconciliation.
type ProductInput struct {
	Name             string  `json:"name" validate:"required"`
	CostPrice        float64 `json:"cost_price"`
	StockQuantity    int     `json:"stock_quantity"`
	MinimumSalePrice float64 `json:"minimum_sale_price"`
}

// ProductUpdateInput edits the user-editable fields. Cost, stock, and stock
// value are deliberately absent: those belong to the ledger.
type ProductUpdateInput struct {
	Name             string  `json:"name" validate:"required"`
	MinimumSalePrice float64 `json:"minimum_sale_price"`
}

type ProductService interface {
	Create(input *ProductInput, userID string) (*model.Product, error)
	Update(id uuid.UUID, input *ProductUpdateInput, userID string) (*model.Product, error)
	GetAll() ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
	Delete(id uuid.UUID) error
}

type productService struct {
	store repository.Store
}

func NewProductService(store repository.Store) ProductService {
	return &productService{store: store}
}

func (s *productService) Create(input *ProductInput, userID string) (*model.Product, error) {
	if fieldErrors := validator.ValidateStruct(input); len(fieldErrors) > 0 {
		return nil, firstValidationError(fieldErrors)
	}

	product := &model.Product{
		Name:             input.Name,
		CostPrice:        input.CostPrice,
		StockQuantity:    input.StockQuantity,
		StockValue:       input.CostPrice * float64(input.StockQuantity),
		MinimumSalePrice: input.MinimumSalePrice,
	}
	product.CreatedBy = userID
	product.UpdatedBy = userID

	if err := s.store.Products().Create(product); err != nil {
		logger.LogError("service", "CreateProduct", err, logrus.Fields{"name": input.Name})
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(id uuid.UUID, input *ProductUpdateInput, userID string) (*model.Product, error) {
	if fieldErrors := validator.ValidateStruct(input); len(fieldErrors) > 0 {
		return nil, firstValidationError(fieldErrors)
	}

	var updated *model.Product
	err := s.store.Atomic(func(tx repository.Store) error {
		product, err := tx.Products().FindByID(id)
		if err != nil {
			return fmt.Errorf("product %s: %w", id, err)
		}
		product.Name = input.Name
		product.MinimumSalePrice = input.MinimumSalePrice
		product.UpdatedBy = userID
		if err := tx.Products().Save(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		logger.LogError("service", "UpdateProduct", err, logrus.Fields{"product_id": id})
		return nil, err
	}
	return updated, nil
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.store.Products().FindAll()
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	return s.store.Products().FindByID(id)
}

// Delete removes a product with no transaction history. A product still
// referenced by line items is refused so past transactions stay coherent.
func (s *productService) Delete(id uuid.UUID) error {
	err := s.store.Atomic(func(tx repository.Store) error {
		if _, err := tx.Products().FindByID(id); err != nil {
			return fmt.Errorf("product %s: %w", id, err)
		}
		inUse, err := tx.Products().HasLineItems(id)
		if err != nil {
			return err
		}
		if inUse {
			return ErrProductInUse
		}
		return tx.Products().Delete(id)
	})
	if err != nil {
		logger.LogError("service", "DeleteProduct", err, logrus.Fields{"product_id": id})
	}
	return err
}
