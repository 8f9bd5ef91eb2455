package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go-stockledger/internal/ledger"
	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/logger"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PurchaseItemInput is one incoming product line. Quantity is taken as given:
// the engine applies whatever the caller supplies, it does not police it.
type PurchaseItemInput struct {
	ProductID        uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity         int       `json:"quantity"`
	UnitCostPrice    float64   `json:"unit_cost_price"`
	MinimumSalePrice float64   `json:"minimum_sale_price"`
}

// PurchaseInput saves a purchase transaction. A nil ID creates, a set ID
// edits: the edit reverts every prior line-item effect before the new lines
// are applied, so the ledger never double-counts a transaction.
type PurchaseInput struct {
	ID         *uuid.UUID          `json:"id,omitempty"`
	SupplierID uuid.UUID           `json:"supplier_id" validate:"uuid_required"`
	Date       time.Time           `json:"date" validate:"required"`
	Note       string              `json:"note"`
	Items      []PurchaseItemInput `json:"items" validate:"dive"`
}

// SaleItemInput is one outgoing product line. A zero or omitted
// CustomSalePrice means "no negotiated price": the product's current minimum
// sale price is charged.
type SaleItemInput struct {
	ProductID       uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity        int       `json:"quantity"`
	CustomSalePrice float64   `json:"custom_sale_price"`
}

type SaleInput struct {
	ID         *uuid.UUID      `json:"id,omitempty"`
	CustomerID uuid.UUID       `json:"customer_id" validate:"uuid_required"`
	Date       time.Time       `json:"date" validate:"required"`
	Note       string          `json:"note"`
	Items      []SaleItemInput `json:"items" validate:"dive"`
}

type TransactionService interface {
	SavePurchase(input *PurchaseInput, userID string) (*model.PurchaseTransaction, error)
	DeletePurchase(id uuid.UUID) error
	GetPurchase(id uuid.UUID) (*model.PurchaseTransaction, error)
	GetAllPurchases() ([]model.PurchaseTransaction, error)

	SaveSale(input *SaleInput, userID string) (*model.SaleTransaction, error)
	DeleteSale(id uuid.UUID) error
	GetSale(id uuid.UUID) (*model.SaleTransaction, error)
	GetAllSales() ([]model.SaleTransaction, error)
}

type transactionService struct {
	store repository.Store
	wsHub *ws.Hub
}

func NewTransactionService(store repository.Store, hub *ws.Hub) TransactionService {
	return &transactionService{store: store, wsHub: hub}
}

func (s *transactionService) SavePurchase(input *PurchaseInput, userID string) (*model.PurchaseTransaction, error) {
	if fieldErrors := validator.ValidateStruct(input); len(fieldErrors) > 0 {
		return nil, firstValidationError(fieldErrors)
	}

	var saved *model.PurchaseTransaction
	touched := map[uuid.UUID]model.Product{}

	err := s.store.Atomic(func(tx repository.Store) error {
		if _, err := tx.Contacts().FindSupplierByID(input.SupplierID); err != nil {
			return fmt.Errorf("supplier %s: %w", input.SupplierID, err)
		}

		var transaction *model.PurchaseTransaction
		if input.ID != nil {
			// EDIT: back every prior line item out of the ledger, then clear
			// the items so the new set starts from a clean slate.
			existing, err := tx.Purchases().FindByID(*input.ID)
			if err != nil {
				return fmt.Errorf("purchase %s: %w", *input.ID, err)
			}
			for _, item := range existing.Items {
				product, err := tx.Products().FindByID(item.ProductID)
				if err != nil {
					return fmt.Errorf("product %s: %w", item.ProductID, err)
				}
				ledger.RevertPurchase(product, item.Quantity, item.UnitCostPrice)
				if err := tx.Products().Save(product); err != nil {
					return err
				}
				touched[product.ID] = *product
			}
			if err := tx.Purchases().DeleteItems(existing.ID); err != nil {
				return err
			}
			existing.Date = input.Date
			existing.Note = input.Note
			existing.SupplierID = input.SupplierID
			existing.UpdatedBy = userID
			if err := tx.Purchases().Update(existing); err != nil {
				return err
			}
			transaction = existing
		} else {
			transaction = &model.PurchaseTransaction{
				Date:       input.Date,
				Note:       input.Note,
				SupplierID: input.SupplierID,
			}
			transaction.CreatedBy = userID
			transaction.UpdatedBy = userID
			if err := tx.Purchases().Create(transaction); err != nil {
				return err
			}
		}

		for _, in := range input.Items {
			product, err := tx.Products().FindByID(in.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", in.ProductID, err)
			}
			ledger.ApplyPurchase(product, in.Quantity, in.UnitCostPrice)
			if err := tx.Products().Save(product); err != nil {
				return err
			}
			touched[product.ID] = *product

			item := &model.PurchaseItem{
				TransactionID:    transaction.ID,
				ProductID:        in.ProductID,
				Quantity:         in.Quantity,
				UnitCostPrice:    in.UnitCostPrice,
				MinimumSalePrice: in.MinimumSalePrice,
			}
			item.CreatedBy = userID
			item.UpdatedBy = userID
			if err := tx.Purchases().CreateItem(item); err != nil {
				return err
			}
		}

		reloaded, err := tx.Purchases().FindByID(transaction.ID)
		if err != nil {
			return err
		}
		saved = reloaded
		return nil
	})
	if err != nil {
		logger.LogError("service", "SavePurchase", err, logrus.Fields{"supplier_id": input.SupplierID})
		return nil, err
	}

	s.broadcastStockUpdate("purchase_saved", touched)
	return saved, nil
}

func (s *transactionService) DeletePurchase(id uuid.UUID) error {
	touched := map[uuid.UUID]model.Product{}

	err := s.store.Atomic(func(tx repository.Store) error {
		existing, err := tx.Purchases().FindByID(id)
		if err != nil {
			return fmt.Errorf("purchase %s: %w", id, err)
		}
		for _, item := range existing.Items {
			product, err := tx.Products().FindByID(item.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", item.ProductID, err)
			}
			ledger.RevertPurchase(product, item.Quantity, item.UnitCostPrice)
			if err := tx.Products().Save(product); err != nil {
				return err
			}
			touched[product.ID] = *product
		}
		return tx.Purchases().Delete(id)
	})
	if err != nil {
		logger.LogError("service", "DeletePurchase", err, logrus.Fields{"transaction_id": id})
		return err
	}

	s.broadcastStockUpdate("purchase_deleted", touched)
	return nil
}

func (s *transactionService) GetPurchase(id uuid.UUID) (*model.PurchaseTransaction, error) {
	return s.store.Purchases().FindByID(id)
}

func (s *transactionService) GetAllPurchases() ([]model.PurchaseTransaction, error) {
	return s.store.Purchases().FindAll()
}

func (s *transactionService) SaveSale(input *SaleInput, userID string) (*model.SaleTransaction, error) {
	if fieldErrors := validator.ValidateStruct(input); len(fieldErrors) > 0 {
		return nil, firstValidationError(fieldErrors)
	}

	var saved *model.SaleTransaction
	touched := map[uuid.UUID]model.Product{}

	err := s.store.Atomic(func(tx repository.Store) error {
		if _, err := tx.Contacts().FindCustomerByID(input.CustomerID); err != nil {
			return fmt.Errorf("customer %s: %w", input.CustomerID, err)
		}

		var transaction *model.SaleTransaction
		if input.ID != nil {
			existing, err := tx.Sales().FindByID(*input.ID)
			if err != nil {
				return fmt.Errorf("sale %s: %w", *input.ID, err)
			}
			for _, item := range existing.Items {
				product, err := tx.Products().FindByID(item.ProductID)
				if err != nil {
					return fmt.Errorf("product %s: %w", item.ProductID, err)
				}
				ledger.RevertSale(product, item.Quantity)
				if err := tx.Products().Save(product); err != nil {
					return err
				}
				touched[product.ID] = *product
			}
			if err := tx.Sales().DeleteItems(existing.ID); err != nil {
				return err
			}
			existing.Date = input.Date
			existing.Note = input.Note
			existing.CustomerID = input.CustomerID
			existing.UpdatedBy = userID
			if err := tx.Sales().Update(existing); err != nil {
				return err
			}
			transaction = existing
		} else {
			transaction = &model.SaleTransaction{
				Date:       input.Date,
				Note:       input.Note,
				CustomerID: input.CustomerID,
			}
			transaction.CreatedBy = userID
			transaction.UpdatedBy = userID
			if err := tx.Sales().Create(transaction); err != nil {
				return err
			}
		}

		for _, in := range input.Items {
			product, err := tx.Products().FindByID(in.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", in.ProductID, err)
			}
			ledger.ApplySale(product, in.Quantity)
			if err := tx.Products().Save(product); err != nil {
				return err
			}
			touched[product.ID] = *product

			// Resolve the charged price: zero means no negotiated price, so
			// the product's list price applies.
			salePrice := in.CustomSalePrice
			if salePrice == 0 {
				salePrice = product.MinimumSalePrice
			}

			item := &model.SaleItem{
				TransactionID:    transaction.ID,
				ProductID:        in.ProductID,
				Quantity:         in.Quantity,
				CustomSalePrice:  salePrice,
				MinimumSalePrice: product.MinimumSalePrice,
			}
			item.CreatedBy = userID
			item.UpdatedBy = userID
			if err := tx.Sales().CreateItem(item); err != nil {
				return err
			}
		}

		reloaded, err := tx.Sales().FindByID(transaction.ID)
		if err != nil {
			return err
		}
		saved = reloaded
		return nil
	})
	if err != nil {
		logger.LogError("service", "SaveSale", err, logrus.Fields{"customer_id": input.CustomerID})
		return nil, err
	}

	s.broadcastStockUpdate("sale_saved", touched)
	return saved, nil
}

func (s *transactionService) DeleteSale(id uuid.UUID) error {
	touched := map[uuid.UUID]model.Product{}

	err := s.store.Atomic(func(tx repository.Store) error {
		existing, err := tx.Sales().FindByID(id)
		if err != nil {
			return fmt.Errorf("sale %s: %w", id, err)
		}
		for _, item := range existing.Items {
			product, err := tx.Products().FindByID(item.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", item.ProductID, err)
			}
			ledger.RevertSale(product, item.Quantity)
			if err := tx.Products().Save(product); err != nil {
				return err
			}
			touched[product.ID] = *product
		}
		return tx.Sales().Delete(id)
	})
	if err != nil {
		logger.LogError("service", "DeleteSale", err, logrus.Fields{"transaction_id": id})
		return err
	}

	s.broadcastStockUpdate("sale_deleted", touched)
	return nil
}

func (s *transactionService) GetSale(id uuid.UUID) (*model.SaleTransaction, error) {
	return s.store.Sales().FindByID(id)
}

func (s *transactionService) GetAllSales() ([]model.SaleTransaction, error) {
	return s.store.Sales().FindAll()
}

// broadcastStockUpdate pushes the post-commit ledger state of every product
// the operation touched. Fired only after the store reports success, so
// clients never see rolled-back numbers.
func (s *transactionService) broadcastStockUpdate(action string, touched map[uuid.UUID]model.Product) {
	if s.wsHub == nil || len(touched) == 0 {
		return
	}
	go func() {
		products := make([]map[string]interface{}, 0, len(touched))
		for _, p := range touched {
			products = append(products, map[string]interface{}{
				"id":             p.ID,
				"name":           p.Name,
				"stock_quantity": p.StockQuantity,
				"cost_price":     p.CostPrice,
				"stock_value":    p.StockValue,
			})
		}
		payload := map[string]interface{}{
			"type":     "stock_update",
			"action":   action,
			"products": products,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Publish(msg)
	}()
}
