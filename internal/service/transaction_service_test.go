package service

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/repository/memory"

	"github.com/google/uuid"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func seedProduct(t *testing.T, store *memory.Store, name string, cost float64, stock int, minPrice float64) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:             name,
		CostPrice:        cost,
		StockQuantity:    stock,
		StockValue:       cost * float64(stock),
		MinimumSalePrice: minPrice,
	}
	if err := store.Products().Create(product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedSupplier(t *testing.T, store *memory.Store, name string) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{Contact: model.Contact{Name: name}}
	if err := store.Contacts().CreateSupplier(supplier); err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return supplier
}

func seedCustomer(t *testing.T, store *memory.Store, name string) *model.Customer {
	t.Helper()
	customer := &model.Customer{Contact: model.Contact{Name: name}}
	if err := store.Contacts().CreateCustomer(customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func mustGetProduct(t *testing.T, store *memory.Store, id uuid.UUID) *model.Product {
	t.Helper()
	product, err := store.Products().FindByID(id)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product
}

func checkLedger(t *testing.T, p *model.Product, wantCost float64, wantStock int, wantValue float64) {
	t.Helper()
	if !almostEqual(p.CostPrice, wantCost) {
		t.Errorf("cost price = %v, want %v", p.CostPrice, wantCost)
	}
	if p.StockQuantity != wantStock {
		t.Errorf("stock quantity = %d, want %d", p.StockQuantity, wantStock)
	}
	if !almostEqual(p.StockValue, wantValue) {
		t.Errorf("stock value = %v, want %v", p.StockValue, wantValue)
	}
}

func TestSavePurchaseIntoEmptyStock(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 0, 0, 0)
	supplier := seedSupplier(t, store, "Acme")

	saved, err := svc.SavePurchase(&PurchaseInput{
		SupplierID: supplier.ID,
		Date:       time.Now(),
		Items: []PurchaseItemInput{
			{ProductID: product.ID, Quantity: 10, UnitCostPrice: 100, MinimumSalePrice: 150},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("SavePurchase: %v", err)
	}
	if len(saved.Items) != 1 {
		t.Fatalf("saved items = %d, want 1", len(saved.Items))
	}

	checkLedger(t, mustGetProduct(t, store, product.ID), 100, 10, 1000)
}

func TestSavePurchaseWeightedAverage(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 0, 0, 0)
	supplier := seedSupplier(t, store, "Acme")

	for _, in := range []PurchaseItemInput{
		{ProductID: product.ID, Quantity: 10, UnitCostPrice: 100},
		{ProductID: product.ID, Quantity: 10, UnitCostPrice: 200},
	} {
		if _, err := svc.SavePurchase(&PurchaseInput{
			SupplierID: supplier.ID,
			Date:       time.Now(),
			Items:      []PurchaseItemInput{in},
		}, "tester"); err != nil {
			t.Fatalf("SavePurchase: %v", err)
		}
	}

	checkLedger(t, mustGetProduct(t, store, product.ID), 150, 20, 3000)
}

func TestSaveSaleReducesStockNotCost(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 150, 20, 160)
	customer := seedCustomer(t, store, "Bob")

	saved, err := svc.SaveSale(&SaleInput{
		CustomerID: customer.ID,
		Date:       time.Now(),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 5, CustomSalePrice: 180},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("SaveSale: %v", err)
	}
	if got := saved.Items[0].CustomSalePrice; !almostEqual(got, 180) {
		t.Errorf("charged price = %v, want 180", got)
	}

	checkLedger(t, mustGetProduct(t, store, product.ID), 150, 15, 2250)
}

func TestSaveSaleFallsBackToMinimumPrice(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 100, 10, 140)
	customer := seedCustomer(t, store, "Bob")

	saved, err := svc.SaveSale(&SaleInput{
		CustomerID: customer.ID,
		Date:       time.Now(),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 2},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("SaveSale: %v", err)
	}
	item := saved.Items[0]
	if !almostEqual(item.CustomSalePrice, 140) {
		t.Errorf("charged price = %v, want minimum sale price 140", item.CustomSalePrice)
	}
	if !almostEqual(item.MinimumSalePrice, 140) {
		t.Errorf("minimum sale price snapshot = %v, want 140", item.MinimumSalePrice)
	}
}

func TestSaveSaleAllowsNegativeStock(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 40, 2, 60)
	customer := seedCustomer(t, store, "Bob")

	if _, err := svc.SaveSale(&SaleInput{
		CustomerID: customer.ID,
		Date:       time.Now(),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 5},
		},
	}, "tester"); err != nil {
		t.Fatalf("SaveSale: %v", err)
	}

	checkLedger(t, mustGetProduct(t, store, product.ID), 40, -3, -120)
}

func TestEditPurchaseWithIdenticalItemsIsNoOp(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 0, 0, 0)
	supplier := seedSupplier(t, store, "Acme")

	items := []PurchaseItemInput{
		{ProductID: product.ID, Quantity: 10, UnitCostPrice: 100},
	}
	saved, err := svc.SavePurchase(&PurchaseInput{
		SupplierID: supplier.ID,
		Date:       time.Now(),
		Items:      items,
	}, "tester")
	if err != nil {
		t.Fatalf("SavePurchase: %v", err)
	}
	before := mustGetProduct(t, store, product.ID)

	if _, err := svc.SavePurchase(&PurchaseInput{
		ID:         &saved.ID,
		SupplierID: supplier.ID,
		Date:       saved.Date,
		Items:      items,
	}, "tester"); err != nil {
		t.Fatalf("edit purchase: %v", err)
	}

	checkLedger(t, mustGetProduct(t, store, product.ID), before.CostPrice, before.StockQuantity, before.StockValue)
}

func TestEditPurchaseRecomputesLedger(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 0, 0, 0)
	supplier := seedSupplier(t, store, "Acme")

	saved, err := svc.SavePurchase(&PurchaseInput{
		SupplierID: supplier.ID,
		Date:       time.Now(),
		Items: []PurchaseItemInput{
			{ProductID: product.ID, Quantity: 10, UnitCostPrice: 100},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("SavePurchase: %v", err)
	}

	if _, err := svc.SavePurchase(&PurchaseInput{
		ID:         &saved.ID,
		SupplierID: supplier.ID,
		Date:       saved.Date,
		Items: []PurchaseItemInput{
			{ProductID: product.ID, Quantity: 5, UnitCostPrice: 100},
		},
	}, "tester"); err != nil {
		t.Fatalf("edit purchase: %v", err)
	}

	checkLedger(t, mustGetProduct(t, store, product.ID), 100, 5, 500)

	reloaded, err := store.Purchases().FindByID(saved.ID)
	if err != nil {
		t.Fatalf("reload purchase: %v", err)
	}
	if len(reloaded.Items) != 1 || reloaded.Items[0].Quantity != 5 {
		t.Errorf("edited purchase items = %+v, want a single line of 5", reloaded.Items)
	}
}

func TestEditSaleRevertsThenReapplies(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 100, 10, 120)
	customer := seedCustomer(t, store, "Bob")

	saved, err := svc.SaveSale(&SaleInput{
		CustomerID: customer.ID,
		Date:       time.Now(),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 4},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("SaveSale: %v", err)
	}
	checkLedger(t, mustGetProduct(t, store, product.ID), 100, 6, 600)

	if _, err := svc.SaveSale(&SaleInput{
		ID:         &saved.ID,
		CustomerID: customer.ID,
		Date:       saved.Date,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1},
		},
	}, "tester"); err != nil {
		t.Fatalf("edit sale: %v", err)
	}

	// The original 4 units come back before the new single unit goes out.
	checkLedger(t, mustGetProduct(t, store, product.ID), 100, 9, 900)

	reloaded, err := store.Sales().FindByID(saved.ID)
	if err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if len(reloaded.Items) != 1 || reloaded.Items[0].Quantity != 1 {
		t.Errorf("edited sale items = %+v, want a single line of 1", reloaded.Items)
	}
}

func TestDeletePurchaseRevertsLedger(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 0, 0, 0)
	supplier := seedSupplier(t, store, "Acme")

	saved, err := svc.SavePurchase(&PurchaseInput{
		SupplierID: supplier.ID,
		Date:       time.Now(),
		Items: []PurchaseItemInput{
			{ProductID: product.ID, Quantity: 10, UnitCostPrice: 100},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("SavePurchase: %v", err)
	}

	if err := svc.DeletePurchase(saved.ID); err != nil {
		t.Fatalf("DeletePurchase: %v", err)
	}

	checkLedger(t, mustGetProduct(t, store, product.ID), 0, 0, 0)
	if _, err := store.Purchases().FindByID(saved.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("deleted purchase lookup err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 100, 10, 120)
	customer := seedCustomer(t, store, "Bob")

	saved, err := svc.SaveSale(&SaleInput{
		CustomerID: customer.ID,
		Date:       time.Now(),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 4},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("SaveSale: %v", err)
	}
	checkLedger(t, mustGetProduct(t, store, product.ID), 100, 6, 600)

	if err := svc.DeleteSale(saved.ID); err != nil {
		t.Fatalf("DeleteSale: %v", err)
	}
	checkLedger(t, mustGetProduct(t, store, product.ID), 100, 10, 1000)
}

func TestSavePurchaseUnknownProductAbortsAtomically(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)
	product := seedProduct(t, store, "Widget", 0, 0, 0)
	supplier := seedSupplier(t, store, "Acme")

	_, err := svc.SavePurchase(&PurchaseInput{
		SupplierID: supplier.ID,
		Date:       time.Now(),
		Items: []PurchaseItemInput{
			{ProductID: product.ID, Quantity: 10, UnitCostPrice: 100},
			{ProductID: uuid.New(), Quantity: 3, UnitCostPrice: 50},
		},
	}, "tester")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// First line must not leak: the store swap happens only on success.
	checkLedger(t, mustGetProduct(t, store, product.ID), 0, 0, 0)
	purchases, _ := store.Purchases().FindAll()
	if len(purchases) != 0 {
		t.Errorf("purchases after aborted save = %d, want 0", len(purchases))
	}
}

func TestSavePurchaseUnknownSupplier(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)

	_, err := svc.SavePurchase(&PurchaseInput{
		SupplierID: uuid.New(),
		Date:       time.Now(),
	}, "tester")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSavePurchaseRequiresSupplierID(t *testing.T) {
	store := memory.NewStore()
	svc := NewTransactionService(store, nil)

	_, err := svc.SavePurchase(&PurchaseInput{
		Date: time.Now(),
	}, "tester")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if !strings.HasSuffix(validationErr.Field, "SupplierID") {
		t.Errorf("validation field = %q, want SupplierID", validationErr.Field)
	}
}
