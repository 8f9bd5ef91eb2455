package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository/memory"
	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	h := NewTransactionHandler(service.NewTransactionService(store, nil))

	app := fiber.New()
	app.Post("/transactions/purchases", h.CreatePurchase)
	app.Put("/transactions/purchases/:id", h.UpdatePurchase)
	app.Delete("/transactions/purchases/:id", h.DeletePurchase)
	app.Get("/transactions/purchases", h.GetPurchases)
	app.Get("/transactions/purchases/:id", h.GetPurchase)
	app.Post("/transactions/sales", h.CreateSale)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func seedPurchaseFixtures(t *testing.T, store *memory.Store) (*model.Product, *model.Supplier) {
	t.Helper()
	product := &model.Product{Name: "Widget"}
	if err := store.Products().Create(product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	supplier := &model.Supplier{Contact: model.Contact{Name: "Acme"}}
	if err := store.Contacts().CreateSupplier(supplier); err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return product, supplier
}

func TestCreatePurchaseEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	product, supplier := seedPurchaseFixtures(t, store)

	resp := postJSON(t, app, "/transactions/purchases", fiber.Map{
		"supplier_id": supplier.ID,
		"date":        time.Now().Format(time.RFC3339),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 10, "unit_cost_price": 100},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	reloaded, err := store.Products().FindByID(product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.StockQuantity != 10 || reloaded.CostPrice != 100 {
		t.Errorf("ledger after purchase = qty %d cost %v, want 10 and 100",
			reloaded.StockQuantity, reloaded.CostPrice)
	}
}

func TestCreatePurchaseRejectsInvalidBody(t *testing.T) {
	app, _ := newTestApp(t)

	req, _ := http.NewRequest(http.MethodPost, "/transactions/purchases", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreatePurchaseMissingSupplierIs400(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/transactions/purchases", fiber.Map{
		"date": time.Now().Format(time.RFC3339),
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreatePurchaseUnknownProductIs404(t *testing.T) {
	app, store := newTestApp(t)
	_, supplier := seedPurchaseFixtures(t, store)

	resp := postJSON(t, app, "/transactions/purchases", fiber.Map{
		"supplier_id": supplier.ID,
		"date":        time.Now().Format(time.RFC3339),
		"items": []fiber.Map{
			{"product_id": uuid.New(), "quantity": 1, "unit_cost_price": 10},
		},
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetPurchaseNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/transactions/purchases/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateSaleEndpoint(t *testing.T) {
	app, store := newTestApp(t)

	product := &model.Product{Name: "Widget", CostPrice: 100, StockQuantity: 10, StockValue: 1000, MinimumSalePrice: 150}
	if err := store.Products().Create(product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	customer := &model.Customer{Contact: model.Contact{Name: "Bob"}}
	if err := store.Contacts().CreateCustomer(customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	resp := postJSON(t, app, "/transactions/sales", fiber.Map{
		"customer_id": customer.ID,
		"date":        time.Now().Format(time.RFC3339),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 4},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	reloaded, err := store.Products().FindByID(product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.StockQuantity != 6 {
		t.Errorf("stock after sale = %d, want 6", reloaded.StockQuantity)
	}
}
