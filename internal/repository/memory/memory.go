// Package memory is an in-memory repository.Store used by the test suite and
// by demo runs without a database. Atomic clones the whole state, applies the
// callback to the clone, and swaps it in only on success, giving the same
// all-or-nothing boundary the gorm store gets from db.Transaction.
package memory

import (
	"sort"
	"sync"
	"time"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"

	"github.com/google/uuid"
)

type state struct {
	products  map[uuid.UUID]model.Product
	suppliers map[uuid.UUID]model.Supplier
	customers map[uuid.UUID]model.Customer
	purchases map[uuid.UUID]model.PurchaseTransaction
	sales     map[uuid.UUID]model.SaleTransaction
}

func newState() *state {
	return &state{
		products:  make(map[uuid.UUID]model.Product),
		suppliers: make(map[uuid.UUID]model.Supplier),
		customers: make(map[uuid.UUID]model.Customer),
		purchases: make(map[uuid.UUID]model.PurchaseTransaction),
		sales:     make(map[uuid.UUID]model.SaleTransaction),
	}
}

func (st *state) clone() *state {
	clone := newState()
	for id, p := range st.products {
		clone.products[id] = p
	}
	for id, s := range st.suppliers {
		clone.suppliers[id] = s
	}
	for id, c := range st.customers {
		clone.customers[id] = c
	}
	for id, t := range st.purchases {
		t.Items = append([]model.PurchaseItem(nil), t.Items...)
		clone.purchases[id] = t
	}
	for id, t := range st.sales {
		t.Items = append([]model.SaleItem(nil), t.Items...)
		clone.sales[id] = t
	}
	return clone
}

type Store struct {
	mu    sync.Mutex
	state *state
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Products() repository.ProductRepository   { return &productRepo{s} }
func (s *Store) Contacts() repository.ContactRepository   { return &contactRepo{s} }
func (s *Store) Purchases() repository.PurchaseRepository { return &purchaseRepo{s} }
func (s *Store) Sales() repository.SaleRepository         { return &saleRepo{s} }

func (s *Store) Atomic(fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shadow := &Store{state: s.state.clone()}
	if err := fn(shadow); err != nil {
		return err
	}
	s.state = shadow.state
	return nil
}

// stamp mimics the gorm BeforeCreate hook and timestamp handling.
func stamp(base *model.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

// --- products ---

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&product.BaseModel)
	stored := *product
	stored.PurchaseItems = nil
	stored.SaleItems = nil
	r.s.state.products[product.ID] = stored
	return nil
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	products := make([]model.Product, 0, len(r.s.state.products))
	for _, p := range r.s.state.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) Save(product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	stored := *product
	stored.PurchaseItems = nil
	stored.SaleItems = nil
	r.s.state.products[product.ID] = stored
	return nil
}

func (r *productRepo) Delete(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.products, id)
	return nil
}

func (r *productRepo) HasLineItems(id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.state.purchases {
		for _, item := range t.Items {
			if item.ProductID == id {
				return true, nil
			}
		}
	}
	for _, t := range r.s.state.sales {
		for _, item := range t.Items {
			if item.ProductID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *productRepo) Totals() (*repository.InventoryTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var totals repository.InventoryTotals
	for _, p := range r.s.state.products {
		totals.TotalProducts++
		totals.TotalStock += int64(p.StockQuantity)
		totals.TotalStockValue += p.StockValue
	}
	return &totals, nil
}

// --- contacts ---

type contactRepo struct {
	s *Store
}

func (r *contactRepo) CreateSupplier(supplier *model.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&supplier.BaseModel)
	stored := *supplier
	stored.Purchases = nil
	r.s.state.suppliers[supplier.ID] = stored
	return nil
}

func (r *contactRepo) FindAllSuppliers() ([]model.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	suppliers := make([]model.Supplier, 0, len(r.s.state.suppliers))
	for _, s := range r.s.state.suppliers {
		suppliers = append(suppliers, s)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return suppliers, nil
}

func (r *contactRepo) FindSupplierByID(id uuid.UUID) (*model.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.state.suppliers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *contactRepo) SaveSupplier(supplier *model.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.suppliers[supplier.ID]; !ok {
		return repository.ErrNotFound
	}
	supplier.UpdatedAt = time.Now()
	stored := *supplier
	stored.Purchases = nil
	r.s.state.suppliers[supplier.ID] = stored
	return nil
}

func (r *contactRepo) DeleteSupplier(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.suppliers, id)
	return nil
}

func (r *contactRepo) CreateCustomer(customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&customer.BaseModel)
	stored := *customer
	stored.Sales = nil
	r.s.state.customers[customer.ID] = stored
	return nil
}

func (r *contactRepo) FindAllCustomers() ([]model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	customers := make([]model.Customer, 0, len(r.s.state.customers))
	for _, c := range r.s.state.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers, nil
}

func (r *contactRepo) FindCustomerByID(id uuid.UUID) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.state.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *contactRepo) SaveCustomer(customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.customers[customer.ID]; !ok {
		return repository.ErrNotFound
	}
	customer.UpdatedAt = time.Now()
	stored := *customer
	stored.Sales = nil
	r.s.state.customers[customer.ID] = stored
	return nil
}

func (r *contactRepo) DeleteCustomer(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.customers, id)
	return nil
}

// --- purchases ---

type purchaseRepo struct {
	s *Store
}

func (r *purchaseRepo) Create(transaction *model.PurchaseTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&transaction.BaseModel)
	stored := *transaction
	stored.Supplier = nil
	stored.Items = append([]model.PurchaseItem(nil), transaction.Items...)
	r.s.state.purchases[transaction.ID] = stored
	return nil
}

func (r *purchaseRepo) Update(transaction *model.PurchaseTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.state.purchases[transaction.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Date = transaction.Date
	stored.Note = transaction.Note
	stored.SupplierID = transaction.SupplierID
	stored.UpdatedBy = transaction.UpdatedBy
	stored.UpdatedAt = time.Now()
	r.s.state.purchases[transaction.ID] = stored
	return nil
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.PurchaseTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.purchases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := t
	out.Items = r.s.attachPurchaseProducts(t.Items)
	if supplier, ok := r.s.state.suppliers[t.SupplierID]; ok {
		out.Supplier = &supplier
	}
	return &out, nil
}

func (r *purchaseRepo) FindAll() ([]model.PurchaseTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	transactions := make([]model.PurchaseTransaction, 0, len(r.s.state.purchases))
	for _, t := range r.s.state.purchases {
		out := t
		out.Items = r.s.attachPurchaseProducts(t.Items)
		if supplier, ok := r.s.state.suppliers[t.SupplierID]; ok {
			out.Supplier = &supplier
		}
		transactions = append(transactions, out)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

func (r *purchaseRepo) CreateItem(item *model.PurchaseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.purchases[item.TransactionID]
	if !ok {
		return repository.ErrNotFound
	}
	stamp(&item.BaseModel)
	stored := *item
	stored.Product = nil
	t.Items = append(t.Items, stored)
	r.s.state.purchases[item.TransactionID] = t
	return nil
}

func (r *purchaseRepo) DeleteItems(transactionID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.purchases[transactionID]
	if !ok {
		return repository.ErrNotFound
	}
	t.Items = nil
	r.s.state.purchases[transactionID] = t
	return nil
}

func (r *purchaseRepo) Delete(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.purchases, id)
	return nil
}

// --- sales ---

type saleRepo struct {
	s *Store
}

func (r *saleRepo) Create(transaction *model.SaleTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&transaction.BaseModel)
	stored := *transaction
	stored.Customer = nil
	stored.Items = append([]model.SaleItem(nil), transaction.Items...)
	r.s.state.sales[transaction.ID] = stored
	return nil
}

func (r *saleRepo) Update(transaction *model.SaleTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.state.sales[transaction.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Date = transaction.Date
	stored.Note = transaction.Note
	stored.CustomerID = transaction.CustomerID
	stored.UpdatedBy = transaction.UpdatedBy
	stored.UpdatedAt = time.Now()
	r.s.state.sales[transaction.ID] = stored
	return nil
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.SaleTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.sales[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := t
	out.Items = r.s.attachSaleProducts(t.Items)
	if customer, ok := r.s.state.customers[t.CustomerID]; ok {
		out.Customer = &customer
	}
	return &out, nil
}

func (r *saleRepo) FindAll() ([]model.SaleTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.salesSorted(func(model.SaleTransaction) bool { return true }), nil
}

func (r *saleRepo) FindBetween(start, end time.Time) ([]model.SaleTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.salesSorted(func(t model.SaleTransaction) bool {
		return !t.Date.Before(start) && t.Date.Before(end)
	}), nil
}

func (r *saleRepo) CreateItem(item *model.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.sales[item.TransactionID]
	if !ok {
		return repository.ErrNotFound
	}
	stamp(&item.BaseModel)
	stored := *item
	stored.Product = nil
	t.Items = append(t.Items, stored)
	r.s.state.sales[item.TransactionID] = t
	return nil
}

func (r *saleRepo) DeleteItems(transactionID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.state.sales[transactionID]
	if !ok {
		return repository.ErrNotFound
	}
	t.Items = nil
	r.s.state.sales[transactionID] = t
	return nil
}

func (r *saleRepo) Delete(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.sales, id)
	return nil
}

// --- helpers (callers must hold the lock) ---

func (s *Store) attachPurchaseProducts(items []model.PurchaseItem) []model.PurchaseItem {
	out := append([]model.PurchaseItem(nil), items...)
	for i := range out {
		if p, ok := s.state.products[out[i].ProductID]; ok {
			product := p
			out[i].Product = &product
		}
	}
	return out
}

func (s *Store) attachSaleProducts(items []model.SaleItem) []model.SaleItem {
	out := append([]model.SaleItem(nil), items...)
	for i := range out {
		if p, ok := s.state.products[out[i].ProductID]; ok {
			product := p
			out[i].Product = &product
		}
	}
	return out
}

func (s *Store) salesSorted(keep func(model.SaleTransaction) bool) []model.SaleTransaction {
	var transactions []model.SaleTransaction
	for _, t := range s.state.sales {
		if !keep(t) {
			continue
		}
		out := t
		out.Items = s.attachSaleProducts(t.Items)
		if customer, ok := s.state.customers[t.CustomerID]; ok {
			out.Customer = &customer
		}
		transactions = append(transactions, out)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions
}
