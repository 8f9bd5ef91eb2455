package repository

import "errors"

// ErrNotFound is returned when a referenced record does not exist. Services
// wrap it with context; handlers map it to 404.
var ErrNotFound = errors.New("record not found")

// Store bundles the per-entity repositories behind one persistence handle.
// Atomic runs fn against a Store whose writes either all commit or all roll
// back, which is the engine's unit-of-work boundary: a reconciliation must
// never leave the ledger mutated without its transaction record.
type Store interface {
	Products() ProductRepository
	Contacts() ContactRepository
	Purchases() PurchaseRepository
	Sales() SaleRepository
	Atomic(fn func(Store) error) error
}
