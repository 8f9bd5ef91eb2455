package repository

import (
	"errors"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle in the Store interface. Atomic maps straight
// onto db.Transaction, so every repository obtained inside the callback is
// bound to the running transaction.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Products() ProductRepository   { return NewProductRepo(s.db) }
func (s *gormStore) Contacts() ContactRepository   { return NewContactRepo(s.db) }
func (s *gormStore) Purchases() PurchaseRepository { return NewPurchaseRepo(s.db) }
func (s *gormStore) Sales() SaleRepository         { return NewSaleRepo(s.db) }

func (s *gormStore) Atomic(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translateErr normalizes the gorm not-found sentinel so callers only ever
// check repository.ErrNotFound.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
