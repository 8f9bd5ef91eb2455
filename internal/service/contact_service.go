package service

import (
	"fmt"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
)

// ContactInput covers both supplier and customer forms.
type ContactInput struct {
	Name        string `json:"name" validate:"required"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phone_number"`
}

type ContactService interface {
	SaveSupplier(id *uuid.UUID, input *ContactInput, userID string) (*model.Supplier, error)
	GetAllSuppliers() ([]model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error

	SaveCustomer(id *uuid.UUID, input *ContactInput, userID string) (*model.Customer, error)
	GetAllCustomers() ([]model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
}

type contactService struct {
	store repository.Store
}

func NewContactService(store repository.Store) ContactService {
	return &contactService{store: store}
}

func (s *contactService) SaveSupplier(id *uuid.UUID, input *ContactInput, userID string) (*model.Supplier, error) {
	if fieldErrors := validator.ValidateStruct(input); len(fieldErrors) > 0 {
		return nil, firstValidationError(fieldErrors)
	}

	contacts := s.store.Contacts()
	if id == nil {
		supplier := &model.Supplier{Contact: model.Contact(*input)}
		supplier.CreatedBy = userID
		supplier.UpdatedBy = userID
		if err := contacts.CreateSupplier(supplier); err != nil {
			return nil, err
		}
		return supplier, nil
	}

	supplier, err := contacts.FindSupplierByID(*id)
	if err != nil {
		return nil, fmt.Errorf("supplier %s: %w", *id, err)
	}
	supplier.Contact = model.Contact(*input)
	supplier.UpdatedBy = userID
	if err := contacts.SaveSupplier(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *contactService) GetAllSuppliers() ([]model.Supplier, error) {
	return s.store.Contacts().FindAllSuppliers()
}

func (s *contactService) DeleteSupplier(id uuid.UUID) error {
	if _, err := s.store.Contacts().FindSupplierByID(id); err != nil {
		return fmt.Errorf("supplier %s: %w", id, err)
	}
	return s.store.Contacts().DeleteSupplier(id)
}

func (s *contactService) SaveCustomer(id *uuid.UUID, input *ContactInput, userID string) (*model.Customer, error) {
	if fieldErrors := validator.ValidateStruct(input); len(fieldErrors) > 0 {
		return nil, firstValidationError(fieldErrors)
	}

	contacts := s.store.Contacts()
	if id == nil {
		customer := &model.Customer{Contact: model.Contact(*input)}
		customer.CreatedBy = userID
		customer.UpdatedBy = userID
		if err := contacts.CreateCustomer(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	customer, err := contacts.FindCustomerByID(*id)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", *id, err)
	}
	customer.Contact = model.Contact(*input)
	customer.UpdatedBy = userID
	if err := contacts.SaveCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *contactService) GetAllCustomers() ([]model.Customer, error) {
	return s.store.Contacts().FindAllCustomers()
}

func (s *contactService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.store.Contacts().FindCustomerByID(id); err != nil {
		return fmt.Errorf("customer %s: %w", id, err)
	}
	return s.store.Contacts().DeleteCustomer(id)
}
