package service

import (
	"strings"
	"time"

	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"
)

// UpsertCustomerInput carries customer create/update fields
type UpsertCustomerInput struct {
	ShopID  uint
	Name    string
	Phone   string
	CNIC    string
	Address string
	Notes   string
}

// CustomerService manages the customer book
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// List fetches a customer page
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.customerRepo.List(filter)
}

// Get fetches a customer
func (s *CustomerService) Get(shopID, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// Create adds a customer
func (s *CustomerService) Create(input UpsertCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if input.ShopID == 0 || name == "" {
		return nil, ErrCustomerNotFound
	}
	now := time.Now()
	customer := &models.Customer{
		ShopID:    input.ShopID,
		Name:      name,
		Phone:     strings.TrimSpace(input.Phone),
		CNIC:      strings.TrimSpace(input.CNIC),
		Address:   strings.TrimSpace(input.Address),
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update rewrites a customer
func (s *CustomerService) Update(id uint, input UpsertCustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(input.ShopID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		customer.Name = name
	}
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.CNIC = strings.TrimSpace(input.CNIC)
	customer.Address = strings.TrimSpace(input.Address)
	customer.Notes = input.Notes
	customer.UpdatedAt = time.Now()
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(shopID, id uint) error {
	customer, err := s.customerRepo.GetByID(shopID, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	return s.customerRepo.Delete(shopID, id)
}
