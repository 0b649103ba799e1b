package service

import (
	"strings"
	"time"

	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"
)

// UpsertSupplierInput carries supplier create/update fields
type UpsertSupplierInput struct {
	ShopID  uint
	Name    string
	Phone   string
	Address string
	Notes   string
}

// SupplierService manages the vendor book
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// List fetches a supplier page
func (s *SupplierService) List(filter repository.SupplierListFilter) ([]models.Supplier, int64, error) {
	return s.supplierRepo.List(filter)
}

// Get fetches a supplier
func (s *SupplierService) Get(shopID, id uint) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}

// Create adds a supplier
func (s *SupplierService) Create(input UpsertSupplierInput) (*models.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if input.ShopID == 0 || name == "" {
		return nil, ErrSupplierNotFound
	}
	now := time.Now()
	supplier := &models.Supplier{
		ShopID:    input.ShopID,
		Name:      name,
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update rewrites a supplier
func (s *SupplierService) Update(id uint, input UpsertSupplierInput) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(input.ShopID, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		supplier.Name = name
	}
	supplier.Phone = strings.TrimSpace(input.Phone)
	supplier.Address = strings.TrimSpace(input.Address)
	supplier.Notes = input.Notes
	supplier.UpdatedAt = time.Now()
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(shopID, id uint) error {
	supplier, err := s.supplierRepo.GetByID(shopID, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return ErrSupplierNotFound
	}
	return s.supplierRepo.Delete(shopID, id)
}
