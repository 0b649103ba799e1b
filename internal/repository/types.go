package repository

import "time"

// ProductListFilter narrows product list queries
type ProductListFilter struct {
	Page       int
	PageSize   int
	ShopID     uint
	Search     string
	Brand      string
	OnlyActive bool
	WithStock  bool
}

// InventoryListFilter narrows inventory unit list queries
type InventoryListFilter struct {
	Page      int
	PageSize  int
	ShopID    uint
	ProductID uint
	Status    string
	IMEI      string
}

// SaleListFilter narrows sale list queries
type SaleListFilter struct {
	Page          int
	PageSize      int
	ShopID        uint
	SellerID      uint
	CustomerID    uint
	Status        string
	PaymentMethod string
	InvoiceNo     string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// PaymentListFilter narrows payment list queries
type PaymentListFilter struct {
	Page     int
	PageSize int
	ShopID   uint
	SaleID   uint
	Method   string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// PurchaseListFilter narrows purchase list queries
type PurchaseListFilter struct {
	Page       int
	PageSize   int
	ShopID     uint
	SupplierID uint
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// CustomerListFilter narrows customer list queries
type CustomerListFilter struct {
	Page     int
	PageSize int
	ShopID   uint
	Search   string
}

// SupplierListFilter narrows supplier list queries
type SupplierListFilter struct {
	Page     int
	PageSize int
	ShopID   uint
	Search   string
}

// LoanListFilter narrows loan list queries
type LoanListFilter struct {
	Page       int
	PageSize   int
	ShopID     uint
	CustomerID uint
	Status     string
}

// AuditLogListFilter narrows audit log list queries
type AuditLogListFilter struct {
	Page       int
	PageSize   int
	ShopID     uint
	UserID     uint
	Action     string
	EntityType string
	DateFrom   *time.Time
	DateTo     *time.Time
}
