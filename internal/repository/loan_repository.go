package repository

import (
	"errors"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// LoanRepository is the loan data access interface
type LoanRepository interface {
	Create(loan *models.Loan, installments []models.LoanInstallment) error
	GetByID(shopID, id uint) (*models.Loan, error)
	List(filter LoanListFilter) ([]models.Loan, int64, error)
	Update(loan *models.Loan) error
	UpdateInstallment(installment *models.LoanInstallment) error
	ListDueInstallments(before time.Time) ([]models.LoanInstallment, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) LoanRepository
}

// GormLoanRepository is the GORM implementation
type GormLoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a loan repository
func NewLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormLoanRepository) WithTx(tx *gorm.DB) LoanRepository {
	if tx == nil {
		return r
	}
	return &GormLoanRepository{db: tx}
}

// Transaction runs fn inside a database transaction
func (r *GormLoanRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create inserts a loan with its installment schedule
func (r *GormLoanRepository) Create(loan *models.Loan, installments []models.LoanInstallment) error {
	if err := r.db.Create(loan).Error; err != nil {
		return err
	}
	if len(installments) == 0 {
		return nil
	}
	for i := range installments {
		installments[i].LoanID = loan.ID
	}
	return r.db.Create(&installments).Error
}

// GetByID fetches a shop's loan with its schedule
func (r *GormLoanRepository) GetByID(shopID, id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.Where("shop_id = ?", shopID).
		Preload("Customer").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq_no ASC")
		}).
		First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loan, nil
}

// List fetches a loan page
func (r *GormLoanRepository) List(filter LoanListFilter) ([]models.Loan, int64, error) {
	query := r.db.Model(&models.Loan{}).
		Where("shop_id = ?", filter.ShopID).
		Preload("Customer")
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var loans []models.Loan
	if err := query.Order("start_date DESC, id DESC").Find(&loans).Error; err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

// Update saves a loan
func (r *GormLoanRepository) Update(loan *models.Loan) error {
	return r.db.Save(loan).Error
}

// UpdateInstallment saves an installment row
func (r *GormLoanRepository) UpdateInstallment(installment *models.LoanInstallment) error {
	return r.db.Save(installment).Error
}

// ListDueInstallments fetches unsettled installments due before the
// cutoff, for the reminder worker
func (r *GormLoanRepository) ListDueInstallments(before time.Time) ([]models.LoanInstallment, error) {
	var installments []models.LoanInstallment
	if err := r.db.
		Preload("Loan").
		Preload("Loan.Customer").
		Joins("JOIN loans ON loans.id = loan_installments.loan_id AND loans.status = ? AND loans.deleted_at IS NULL",
			constants.LoanStatusActive).
		Where("loan_installments.due_date < ? AND loan_installments.status IN ?",
			before, []string{constants.InstallmentStatusPending, constants.InstallmentStatusPartial}).
		Order("loan_installments.due_date ASC").
		Find(&installments).Error; err != nil {
		return nil, err
	}
	return installments, nil
}
