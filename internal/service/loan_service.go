package service

import (
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateLoanInput opens an installment plan for a customer
type CreateLoanInput struct {
	ShopID           uint
	CustomerID       uint
	SaleID           *uint
	PrincipalAmount  decimal.Decimal
	InstallmentCount int
	IntervalDays     int
	StartDate        time.Time
	Notes            string
	ActorID          uint
	ClientIP         string
}

// RecordInstallmentInput applies a repayment to an installment slot
type RecordInstallmentInput struct {
	ShopID        uint
	LoanID        uint
	InstallmentID uint
	Amount        decimal.Decimal
	ActorID       uint
	ClientIP      string
}

// LoanService manages installment plans and their repayment ledger
type LoanService struct {
	loanRepo     repository.LoanRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	auditRepo    repository.AuditLogRepository
}

// NewLoanService creates a loan service
func NewLoanService(
	loanRepo repository.LoanRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	auditRepo repository.AuditLogRepository,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		auditRepo:    auditRepo,
	}
}

// List fetches a loan page
func (s *LoanService) List(filter repository.LoanListFilter) ([]models.Loan, int64, error) {
	return s.loanRepo.List(filter)
}

// Get fetches a loan with its schedule
func (s *LoanService) Get(shopID, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

// buildSchedule splits the principal into equal whole-rupee slots,
// pushing the rounding remainder onto the last installment
func buildSchedule(principal decimal.Decimal, count, intervalDays int, start time.Time, now time.Time) []models.LoanInstallment {
	per := models.RoundRupees(principal.Div(decimal.NewFromInt(int64(count))))
	installments := make([]models.LoanInstallment, 0, count)
	allocated := decimal.Zero
	for i := 1; i <= count; i++ {
		due := per
		if i == count {
			due = principal.Sub(allocated)
		} else {
			allocated = allocated.Add(per)
		}
		installments = append(installments, models.LoanInstallment{
			SeqNo:     i,
			DueDate:   start.AddDate(0, 0, intervalDays*i),
			DueAmount: models.NewMoneyFromDecimal(due),
			Status:    constants.InstallmentStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return installments
}

// Create opens a loan with an equal-split schedule
func (s *LoanService) Create(input CreateLoanInput) (*models.Loan, error) {
	if input.ShopID == 0 || input.CustomerID == 0 {
		return nil, ErrCustomerNotFound
	}
	if !input.PrincipalAmount.IsPositive() {
		return nil, ErrInvalidInstallments
	}
	if input.InstallmentCount <= 0 || input.InstallmentCount > 60 {
		return nil, ErrInvalidInstallments
	}
	if input.IntervalDays <= 0 {
		input.IntervalDays = 30
	}

	customer, err := s.customerRepo.GetByID(input.ShopID, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	if input.SaleID != nil {
		sale, err := s.saleRepo.GetByID(input.ShopID, *input.SaleID)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			return nil, ErrSaleNotFound
		}
	}

	now := time.Now()
	start := input.StartDate
	if start.IsZero() {
		start = now
	}

	installments := buildSchedule(input.PrincipalAmount, input.InstallmentCount, input.IntervalDays, start, now)
	loan := &models.Loan{
		ShopID:            input.ShopID,
		CustomerID:        input.CustomerID,
		SaleID:            input.SaleID,
		PrincipalAmount:   models.NewMoneyFromDecimal(input.PrincipalAmount),
		PaidAmount:        models.NewMoneyFromDecimal(decimal.Zero),
		RemainingAmount:   models.NewMoneyFromDecimal(input.PrincipalAmount),
		TotalInstallments: input.InstallmentCount,
		NextDueDate:       &installments[0].DueDate,
		Status:            constants.LoanStatusActive,
		Notes:             input.Notes,
		StartDate:         start,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.loanRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.loanRepo.WithTx(tx).Create(loan, installments); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Create(&models.AuditLog{
			ShopID:     input.ShopID,
			UserID:     input.ActorID,
			Action:     constants.AuditActionLoanCreated,
			EntityType: "loan",
			EntityID:   loan.ID,
			Detail: models.JSON{
				"customer_id":       input.CustomerID,
				"principal_amount":  loan.PrincipalAmount,
				"installment_count": input.InstallmentCount,
			},
			IP:        input.ClientIP,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Get(input.ShopID, loan.ID)
}

// recalcLoanAggregates refreshes the loan's repayment summary from its
// installment rows: remaining balance, settled slot count, next due
// date. The loan completes once every slot is paid.
func recalcLoanAggregates(loan *models.Loan) {
	paidCount := 0
	var nextDue *time.Time
	for i := range loan.Installments {
		installment := &loan.Installments[i]
		if installment.Status == constants.InstallmentStatusPaid {
			paidCount++
			continue
		}
		if nextDue == nil || installment.DueDate.Before(*nextDue) {
			due := installment.DueDate
			nextDue = &due
		}
	}
	loan.PaidInstallments = paidCount
	loan.RemainingAmount = models.NewMoneyFromDecimal(loan.PrincipalAmount.Decimal.Sub(loan.PaidAmount.Decimal))
	loan.NextDueDate = nextDue
	if loan.Status == constants.LoanStatusActive && len(loan.Installments) > 0 && paidCount == len(loan.Installments) {
		loan.Status = constants.LoanStatusCompleted
	}
}

// RecordInstallmentPayment applies a repayment to one slot. The slot
// goes partial or paid; the loan aggregates are refreshed and the loan
// closes once every slot is paid.
func (s *LoanService) RecordInstallmentPayment(input RecordInstallmentInput) (*models.Loan, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidPaymentValue
	}

	loan, err := s.loanRepo.GetByID(input.ShopID, input.LoanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	if loan.Status != constants.LoanStatusActive {
		return nil, ErrLoanClosed
	}

	var target *models.LoanInstallment
	for i := range loan.Installments {
		if loan.Installments[i].ID == input.InstallmentID {
			target = &loan.Installments[i]
			break
		}
	}
	if target == nil {
		return nil, ErrInstallmentNotFound
	}
	if target.Status == constants.InstallmentStatusPaid {
		return nil, ErrInvalidPaymentValue
	}

	remaining := target.DueAmount.Decimal.Sub(target.PaidAmount.Decimal)
	if input.Amount.GreaterThan(remaining) {
		return nil, ErrInvalidPaymentValue
	}

	now := time.Now()
	newPaid := target.PaidAmount.Decimal.Add(input.Amount)
	target.PaidAmount = models.NewMoneyFromDecimal(newPaid)
	if newPaid.GreaterThanOrEqual(target.DueAmount.Decimal) {
		target.Status = constants.InstallmentStatusPaid
		target.PaidAt = &now
	} else {
		target.Status = constants.InstallmentStatusPartial
	}
	target.UpdatedAt = now

	loan.PaidAmount = models.NewMoneyFromDecimal(loan.PaidAmount.Decimal.Add(input.Amount))
	recalcLoanAggregates(loan)
	loan.UpdatedAt = now

	err = s.loanRepo.Transaction(func(tx *gorm.DB) error {
		loanRepo := s.loanRepo.WithTx(tx)
		if err := loanRepo.UpdateInstallment(target); err != nil {
			return err
		}
		if err := loanRepo.Update(loan); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Create(&models.AuditLog{
			ShopID:     input.ShopID,
			UserID:     input.ActorID,
			Action:     constants.AuditActionLoanPayment,
			EntityType: "loan",
			EntityID:   loan.ID,
			Detail: models.JSON{
				"installment_id": input.InstallmentID,
				"amount":         input.Amount,
				"loan_status":    loan.Status,
			},
			IP:        input.ClientIP,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Get(input.ShopID, loan.ID)
}

// MarkDefaulted flags an active loan as defaulted
func (s *LoanService) MarkDefaulted(shopID, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	if loan.Status != constants.LoanStatusActive {
		return nil, ErrLoanClosed
	}
	loan.Status = constants.LoanStatusDefaulted
	loan.UpdatedAt = time.Now()
	if err := s.loanRepo.Update(loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// ListDueInstallments feeds the reminder worker
func (s *LoanService) ListDueInstallments(before time.Time) ([]models.LoanInstallment, error) {
	return s.loanRepo.ListDueInstallments(before)
}
