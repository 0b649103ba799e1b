package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupLoanTest(t *testing.T) (*gorm.DB, *LoanService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewLoanService(
		repository.NewLoanRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewSaleRepository(db),
		repository.NewAuditLogRepository(db),
	)
	return db, svc
}

func TestCreateLoanSplitsPrincipalWithRemainderOnLast(t *testing.T) {
	db, svc := setupLoanTest(t)
	customer := seedCustomer(t, db, 1, "Ahmed Raza")

	loan, err := svc.Create(CreateLoanInput{
		ShopID:           1,
		CustomerID:       customer.ID,
		PrincipalAmount:  decimal.NewFromInt(10000),
		InstallmentCount: 3,
		IntervalDays:     30,
		ActorID:          1,
	})
	if err != nil {
		t.Fatalf("create loan failed: %v", err)
	}
	if len(loan.Installments) != 3 {
		t.Fatalf("installments want 3, got %d", len(loan.Installments))
	}

	// 10000 / 3 -> 3333, 3333, 3334
	wants := []int64{3333, 3333, 3334}
	sum := decimal.Zero
	for i, installment := range loan.Installments {
		if installment.SeqNo != i+1 {
			t.Fatalf("seq want %d, got %d", i+1, installment.SeqNo)
		}
		if !installment.DueAmount.Decimal.Equal(decimal.NewFromInt(wants[i])) {
			t.Fatalf("installment %d want %d, got %s", i+1, wants[i], installment.DueAmount)
		}
		sum = sum.Add(installment.DueAmount.Decimal)
	}
	if !sum.Equal(loan.PrincipalAmount.Decimal) {
		t.Fatalf("installments must sum to principal: %s vs %s", sum, loan.PrincipalAmount)
	}
}

func TestCreateLoanValidation(t *testing.T) {
	db, svc := setupLoanTest(t)
	customer := seedCustomer(t, db, 1, "Bilal Khan")

	if _, err := svc.Create(CreateLoanInput{
		ShopID: 1, CustomerID: customer.ID,
		PrincipalAmount:  decimal.Zero,
		InstallmentCount: 3,
	}); !errors.Is(err, ErrInvalidInstallments) {
		t.Fatalf("zero principal want ErrInvalidInstallments, got %v", err)
	}
	if _, err := svc.Create(CreateLoanInput{
		ShopID: 1, CustomerID: customer.ID,
		PrincipalAmount:  decimal.NewFromInt(1000),
		InstallmentCount: 0,
	}); !errors.Is(err, ErrInvalidInstallments) {
		t.Fatalf("zero count want ErrInvalidInstallments, got %v", err)
	}
	if _, err := svc.Create(CreateLoanInput{
		ShopID: 1, CustomerID: 999,
		PrincipalAmount:  decimal.NewFromInt(1000),
		InstallmentCount: 2,
	}); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("missing customer want ErrCustomerNotFound, got %v", err)
	}
}

func TestInstallmentPaymentLifecycle(t *testing.T) {
	db, svc := setupLoanTest(t)
	customer := seedCustomer(t, db, 1, "Imran Shah")
	loan, err := svc.Create(CreateLoanInput{
		ShopID:           1,
		CustomerID:       customer.ID,
		PrincipalAmount:  decimal.NewFromInt(6000),
		InstallmentCount: 2,
		IntervalDays:     30,
	})
	if err != nil {
		t.Fatalf("create loan failed: %v", err)
	}
	first := loan.Installments[0]

	// partial payment leaves the slot partial
	loan, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
		ShopID: 1, LoanID: loan.ID, InstallmentID: first.ID,
		Amount: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("partial payment failed: %v", err)
	}
	if loan.Installments[0].Status != constants.InstallmentStatusPartial {
		t.Fatalf("slot want partial, got %s", loan.Installments[0].Status)
	}
	if !loan.PaidAmount.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("loan paid want 1000, got %s", loan.PaidAmount)
	}

	// overpaying the remainder is rejected
	_, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
		ShopID: 1, LoanID: loan.ID, InstallmentID: first.ID,
		Amount: decimal.NewFromInt(2001),
	})
	if !errors.Is(err, ErrInvalidPaymentValue) {
		t.Fatalf("overpay want ErrInvalidPaymentValue, got %v", err)
	}

	// settle the slot
	loan, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
		ShopID: 1, LoanID: loan.ID, InstallmentID: first.ID,
		Amount: decimal.NewFromInt(2000),
	})
	if err != nil {
		t.Fatalf("settle slot failed: %v", err)
	}
	if loan.Installments[0].Status != constants.InstallmentStatusPaid {
		t.Fatalf("slot want paid, got %s", loan.Installments[0].Status)
	}
	if loan.Installments[0].PaidAt == nil {
		t.Fatalf("paid slot should carry paid_at")
	}

	// settling the second slot closes the loan
	loan, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
		ShopID: 1, LoanID: loan.ID, InstallmentID: loan.Installments[1].ID,
		Amount: decimal.NewFromInt(3000),
	})
	if err != nil {
		t.Fatalf("settle second slot failed: %v", err)
	}
	if loan.Status != constants.LoanStatusCompleted {
		t.Fatalf("loan want completed, got %s", loan.Status)
	}

	// a closed loan takes no more payments
	_, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
		ShopID: 1, LoanID: loan.ID, InstallmentID: loan.Installments[1].ID,
		Amount: decimal.NewFromInt(1),
	})
	if !errors.Is(err, ErrLoanClosed) {
		t.Fatalf("closed loan want ErrLoanClosed, got %v", err)
	}
}

func TestLoanAggregatesTrackRepayment(t *testing.T) {
	db, svc := setupLoanTest(t)
	customer := seedCustomer(t, db, 1, "Naveed Alam")
	loan, err := svc.Create(CreateLoanInput{
		ShopID:           1,
		CustomerID:       customer.ID,
		PrincipalAmount:  decimal.NewFromInt(9000),
		InstallmentCount: 3,
		IntervalDays:     30,
	})
	if err != nil {
		t.Fatalf("create loan failed: %v", err)
	}
	if loan.TotalInstallments != 3 || loan.PaidInstallments != 0 {
		t.Fatalf("fresh loan want 0/3 installments, got %d/%d", loan.PaidInstallments, loan.TotalInstallments)
	}
	if !loan.RemainingAmount.Decimal.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("remaining want 9000, got %s", loan.RemainingAmount)
	}
	if loan.NextDueDate == nil || !loan.NextDueDate.Equal(loan.Installments[0].DueDate) {
		t.Fatalf("next due want first slot %v, got %v", loan.Installments[0].DueDate, loan.NextDueDate)
	}

	// settling the first slot advances the due date
	loan, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
		ShopID: 1, LoanID: loan.ID, InstallmentID: loan.Installments[0].ID,
		Amount: decimal.NewFromInt(3000),
	})
	if err != nil {
		t.Fatalf("settle first slot failed: %v", err)
	}
	if loan.PaidInstallments != 1 {
		t.Fatalf("paid installments want 1, got %d", loan.PaidInstallments)
	}
	if !loan.RemainingAmount.Decimal.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("remaining want 6000, got %s", loan.RemainingAmount)
	}
	if loan.NextDueDate == nil || !loan.NextDueDate.Equal(loan.Installments[1].DueDate) {
		t.Fatalf("next due want second slot %v, got %v", loan.Installments[1].DueDate, loan.NextDueDate)
	}

	// a partial payment moves the balance but not the slot count
	loan, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
		ShopID: 1, LoanID: loan.ID, InstallmentID: loan.Installments[1].ID,
		Amount: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("partial payment failed: %v", err)
	}
	if loan.PaidInstallments != 1 {
		t.Fatalf("paid installments want 1 after partial, got %d", loan.PaidInstallments)
	}
	if !loan.RemainingAmount.Decimal.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("remaining want 5000, got %s", loan.RemainingAmount)
	}
	if loan.NextDueDate == nil || !loan.NextDueDate.Equal(loan.Installments[1].DueDate) {
		t.Fatalf("next due should stay on the partial slot, got %v", loan.NextDueDate)
	}

	// clearing the rest zeroes the balance and the due date
	for _, payment := range []int64{2000, 3000} {
		target := loan.Installments[1].ID
		if payment == 3000 {
			target = loan.Installments[2].ID
		}
		loan, err = svc.RecordInstallmentPayment(RecordInstallmentInput{
			ShopID: 1, LoanID: loan.ID, InstallmentID: target,
			Amount: decimal.NewFromInt(payment),
		})
		if err != nil {
			t.Fatalf("payment of %d failed: %v", payment, err)
		}
	}
	if loan.Status != constants.LoanStatusCompleted {
		t.Fatalf("loan want completed, got %s", loan.Status)
	}
	if loan.PaidInstallments != 3 {
		t.Fatalf("paid installments want 3, got %d", loan.PaidInstallments)
	}
	if !loan.RemainingAmount.Decimal.IsZero() {
		t.Fatalf("remaining want 0, got %s", loan.RemainingAmount)
	}
	if loan.NextDueDate != nil {
		t.Fatalf("settled loan should have no next due date, got %v", loan.NextDueDate)
	}
}

func TestMarkLoanDefaulted(t *testing.T) {
	db, svc := setupLoanTest(t)
	customer := seedCustomer(t, db, 1, "Saad Qureshi")
	loan, err := svc.Create(CreateLoanInput{
		ShopID:           1,
		CustomerID:       customer.ID,
		PrincipalAmount:  decimal.NewFromInt(5000),
		InstallmentCount: 5,
	})
	if err != nil {
		t.Fatalf("create loan failed: %v", err)
	}

	loan, err = svc.MarkDefaulted(1, loan.ID)
	if err != nil {
		t.Fatalf("mark defaulted failed: %v", err)
	}
	if loan.Status != constants.LoanStatusDefaulted {
		t.Fatalf("status want defaulted, got %s", loan.Status)
	}
	if _, err := svc.MarkDefaulted(1, loan.ID); !errors.Is(err, ErrLoanClosed) {
		t.Fatalf("double default want ErrLoanClosed, got %v", err)
	}
}

func TestListDueInstallments(t *testing.T) {
	db, svc := setupLoanTest(t)
	customer := seedCustomer(t, db, 1, "Late Payer")
	loan, err := svc.Create(CreateLoanInput{
		ShopID:           1,
		CustomerID:       customer.ID,
		PrincipalAmount:  decimal.NewFromInt(2000),
		InstallmentCount: 2,
		IntervalDays:     30,
		StartDate:        time.Now().AddDate(0, 0, -40),
	})
	if err != nil {
		t.Fatalf("create loan failed: %v", err)
	}

	due, err := svc.ListDueInstallments(time.Now())
	if err != nil {
		t.Fatalf("list due failed: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("due installments want 1, got %d", len(due))
	}
	if due[0].LoanID != loan.ID {
		t.Fatalf("due installment should belong to loan %d", loan.ID)
	}
	if due[0].Loan == nil || due[0].Loan.ShopID != 1 {
		t.Fatalf("due installment should preload its loan")
	}
}
