package models

import (
	"time"

	"gorm.io/gorm"
)

// Loan is an installment plan attached to a customer, optionally
// backed by a sale
type Loan struct {
	ID                uint           `gorm:"primarykey" json:"id"`                          // primary key
	ShopID            uint           `gorm:"not null;index" json:"shop_id"`                 // owning shop
	CustomerID        uint           `gorm:"not null;index" json:"customer_id"`             // borrower
	SaleID            *uint          `gorm:"index" json:"sale_id"`                          // backing sale, optional
	PrincipalAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"principal_amount"` // financed amount
	PaidAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"paid_amount"`      // sum of receipts
	RemainingAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"remaining_amount"` // principal minus receipts
	TotalInstallments int            `gorm:"not null;default:0" json:"total_installments"`  // schedule length
	PaidInstallments  int            `gorm:"not null;default:0" json:"paid_installments"`   // fully settled slots
	NextDueDate       *time.Time     `gorm:"index" json:"next_due_date"`                    // earliest unsettled slot, nil when done
	Status            string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // active/completed/defaulted
	Notes             string         `gorm:"type:text" json:"notes"`                        // free-form notes
	StartDate         time.Time      `gorm:"index" json:"start_date"`                       // first installment anchor
	CreatedAt         time.Time      `json:"created_at"`                                    // created time
	UpdatedAt         time.Time      `json:"updated_at"`                                    // updated time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                // soft delete

	Customer     *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // preloaded borrower
	Installments []LoanInstallment `gorm:"foreignKey:LoanID" json:"installments,omitempty"` // schedule rows
}

// TableName sets the table name
func (Loan) TableName() string {
	return "loans"
}

// LoanInstallment is one scheduled repayment slot
type LoanInstallment struct {
	ID         uint       `gorm:"primarykey" json:"id"`                       // primary key
	LoanID     uint       `gorm:"not null;index" json:"loan_id"`              // parent loan
	SeqNo      int        `gorm:"not null" json:"seq_no"`                     // 1-based position
	DueDate    time.Time  `gorm:"not null;index" json:"due_date"`             // scheduled date
	DueAmount  Money      `gorm:"type:decimal(20,2);not null;default:0" json:"due_amount"`  // owed for this slot
	PaidAmount Money      `gorm:"type:decimal(20,2);not null;default:0" json:"paid_amount"` // received so far
	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // pending/partial/paid
	PaidAt     *time.Time `json:"paid_at"`                                    // fully settled time
	CreatedAt  time.Time  `json:"created_at"`                                 // created time
	UpdatedAt  time.Time  `json:"updated_at"`                                 // updated time

	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"` // parent detail
}

// TableName sets the table name
func (LoanInstallment) TableName() string {
	return "loan_installments"
}
