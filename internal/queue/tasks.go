package queue

import (
	"encoding/json"

	"github.com/mobipos/mobipos/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskSaleNotification notifies about a finished sale
	TaskSaleNotification = constants.TaskSaleNotification
	// TaskLowStockAlert flags a product running low on sellable units
	TaskLowStockAlert = constants.TaskLowStockAlert
	// TaskLoanDueReminder reminds about installments past due
	TaskLoanDueReminder = constants.TaskLoanDueReminder
)

// SaleNotificationPayload carries the sale receipt reference
type SaleNotificationPayload struct {
	SaleID    uint   `json:"sale_id"`
	ShopID    uint   `json:"shop_id"`
	InvoiceNo string `json:"invoice_no"`
}

// LowStockAlertPayload carries the product stock remainder
type LowStockAlertPayload struct {
	ShopID    uint  `json:"shop_id"`
	ProductID uint  `json:"product_id"`
	Remaining int64 `json:"remaining"`
}

// LoanDueReminderPayload carries the installment that came due
type LoanDueReminderPayload struct {
	LoanID        uint `json:"loan_id"`
	InstallmentID uint `json:"installment_id"`
	ShopID        uint `json:"shop_id"`
}

// NewSaleNotificationTask creates a sale notification task
func NewSaleNotificationTask(payload SaleNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSaleNotification, body), nil
}

// NewLowStockAlertTask creates a low stock alert task
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body), nil
}

// NewLoanDueReminderTask creates a loan due reminder task
func NewLoanDueReminderTask(payload LoanDueReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLoanDueReminder, body), nil
}
