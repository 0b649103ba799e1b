package worker

import (
	"context"
	"encoding/json"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/provider"
	"github.com/mobipos/mobipos/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued shop tasks
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers the task handlers
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSaleNotification, c.handleSaleNotification)
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
	mux.HandleFunc(queue.TaskLoanDueReminder, c.handleLoanDueReminder)
}

func (c *Consumer) handleSaleNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_sale_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SaleNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_sale_notification_unmarshal_failed", "error", err)
		return err
	}
	if payload.SaleID == 0 || payload.ShopID == 0 {
		logger.Debugw("worker_sale_notification_skip_invalid_payload", "sale_id", payload.SaleID, "shop_id", payload.ShopID)
		return nil
	}
	sale, err := c.SaleRepo.GetByID(payload.ShopID, payload.SaleID)
	if err != nil {
		logger.Warnw("worker_sale_notification_fetch_failed", "sale_id", payload.SaleID, "error", err)
		return err
	}
	if sale == nil {
		logger.Debugw("worker_sale_notification_skip_sale_not_found", "sale_id", payload.SaleID)
		return nil
	}
	if err := c.Notifier.SaleCompleted(sale); err != nil {
		logger.Warnw("worker_sale_notification_send_failed", "sale_id", sale.ID, "invoice_no", sale.InvoiceNo, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 || payload.ShopID == 0 {
		logger.Debugw("worker_low_stock_alert_skip_invalid_payload", "product_id", payload.ProductID, "shop_id", payload.ShopID)
		return nil
	}
	product, err := c.ProductRepo.GetByID(payload.ShopID, payload.ProductID)
	if err != nil {
		logger.Warnw("worker_low_stock_alert_fetch_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if product == nil {
		logger.Debugw("worker_low_stock_alert_skip_product_not_found", "product_id", payload.ProductID)
		return nil
	}
	// re-count at delivery time, the payload snapshot may be stale
	remaining, err := c.InventoryRepo.CountInStock(payload.ShopID, payload.ProductID)
	if err != nil {
		logger.Warnw("worker_low_stock_alert_count_failed", "product_id", payload.ProductID, "error", err)
		remaining = payload.Remaining
	}
	if err := c.Notifier.LowStock(payload.ShopID, product, remaining); err != nil {
		logger.Warnw("worker_low_stock_alert_send_failed", "product_id", product.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleLoanDueReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_loan_due_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LoanDueReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_loan_due_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.LoanID == 0 || payload.ShopID == 0 {
		logger.Debugw("worker_loan_due_reminder_skip_invalid_payload", "loan_id", payload.LoanID, "shop_id", payload.ShopID)
		return nil
	}
	loan, err := c.LoanRepo.GetByID(payload.ShopID, payload.LoanID)
	if err != nil {
		logger.Warnw("worker_loan_due_reminder_fetch_failed", "loan_id", payload.LoanID, "error", err)
		return err
	}
	if loan == nil {
		logger.Debugw("worker_loan_due_reminder_skip_loan_not_found", "loan_id", payload.LoanID)
		return nil
	}
	var installment *models.LoanInstallment
	for i := range loan.Installments {
		if loan.Installments[i].ID == payload.InstallmentID {
			installment = &loan.Installments[i]
			break
		}
	}
	if installment == nil {
		logger.Debugw("worker_loan_due_reminder_skip_installment_not_found",
			"loan_id", payload.LoanID, "installment_id", payload.InstallmentID)
		return nil
	}
	if installment.Status == constants.InstallmentStatusPaid {
		logger.Debugw("worker_loan_due_reminder_skip_settled",
			"loan_id", payload.LoanID, "installment_id", payload.InstallmentID)
		return nil
	}
	if err := c.Notifier.LoanInstallmentDue(loan, installment); err != nil {
		logger.Warnw("worker_loan_due_reminder_send_failed",
			"loan_id", loan.ID, "installment_id", installment.ID, "error", err)
		return err
	}
	return nil
}
