package constants

// Staff roles
const (
	RoleOwner  = "owner"
	RoleWorker = "worker"
)

// Staff account status
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Inventory unit status
const (
	InventoryStatusInStock    = "in_stock"
	InventoryStatusOutOfStock = "out_of_stock"
	InventoryStatusDamaged    = "damaged"
	InventoryStatusReturned   = "returned"
)

// Sale status
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
	SaleStatusReturned  = "returned"
)

// Payment methods
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodEasypaisa    = "easypaisa"
	PaymentMethodJazzcash     = "jazzcash"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Payment status
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Discount types
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Purchase status
const (
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
)

// Loan status
const (
	LoanStatusActive    = "active"
	LoanStatusCompleted = "completed"
	LoanStatusDefaulted = "defaulted"
)

// Loan installment status
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPartial = "partial"
	InstallmentStatusPaid    = "paid"
)

// Audit log actions
const (
	AuditActionSaleCreated     = "sale_created"
	AuditActionSaleDeleted     = "sale_deleted"
	AuditActionSaleStatus      = "sale_status_changed"
	AuditActionPaymentRecorded = "payment_recorded"
	AuditActionLoanCreated     = "loan_created"
	AuditActionLoanPayment     = "loan_payment_recorded"
	AuditActionPurchaseCreated = "purchase_created"
)

// Queue names
const (
	QueueDefault = "default"
)

// Task type names
const (
	TaskSaleNotification = "sale:notification"
	TaskLowStockAlert    = "inventory:low_stock_alert"
	TaskLoanDueReminder  = "loan:due_reminder"
)

// ValidPaymentMethods lists the accepted tender types at the till.
var ValidPaymentMethods = map[string]bool{
	PaymentMethodCash:         true,
	PaymentMethodCard:         true,
	PaymentMethodEasypaisa:    true,
	PaymentMethodJazzcash:     true,
	PaymentMethodBankTransfer: true,
}
