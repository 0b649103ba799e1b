package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mobipos/mobipos/internal/config"
	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/queue"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput is everything the till submits to close a sale
type CheckoutInput struct {
	UserID        uint
	ShopID        uint
	PaymentMethod string
	DiscountType  string
	DiscountValue decimal.Decimal
	TaxPercentage *decimal.Decimal
	CustomerID    *uint
	Notes         string
	ClientIP      string
}

// CheckoutService turns a staged cart into a persisted sale. The
// whole of checkout runs in one database transaction: sale, items,
// payment, unit consumption, invoice allocation and cart clear either
// all land or none do.
type CheckoutService struct {
	cfg           *config.Config
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	saleRepo      repository.SaleRepository
	paymentRepo   repository.PaymentRepository
	customerRepo  repository.CustomerRepository
	auditRepo     repository.AuditLogRepository
	queueClient   *queue.Client
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(
	cfg *config.Config,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditLogRepository,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		cfg:           cfg,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		saleRepo:      saleRepo,
		paymentRepo:   paymentRepo,
		customerRepo:  customerRepo,
		auditRepo:     auditRepo,
		queueClient:   queueClient,
	}
}

// checkoutTotals carries the money arithmetic of one checkout
type checkoutTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxPercentage  decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// computeTotals runs the till arithmetic. Discount and tax are
// rounded to whole rupees, half away from zero.
func computeTotals(subtotal decimal.Decimal, discountType string, discountValue, taxPercentage decimal.Decimal) (checkoutTotals, error) {
	totals := checkoutTotals{Subtotal: subtotal, TaxPercentage: taxPercentage}

	if discountValue.IsNegative() {
		return totals, ErrInvalidDiscount
	}
	switch discountType {
	// An unspecified type reads the value as a percentage.
	case "", constants.DiscountTypePercentage:
		if discountValue.GreaterThan(decimal.NewFromInt(100)) {
			return totals, ErrInvalidDiscount
		}
		totals.DiscountAmount = models.RoundRupees(subtotal.Mul(discountValue).Div(decimal.NewFromInt(100)))
	case constants.DiscountTypeFixed:
		totals.DiscountAmount = models.RoundRupees(discountValue)
	default:
		return totals, ErrInvalidDiscount
	}
	if totals.DiscountAmount.GreaterThan(subtotal) {
		return totals, ErrInvalidDiscount
	}

	if taxPercentage.IsNegative() {
		return totals, ErrInvalidDiscount
	}
	afterDiscount := subtotal.Sub(totals.DiscountAmount)
	totals.TaxAmount = models.RoundRupees(afterDiscount.Mul(taxPercentage).Div(decimal.NewFromInt(100)))
	totals.TotalAmount = afterDiscount.Add(totals.TaxAmount)
	return totals, nil
}

// Checkout closes the seller's cart into a sale
func (s *CheckoutService) Checkout(input CheckoutInput) (*models.Sale, error) {
	if input.UserID == 0 || input.ShopID == 0 {
		return nil, ErrCheckoutFailed
	}
	if !constants.ValidPaymentMethods[input.PaymentMethod] {
		return nil, ErrInvalidPayment
	}

	items, err := s.cartRepo.ListBySeller(input.UserID, input.ShopID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(input.ShopID, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(input.ShopID, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}
	}

	subtotal := decimal.Zero
	saleItems := make([]models.SaleItem, 0, len(items))
	now := time.Now()
	for _, item := range items {
		product, ok := productMap[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !product.Active {
			return nil, ErrProductInactive
		}
		lineTotal := product.SellingPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		saleItems = append(saleItems, models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.SellingPrice,
			LineTotal:   models.NewMoneyFromDecimal(lineTotal),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	taxPercentage := decimal.NewFromFloat(s.cfg.Sale.TaxPercentage)
	if input.TaxPercentage != nil {
		taxPercentage = *input.TaxPercentage
	}
	if input.DiscountType == "" {
		input.DiscountType = constants.DiscountTypePercentage
	}
	totals, err := computeTotals(subtotal, input.DiscountType, input.DiscountValue, taxPercentage)
	if err != nil {
		return nil, err
	}

	sale := &models.Sale{
		ShopID:         input.ShopID,
		SellerID:       input.UserID,
		CustomerID:     input.CustomerID,
		Subtotal:       models.NewMoneyFromDecimal(totals.Subtotal),
		DiscountType:   input.DiscountType,
		DiscountValue:  models.NewMoneyFromDecimal(input.DiscountValue),
		DiscountAmount: models.NewMoneyFromDecimal(totals.DiscountAmount),
		TaxPercentage:  models.NewMoneyFromDecimal(totals.TaxPercentage),
		TaxAmount:      models.NewMoneyFromDecimal(totals.TaxAmount),
		TotalAmount:    models.NewMoneyFromDecimal(totals.TotalAmount),
		PaymentMethod:  input.PaymentMethod,
		Status:         constants.SaleStatusCompleted,
		Notes:          strings.TrimSpace(input.Notes),
		SaleDate:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.saleRepo.Transaction(func(tx *gorm.DB) error {
		saleRepo := s.saleRepo.WithTx(tx)
		inventoryRepo := s.inventoryRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)
		auditRepo := s.auditRepo.WithTx(tx)

		seq, err := saleRepo.AllocateInvoiceSeq(input.ShopID, now.Format("20060102"))
		if err != nil {
			return err
		}
		sale.InvoiceNo = s.buildInvoiceNo(now, seq)

		if err := saleRepo.Create(sale, saleItems); err != nil {
			return err
		}

		for _, item := range saleItems {
			units, err := inventoryRepo.ListInStock(input.ShopID, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if len(units) < item.Quantity {
				return ErrInsufficientStock
			}
			ids := make([]uint, 0, len(units))
			for _, unit := range units {
				ids = append(ids, unit.ID)
			}
			affected, err := inventoryRepo.ConsumeUnits(ids, sale.ID, now)
			if err != nil {
				return err
			}
			// A concurrent checkout may have taken one of the
			// selected units between the read and the update.
			if int(affected) != len(ids) {
				return ErrInsufficientStock
			}
		}

		payment := &models.Payment{
			ShopID:     input.ShopID,
			SaleID:     sale.ID,
			Method:     input.PaymentMethod,
			Amount:     sale.TotalAmount,
			Status:     constants.PaymentStatusCompleted,
			ReceivedAt: now,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}

		if err := cartRepo.ClearBySeller(input.UserID, input.ShopID); err != nil {
			return err
		}

		return auditRepo.Create(&models.AuditLog{
			ShopID:     input.ShopID,
			UserID:     input.UserID,
			Action:     constants.AuditActionSaleCreated,
			EntityType: "sale",
			EntityID:   sale.ID,
			Detail: models.JSON{
				"invoice_no":     sale.InvoiceNo,
				"total_amount":   sale.TotalAmount,
				"payment_method": sale.PaymentMethod,
			},
			IP:        input.ClientIP,
			CreatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		if errors.Is(err, ErrInvalidDiscount) || errors.Is(err, ErrInvalidPayment) {
			return nil, err
		}
		logger.Errorw("checkout_transaction_failed",
			"shop_id", input.ShopID,
			"user_id", input.UserID,
			"error", err,
		)
		return nil, ErrCheckoutFailed
	}

	s.notifyAfterCheckout(sale, productIDs)

	full, err := s.saleRepo.GetByID(input.ShopID, sale.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return sale, nil
}

func (s *CheckoutService) buildInvoiceNo(day time.Time, seq int) string {
	prefix := strings.TrimSpace(s.cfg.Sale.InvoicePrefix)
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, day.Format("20060102"), seq)
}

// notifyAfterCheckout enqueues the receipt notification and low-stock
// alerts. Failures only log; the sale is already committed.
func (s *CheckoutService) notifyAfterCheckout(sale *models.Sale, productIDs []uint) {
	if s.queueClient == nil {
		return
	}

	if err := s.queueClient.EnqueueSaleNotification(queue.SaleNotificationPayload{
		SaleID:    sale.ID,
		ShopID:    sale.ShopID,
		InvoiceNo: sale.InvoiceNo,
	}); err != nil {
		logger.Errorw("sale_notification_enqueue_failed",
			"sale_id", sale.ID,
			"invoice_no", sale.InvoiceNo,
			"error", err,
		)
	}

	threshold := int64(s.cfg.Sale.LowStockThreshold)
	if threshold <= 0 {
		return
	}
	counts, err := s.inventoryRepo.CountInStockByProducts(sale.ShopID, productIDs)
	if err != nil {
		logger.Errorw("low_stock_count_failed", "shop_id", sale.ShopID, "error", err)
		return
	}
	for _, productID := range productIDs {
		if counts[productID] > threshold {
			continue
		}
		if err := s.queueClient.EnqueueLowStockAlert(queue.LowStockAlertPayload{
			ShopID:    sale.ShopID,
			ProductID: productID,
			Remaining: counts[productID],
		}); err != nil {
			logger.Errorw("low_stock_enqueue_failed",
				"shop_id", sale.ShopID,
				"product_id", productID,
				"error", err,
			)
		}
	}
}
