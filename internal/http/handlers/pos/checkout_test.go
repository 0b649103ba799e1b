package pos

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCheckoutRequestBindsDiscountAmount(t *testing.T) {
	var req CheckoutRequest
	body := `{"discount_amount": 10, "tax_percentage": 17, "customer_id": 4}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !req.DiscountAmount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("discount_amount want 10, got %s", req.DiscountAmount)
	}
	if req.DiscountType != "" {
		t.Fatalf("discount_type should stay empty, got %q", req.DiscountType)
	}
	if req.TaxPercentage == nil || !req.TaxPercentage.Equal(decimal.NewFromInt(17)) {
		t.Fatalf("tax_percentage want 17, got %v", req.TaxPercentage)
	}
	if req.CustomerID == nil || *req.CustomerID != 4 {
		t.Fatalf("customer_id want 4, got %v", req.CustomerID)
	}
}
