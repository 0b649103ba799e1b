package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("2106.5"))
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"2106.50"` {
		t.Fatalf("want \"2106.50\", got %s", b)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"499.999"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.String() != "500.00" {
		t.Fatalf("want 500.00, got %s", fromString)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`1800`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if !fromNumber.Decimal.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("want 1800, got %s", fromNumber)
	}
}

func TestRoundRupeesHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"306.4", "306"},
		{"306.5", "307"},
		{"199.99", "200"},
		{"0.49", "0"},
	}
	for _, tc := range cases {
		got := RoundRupees(decimal.RequireFromString(tc.in))
		if got.String() != tc.want {
			t.Fatalf("RoundRupees(%s): want %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestMoneyScanRoundsToTwoPlaces(t *testing.T) {
	var m Money
	if err := m.Scan("46500.005"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if m.String() != "46500.01" {
		t.Fatalf("want 46500.01, got %s", m)
	}
}
