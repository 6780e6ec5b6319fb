package checkout

import (
	"testing"

	"github.com/Karol-96/arts-sell/core/cart"
	"github.com/google/go-cmp/cmp"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		items  []cart.CheckoutItem
		want   Quote
	}{
		{
			name:   "single item",
			policy: DefaultPolicy,
			items:  []cart.CheckoutItem{{Price: 10000, Quantity: 1}},
			want:   Quote{Subtotal: 10000, Shipping: 4500, Tax: 800, Total: 15300},
		},
		{
			name:   "several items",
			policy: DefaultPolicy,
			items: []cart.CheckoutItem{
				{Price: 10000, Quantity: 1},
				{Price: 5000, Quantity: 1},
			},
			want: Quote{Subtotal: 15000, Shipping: 4500, Tax: 1200, Total: 20700},
		},
		{
			name:   "quantity multiplies",
			policy: DefaultPolicy,
			items:  []cart.CheckoutItem{{Price: 2500, Quantity: 4}},
			want:   Quote{Subtotal: 10000, Shipping: 4500, Tax: 800, Total: 15300},
		},
		{
			name:   "tax truncates toward zero",
			policy: DefaultPolicy,
			items:  []cart.CheckoutItem{{Price: 99, Quantity: 1}},
			want:   Quote{Subtotal: 99, Shipping: 4500, Tax: 7, Total: 4606},
		},
		{
			name:   "empty cart prices to zero",
			policy: DefaultPolicy,
			items:  nil,
			want:   Quote{},
		},
		{
			name:   "custom policy",
			policy: Policy{ShippingFee: 1000, TaxPercent: 20},
			items:  []cart.CheckoutItem{{Price: 500, Quantity: 2}},
			want:   Quote{Subtotal: 1000, Shipping: 1000, Tax: 200, Total: 2200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Price(tt.items)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wrong quote: %s", diff)
			}
		})
	}
}
