package checkout

import "github.com/Karol-96/arts-sell/core/cart"

// Policy is the fixed pricing applied at checkout. Amounts are in cents.
type Policy struct {
	ShippingFee int
	TaxPercent  int
}

var DefaultPolicy = Policy{ShippingFee: 4500, TaxPercent: 8}

type Quote struct {
	Subtotal int `json:"subtotal"`
	Shipping int `json:"shipping"`
	Tax      int `json:"tax"`
	Total    int `json:"total"`
}

// Price computes the quote for a cart snapshot. An empty cart prices to zero
// across the board: no shipping is charged when there is nothing to ship.
func (p Policy) Price(items []cart.CheckoutItem) Quote {
	var subtotal int
	for _, it := range items {
		subtotal += it.Price * it.Quantity
	}

	if subtotal == 0 {
		return Quote{}
	}

	tax := subtotal * p.TaxPercent / 100
	return Quote{
		Subtotal: subtotal,
		Shipping: p.ShippingFee,
		Tax:      tax,
		Total:    subtotal + p.ShippingFee + tax,
	}
}
