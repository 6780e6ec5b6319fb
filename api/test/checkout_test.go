package test

import (
	"net/http"
	"testing"
	"time"

	"github.com/Karol-96/arts-sell/core/payment"
	"github.com/stretchr/testify/require"
)

type checkoutOut struct {
	OrderID       string `json:"orderId"`
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
	Quote         struct {
		Subtotal int `json:"subtotal"`
		Shipping int `json:"shipping"`
		Tax      int `json:"tax"`
		Total    int `json:"total"`
	} `json:"quote"`
	Rentals []struct {
		ID           string    `json:"id"`
		ArtworkID    string    `json:"artworkId"`
		Start        time.Time `json:"rentalStart"`
		End          time.Time `json:"rentalEnd"`
		MonthlyPrice int       `json:"monthlyPrice"`
		Status       string    `json:"status"`
	} `json:"rentals"`
	Message string `json:"message"`
}

func (te *TestEnv) createArtwork(t *testing.T, title string, price int) string {
	t.Helper()

	body := map[string]any{
		"title":      title,
		"artistName": "Test Artist",
		"price":      price,
	}

	var art struct {
		ID string `json:"id"`
	}
	if code := te.do(t, http.MethodPost, "/artworks", body, &art); code != http.StatusCreated {
		t.Fatalf("can't create artwork: status code %d", code)
	}
	return art.ID
}

func (te *TestEnv) addToCart(t *testing.T, artworkID string) {
	t.Helper()

	body := map[string]string{"artworkId": artworkID}
	if code := te.do(t, http.MethodPut, "/cart/items", body, nil); code != http.StatusCreated {
		t.Fatalf("can't add artwork[%s] to cart: status code %d", artworkID, code)
	}
}

func (te *TestEnv) checkout(t *testing.T, want int) checkoutOut {
	t.Helper()

	body := map[string]string{
		"paymentMethod": "credit_card",
		"accountName":   "Test User",
		"accountNumber": "4242-4242-4242-4242",
	}

	var out checkoutOut
	if code := te.do(t, http.MethodPost, "/orders/checkout", body, &out); code != want {
		t.Fatalf("checkout: expected status code %d, got %d", want, code)
	}
	return out
}

func (te *TestEnv) cartSize(t *testing.T) int {
	t.Helper()

	var items []map[string]any
	if code := te.do(t, http.MethodGet, "/cart", nil, &items); code != http.StatusOK {
		t.Fatalf("can't fetch cart: status code %d", code)
	}
	return len(items)
}

func (te *TestEnv) artworkStatus(t *testing.T, id string) string {
	t.Helper()

	var status string
	if err := te.DB.Get(&status, `SELECT status FROM artworks WHERE artwork_id = $1`, id); err != nil {
		t.Fatalf("selecting artwork status: %v", err)
	}
	return status
}

func TestCheckoutCompleted(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "Westminster at Dusk", 10000)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)

	te.Authorizer.set(payment.Completed)
	out := te.checkout(t, http.StatusOK)

	require.Equal(t, "success", out.OrderStatus)
	require.Equal(t, "completed", out.PaymentStatus)
	require.Equal(t, 10000, out.Quote.Subtotal)
	require.Equal(t, 4500, out.Quote.Shipping)
	require.Equal(t, 800, out.Quote.Tax)
	require.Equal(t, 15300, out.Quote.Total)

	require.Len(t, out.Rentals, 1)
	require.Equal(t, a1, out.Rentals[0].ArtworkID)
	require.Equal(t, 10000, out.Rentals[0].MonthlyPrice)
	require.Equal(t, "active", out.Rentals[0].Status)
	require.Equal(t, 30*24*time.Hour, out.Rentals[0].End.Sub(out.Rentals[0].Start))

	require.Equal(t, "unavailable", te.artworkStatus(t, a1))
	require.Equal(t, 0, te.cartSize(t))

	var total int
	require.NoError(t, te.DB.Get(&total, `SELECT total_amount FROM orders WHERE order_id = $1`, out.OrderID))
	require.Equal(t, 15300, total)

	var nItems int
	require.NoError(t, te.DB.Get(&nItems, `SELECT COUNT(*) FROM order_items WHERE order_id = $1`, out.OrderID))
	require.Equal(t, 1, nItems)

	var masked string
	require.NoError(t, te.DB.Get(&masked, `SELECT account_number_masked FROM payment_info WHERE order_id = $1`, out.OrderID))
	require.Equal(t, "****4242", masked)
}

func TestCheckoutFailed(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "Highland Morning", 18500)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)

	te.Authorizer.set(payment.Failed)
	out := te.checkout(t, http.StatusOK)

	require.Equal(t, "cancelled", out.OrderStatus)
	require.Equal(t, "failed", out.PaymentStatus)
	require.Empty(t, out.Rentals)

	// A declined payment leaves the artwork alone but still consumes the cart.
	require.Equal(t, "available", te.artworkStatus(t, a1))
	require.Equal(t, 0, te.cartSize(t))

	var nRentals int
	require.NoError(t, te.DB.Get(&nRentals, `SELECT COUNT(*) FROM rented_artworks WHERE order_id = $1`, out.OrderID))
	require.Equal(t, 0, nRentals)

	var status string
	require.NoError(t, te.DB.Get(&status, `SELECT payment_status FROM payment_info WHERE order_id = $1`, out.OrderID))
	require.Equal(t, "failed", status)
}

func TestCheckoutPending(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "Café de Montmartre", 22000)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)

	te.Authorizer.set(payment.Pending)
	out := te.checkout(t, http.StatusOK)

	require.Equal(t, "pending", out.OrderStatus)
	require.Equal(t, "pending", out.PaymentStatus)
	require.Empty(t, out.Rentals)
	require.Equal(t, "available", te.artworkStatus(t, a1))
	require.Equal(t, 0, te.cartSize(t))
}

func TestCheckoutEmptyCart(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "buyer1", false)
	te.checkout(t, http.StatusUnprocessableEntity)

	var nOrders int
	require.NoError(t, te.DB.Get(&nOrders, `SELECT COUNT(*) FROM orders`))
	require.Equal(t, 0, nOrders)
}

// TestCheckoutPriceSnapshot verifies that a later price edit never drifts a
// stored order.
func TestCheckoutPriceSnapshot(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "Jardin des Tuileries", 8000)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)

	te.Authorizer.set(payment.Completed)
	out := te.checkout(t, http.StatusOK)

	te.login(t, "artist1")
	newPrice := map[string]any{"price": 16000}
	if code := te.do(t, http.MethodPut, "/artworks/"+a1, newPrice, nil); code != http.StatusOK {
		t.Fatalf("can't update artwork price: status code %d", code)
	}

	var price int
	require.NoError(t, te.DB.Get(&price, `SELECT price FROM order_items WHERE order_id = $1`, out.OrderID))
	require.Equal(t, 8000, price)

	var monthly int
	require.NoError(t, te.DB.Get(&monthly, `SELECT monthly_price FROM rented_artworks WHERE order_id = $1`, out.OrderID))
	require.Equal(t, 8000, monthly)
}

// TestCheckoutDoubleSale races two buyers over the same artwork. The second
// checkout must be rejected and must keep its cart: its transaction rolled
// back before anything was committed.
func TestCheckoutDoubleSale(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "Hudson Reflections", 9500)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)

	te.signup(t, "buyer2", false)
	te.addToCart(t, a1)

	te.Authorizer.set(payment.Completed)

	te.login(t, "buyer1")
	te.checkout(t, http.StatusOK)

	te.login(t, "buyer2")
	te.checkout(t, http.StatusConflict)

	require.Equal(t, 1, te.cartSize(t))

	var nRentals int
	require.NoError(t, te.DB.Get(&nRentals, `SELECT COUNT(*) FROM rented_artworks WHERE artwork_id = $1`, a1))
	require.Equal(t, 1, nRentals)

	var nOrders int
	require.NoError(t, te.DB.Get(&nOrders, `SELECT COUNT(*) FROM orders`))
	require.Equal(t, 1, nOrders)
}

func TestCheckoutMultipleItems(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "First", 10000)
	a2 := te.createArtwork(t, "Second", 5000)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)
	te.addToCart(t, a2)

	te.Authorizer.set(payment.Completed)
	out := te.checkout(t, http.StatusOK)

	require.Equal(t, 15000, out.Quote.Subtotal)
	require.Equal(t, 1200, out.Quote.Tax)
	require.Equal(t, 20700, out.Quote.Total)
	require.Len(t, out.Rentals, 2)

	require.Equal(t, "unavailable", te.artworkStatus(t, a1))
	require.Equal(t, "unavailable", te.artworkStatus(t, a2))
}
