package test

import (
	"net/http"
	"testing"

	"github.com/Karol-96/arts-sell/core/payment"
	"github.com/stretchr/testify/require"
)

func TestCartDuplicateAdd(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "Etude in Blue", 7000)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)

	body := map[string]string{"artworkId": a1}
	code := te.do(t, http.MethodPut, "/cart/items", body, nil)
	require.Equal(t, http.StatusConflict, code)

	require.Equal(t, 1, te.cartSize(t))
}

func TestCartUnavailableAdd(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "Etude in Red", 7000)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)
	te.Authorizer.set(payment.Completed)
	te.checkout(t, http.StatusOK)

	// The artwork is rented out now: nobody else can cart it.
	te.signup(t, "buyer2", false)
	body := map[string]string{"artworkId": a1}
	code := te.do(t, http.MethodPut, "/cart/items", body, nil)
	require.Equal(t, http.StatusConflict, code)
}

func TestCartAddUnknownArtwork(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "buyer1", false)

	body := map[string]string{"artworkId": "6ba7b810-9dad-41d1-80b4-00c04fd430c8"}
	code := te.do(t, http.MethodPut, "/cart/items", body, nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestCartRemoveItem(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "artist1", true)
	a1 := te.createArtwork(t, "One", 5000)
	a2 := te.createArtwork(t, "Two", 6000)

	te.signup(t, "buyer1", false)
	te.addToCart(t, a1)
	te.addToCart(t, a2)
	require.Equal(t, 2, te.cartSize(t))

	code := te.do(t, http.MethodDelete, "/cart/items/"+a1, nil, nil)
	require.Equal(t, http.StatusNoContent, code)
	require.Equal(t, 1, te.cartSize(t))

	code = te.do(t, http.MethodDelete, "/cart", nil, nil)
	require.Equal(t, http.StatusNoContent, code)
	require.Equal(t, 0, te.cartSize(t))
}

func TestCartRequiresAuth(t *testing.T) {
	te := NewTestEnv(t)

	te.signup(t, "buyer1", false)
	te.logout(t)

	code := te.do(t, http.MethodGet, "/cart", nil, nil)
	require.Equal(t, http.StatusUnauthorized, code)
}
