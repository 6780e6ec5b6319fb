// Package payment records payment outcomes and hosts the authorization
// strategy. No real gateway is involved: authorization is simulated, but
// everything else treats the outcome as authoritative.
package payment

import (
	"context"
	"strings"
	"time"
	"unicode"
)

type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
	Failed    Status = "failed"
)

// Info is the payment record bound one-to-one to an order. Only the masked
// account number is ever stored.
type Info struct {
	OrderID       string    `json:"orderId" db:"order_id"`
	Method        string    `json:"paymentMethod" db:"payment_method"`
	AccountName   string    `json:"accountName" db:"account_name"`
	AccountMasked string    `json:"accountNumberMasked" db:"account_number_masked"`
	Status        Status    `json:"paymentStatus" db:"payment_status"`
	Date          time.Time `json:"paymentDate" db:"payment_date"`
}

// Authorization is the outcome of an authorization attempt.
type Authorization struct {
	Reference     string
	AccountMasked string
	Status        Status
}

// Authorizer decides the outcome of a payment. Production wires the
// Simulator; tests wire Static to pin the outcome. A real gateway client
// would implement the same interface.
type Authorizer interface {
	Authorize(ctx context.Context, method, accountName, accountNumber string) (Authorization, error)
}

// MaskAccount keeps the last four digits of the account number. Shorter
// inputs are masked entirely: the raw number must never reach storage.
func MaskAccount(number string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)

	if len(digits) < 4 {
		return "****"
	}
	return "****" + digits[len(digits)-4:]
}
