package payment

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func CreateInfo(ctx context.Context, db sqlx.ExtContext, info Info) error {
	const q = `
	INSERT INTO payment_info
		(order_id, payment_method, account_name, account_number_masked, payment_status, payment_date)
	VALUES
		(:order_id, :payment_method, :account_name, :account_number_masked, :payment_status, :payment_date)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, info); err != nil {
		return fmt.Errorf("inserting payment info: %w", err)
	}

	return nil
}

func FetchInfoByOrder(ctx context.Context, db sqlx.ExtContext, orderID string) (Info, error) {
	const q = `SELECT * FROM payment_info WHERE order_id = $1`

	var info Info
	if err := sqlx.GetContext(ctx, db, &info, q, orderID); err != nil {
		return Info{}, fmt.Errorf("selecting payment info of order[%s]: %w", orderID, err)
	}

	return info, nil
}
