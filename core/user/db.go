package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, user User) error {
	const q = `
	INSERT INTO users
		(user_id, role, username, firstname, lastname, email, password_hash,
		phone, bio, address, city, state, zip, country, created_at, updated_at)
	VALUES
		(:user_id, :role, :username, :firstname, :lastname, :email, :password_hash,
		:phone, :bio, :address, :city, :state, :zip, :country, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, user); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, id); err != nil {
		return User{}, fmt.Errorf("selecting user[%s]: %w", id, err)
	}

	return u, nil
}

func FetchByUsername(ctx context.Context, db sqlx.ExtContext, username string) (User, error) {
	const q = `SELECT * FROM users WHERE username = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, username); err != nil {
		return User{}, fmt.Errorf("selecting user[%s]: %w", username, err)
	}

	return u, nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (User, error) {
	const q = `SELECT * FROM users WHERE email = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, email); err != nil {
		return User{}, fmt.Errorf("selecting user by email: %w", err)
	}

	return u, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, user User) error {
	const q = `
	UPDATE users SET
		firstname = :firstname,
		lastname = :lastname,
		email = :email,
		phone = :phone,
		bio = :bio,
		address = :address,
		city = :city,
		state = :state,
		zip = :zip,
		country = :country,
		updated_at = :updated_at
	WHERE user_id = :user_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, user); err != nil {
		return fmt.Errorf("updating user[%s]: %w", user.ID, err)
	}

	return nil
}
