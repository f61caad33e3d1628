package persistence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/socialboost/backend/internal/domain/catalog"
	"github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
)

// setupTestDB creates an in-memory SQLite database with the storefront schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			phone TEXT NOT NULL,
			platform TEXT NOT NULL,
			service TEXT NOT NULL,
			profile_link TEXT NOT NULL,
			post_link TEXT,
			social_handle TEXT,
			quantity INTEGER NOT NULL,
			price NUMERIC NOT NULL,
			status TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE payment_claims (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			customer_name TEXT,
			customer_email TEXT,
			amount NUMERIC NOT NULL,
			method TEXT NOT NULL,
			transaction_id TEXT NOT NULL,
			screenshot_url TEXT NOT NULL,
			status TEXT NOT NULL,
			remarks TEXT,
			reviewed_at DATETIME,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE UNIQUE INDEX idx_payment_claims_active_transaction_id
			ON payment_claims (transaction_id) WHERE status <> 'Rejected'
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func newTestOrder(t *testing.T, email string) *order.Order {
	o, err := order.NewOrder(
		"Ali Raza", email, "+92-300-1234567",
		catalog.PlatformInstagram, "Followers",
		"https://instagram.com/ali", "", "@ali",
		1000, decimal.NewFromFloat(40.00),
	)
	require.NoError(t, err)
	return o
}

func newTestClaim(t *testing.T, o *order.Order, transactionID string) *payment.Claim {
	c, err := payment.NewClaim(
		o.ID, o.CustomerName, o.CustomerEmail,
		decimal.NewFromFloat(40.00), payment.MethodEasypaisa,
		transactionID, "https://cdn.example.com/screenshots/s.png", "",
	)
	require.NoError(t, err)
	return c
}
