package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialboost/backend/internal/domain/shared"
)

func createTestClaim(t *testing.T) *Claim {
	c, err := NewClaim(
		uuid.New(), "Ali Raza", "ali@example.com",
		decimal.NewFromFloat(40.00), MethodEasypaisa,
		"EP-20260801-0042", "https://cdn.example.com/screenshots/ep42.png", "",
	)
	require.NoError(t, err)
	return c
}

func TestMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  Method
		isValid bool
	}{
		{MethodEasypaisa, true},
		{MethodJazzcash, true},
		{MethodBankTransfer, true},
		{MethodPaypal, true},
		{MethodGooglePay, true},
		{Method("stripe"), false},
		{Method(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

func TestNewClaim(t *testing.T) {
	t.Run("creates pending claim with valid inputs", func(t *testing.T) {
		c := createTestClaim(t)
		assert.Equal(t, ClaimStatusPending, c.Status)
		assert.True(t, c.IsPending())
		assert.Nil(t, c.ReviewedAt)
		assert.Equal(t, 1, c.Version)
	})

	t.Run("trims transaction reference", func(t *testing.T) {
		c, err := NewClaim(uuid.New(), "Ali", "a@b.com", decimal.NewFromInt(10), MethodJazzcash, "  JC-1  ", "https://x/s.png", "")
		require.NoError(t, err)
		assert.Equal(t, "JC-1", c.TransactionID)
	})

	tests := []struct {
		name     string
		create   func() (*Claim, error)
		fragment string
	}{
		{
			name: "rejects nil order id",
			create: func() (*Claim, error) {
				return NewClaim(uuid.Nil, "Ali", "a@b.com", decimal.NewFromInt(10), MethodEasypaisa, "T-1", "https://x/s.png", "")
			},
			fragment: "orderId",
		},
		{
			name: "rejects zero amount",
			create: func() (*Claim, error) {
				return NewClaim(uuid.New(), "Ali", "a@b.com", decimal.Zero, MethodEasypaisa, "T-1", "https://x/s.png", "")
			},
			fragment: "amount",
		},
		{
			name: "rejects negative amount",
			create: func() (*Claim, error) {
				return NewClaim(uuid.New(), "Ali", "a@b.com", decimal.NewFromInt(-5), MethodEasypaisa, "T-1", "https://x/s.png", "")
			},
			fragment: "amount",
		},
		{
			name: "rejects unknown method",
			create: func() (*Claim, error) {
				return NewClaim(uuid.New(), "Ali", "a@b.com", decimal.NewFromInt(10), Method("crypto"), "T-1", "https://x/s.png", "")
			},
			fragment: "method",
		},
		{
			name: "rejects blank transaction reference",
			create: func() (*Claim, error) {
				return NewClaim(uuid.New(), "Ali", "a@b.com", decimal.NewFromInt(10), MethodEasypaisa, "   ", "https://x/s.png", "")
			},
			fragment: "transactionId",
		},
		{
			name: "rejects missing screenshot",
			create: func() (*Claim, error) {
				return NewClaim(uuid.New(), "Ali", "a@b.com", decimal.NewFromInt(10), MethodEasypaisa, "T-1", "", "")
			},
			fragment: "screenshotUrl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.create()
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
			assert.Contains(t, domainErr.Message, tt.fragment)
		})
	}
}

func TestClaim_Review(t *testing.T) {
	t.Run("approve sets status and review time", func(t *testing.T) {
		c := createTestClaim(t)
		require.NoError(t, c.Approve("verified against bank statement"))
		assert.Equal(t, ClaimStatusApproved, c.Status)
		assert.True(t, c.IsApproved())
		require.NotNil(t, c.ReviewedAt)
		assert.Equal(t, "verified against bank statement", c.Remarks)
	})

	t.Run("reject sets status and review time", func(t *testing.T) {
		c := createTestClaim(t)
		require.NoError(t, c.Reject("screenshot does not match amount"))
		assert.Equal(t, ClaimStatusRejected, c.Status)
		require.NotNil(t, c.ReviewedAt)
	})

	t.Run("empty remarks keep the existing ones", func(t *testing.T) {
		c, err := NewClaim(uuid.New(), "Ali", "a@b.com", decimal.NewFromInt(10), MethodEasypaisa, "T-1", "https://x/s.png", "sent from savings account")
		require.NoError(t, err)
		require.NoError(t, c.Approve(""))
		assert.Equal(t, "sent from savings account", c.Remarks)
	})

	t.Run("a claim is reviewed exactly once", func(t *testing.T) {
		c := createTestClaim(t)
		require.NoError(t, c.Approve(""))
		reviewedAt := *c.ReviewedAt

		err := c.Reject("changed my mind")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)

		// First decision stands untouched
		assert.Equal(t, ClaimStatusApproved, c.Status)
		assert.Equal(t, reviewedAt, *c.ReviewedAt)
	})

	t.Run("rejected claim cannot be approved later", func(t *testing.T) {
		c := createTestClaim(t)
		require.NoError(t, c.Reject("unreadable screenshot"))

		err := c.Approve("")
		require.Error(t, err)
		assert.Equal(t, ClaimStatusRejected, c.Status)
	})
}

func TestClaim_GetAmountMoney(t *testing.T) {
	c := createTestClaim(t)
	m := c.GetAmountMoney()
	assert.Equal(t, "USD 40.00", m.String())
}
