package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/socialboost/backend/internal/domain/shared"
	"github.com/socialboost/backend/internal/domain/shared/valueobject"
)

// Method is a supported manual payment channel
type Method string

const (
	MethodEasypaisa    Method = "easypaisa"
	MethodJazzcash     Method = "jazzcash"
	MethodBankTransfer Method = "bankTransfer"
	MethodPaypal       Method = "paypal"
	MethodGooglePay    Method = "googlePay"
)

// IsValid checks if the method is a known Method
func (m Method) IsValid() bool {
	switch m {
	case MethodEasypaisa, MethodJazzcash, MethodBankTransfer, MethodPaypal, MethodGooglePay:
		return true
	}
	return false
}

// String returns the string representation of Method
func (m Method) String() string {
	return string(m)
}

// ClaimStatus represents the review state of a payment claim
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "Pending"
	ClaimStatusApproved ClaimStatus = "Approved"
	ClaimStatusRejected ClaimStatus = "Rejected"
)

// IsValid checks if the status is a valid ClaimStatus
func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ClaimStatus
func (s ClaimStatus) String() string {
	return string(s)
}

// Claim is a customer-submitted assertion that they paid for an order
// out-of-band. It weakly references its order by id and carries a
// denormalized copy of the customer identity taken at claim time.
// A claim is reviewed exactly once: Pending -> Approved | Rejected.
type Claim struct {
	shared.BaseAggregateRoot
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName  string
	CustomerEmail string          `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"` // USD
	Method        Method          `gorm:"not null"`
	TransactionID string          `gorm:"not null;index"`
	ScreenshotURL string          `gorm:"not null"`
	Status        ClaimStatus     `gorm:"not null;index"`
	Remarks       string
	ReviewedAt    *time.Time
}

// TableName sets the table name for GORM
func (Claim) TableName() string {
	return "payment_claims"
}

// NewClaim creates a new payment claim in Pending status
func NewClaim(orderID uuid.UUID, customerName, customerEmail string, amount decimal.Decimal, method Method, transactionID, screenshotURL, remarks string) (*Claim, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "orderId: order id cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "amount: amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("method: unknown payment method %q", method))
	}
	if strings.TrimSpace(transactionID) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "transactionId: transaction reference cannot be empty")
	}
	if strings.TrimSpace(screenshotURL) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "screenshotUrl: payment screenshot is required")
	}

	return &Claim{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		Amount:            amount,
		Method:            method,
		TransactionID:     strings.TrimSpace(transactionID),
		ScreenshotURL:     screenshotURL,
		Status:            ClaimStatusPending,
		Remarks:           remarks,
	}, nil
}

// Approve marks the claim as approved. Only a Pending claim may be reviewed.
func (c *Claim) Approve(remarks string) error {
	return c.review(ClaimStatusApproved, remarks)
}

// Reject marks the claim as rejected. Only a Pending claim may be reviewed.
func (c *Claim) Reject(remarks string) error {
	return c.review(ClaimStatusRejected, remarks)
}

func (c *Claim) review(decision ClaimStatus, remarks string) error {
	if c.Status != ClaimStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("claim has already been reviewed (status %s)", c.Status))
	}

	now := time.Now()
	c.Status = decision
	c.ReviewedAt = &now
	if remarks != "" {
		c.Remarks = remarks
	}
	c.UpdatedAt = now
	return nil
}

// IsPending returns true if the claim is awaiting review
func (c *Claim) IsPending() bool {
	return c.Status == ClaimStatusPending
}

// IsApproved returns true if the claim was approved
func (c *Claim) IsApproved() bool {
	return c.Status == ClaimStatusApproved
}

// GetAmountMoney returns the claimed amount as a Money value object
func (c *Claim) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.Amount)
}
