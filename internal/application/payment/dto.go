package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/socialboost/backend/internal/domain/payment"
)

// CreateClaimRequest represents a customer reporting an out-of-band payment
type CreateClaimRequest struct {
	OrderID       uuid.UUID       `json:"orderId" binding:"required"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required"`
	TransactionID string          `json:"transactionId" binding:"required"`
	ScreenshotURL string          `json:"screenshotUrl" binding:"required"`
	Remarks       string          `json:"remarks"`

	// IdempotencyKey lets clients safely retry the request
	IdempotencyKey string `json:"idempotencyKey"`
}

// ReviewClaimRequest represents an admin decision on a pending claim
type ReviewClaimRequest struct {
	Remarks string `json:"remarks" binding:"max=500"`
}

// ClaimListFilter represents filter options for the claim list
type ClaimListFilter struct {
	Status   string `form:"status"`
	Method   string `form:"method"`
	Email    string `form:"email"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ClaimResponse represents a payment claim in API responses
type ClaimResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"orderId"`
	CustomerName  string          `json:"name"`
	CustomerEmail string          `json:"email"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transactionId"`
	ScreenshotURL string          `json:"screenshotUrl"`
	Status        string          `json:"status"`
	Remarks       string          `json:"remarks,omitempty"`
	SubmittedAt   time.Time       `json:"submittedAt"`
	ReviewedAt    *time.Time      `json:"reviewedAt,omitempty"`
}

// ToClaimResponse converts a domain claim to a ClaimResponse
func ToClaimResponse(c *payment.Claim) ClaimResponse {
	return ClaimResponse{
		ID:            c.ID,
		OrderID:       c.OrderID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		Amount:        c.Amount,
		Method:        c.Method.String(),
		TransactionID: c.TransactionID,
		ScreenshotURL: c.ScreenshotURL,
		Status:        c.Status.String(),
		Remarks:       c.Remarks,
		SubmittedAt:   c.CreatedAt,
		ReviewedAt:    c.ReviewedAt,
	}
}

// ToClaimResponses converts a slice of domain claims to responses
func ToClaimResponses(claims []payment.Claim) []ClaimResponse {
	responses := make([]ClaimResponse, 0, len(claims))
	for i := range claims {
		responses = append(responses, ToClaimResponse(&claims[i]))
	}
	return responses
}
