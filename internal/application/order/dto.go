package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/socialboost/backend/internal/domain/catalog"
	"github.com/socialboost/backend/internal/domain/order"
)

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Email        string          `json:"email" binding:"required,email"`
	Phone        string          `json:"phone" binding:"required,min=1,max=50"`
	Platform     string          `json:"platform" binding:"required"`
	Service      string          `json:"service" binding:"required"`
	ProfileLink  string          `json:"profileLink" binding:"required"`
	PostLink     string          `json:"postLink"`
	SocialHandle string          `json:"socialHandle"`
	Quantity     int64           `json:"quantity" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`

	// IdempotencyKey lets clients safely retry the request
	IdempotencyKey string `json:"idempotencyKey"`
}

// UpdateStatusRequest represents a request to move an order to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Email    string `form:"email"`
	Status   string `form:"status"`
	Platform string `form:"platform"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"name"`
	CustomerEmail string          `json:"email"`
	Phone         string          `json:"phone"`
	Platform      string          `json:"platform"`
	Service       string          `json:"service"`
	ProfileLink   string          `json:"profileLink"`
	PostLink      string          `json:"postLink,omitempty"`
	SocialHandle  string          `json:"socialHandle,omitempty"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	StatusDisplay string          `json:"statusDisplay"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TrackedClaim is the claim summary shown on the public tracking page
type TrackedClaim struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	SubmittedAt time.Time       `json:"submittedAt"`
	ReviewedAt  *time.Time      `json:"reviewedAt,omitempty"`
}

// TrackOrderResponse represents an order together with its payment claims
type TrackOrderResponse struct {
	Order  OrderResponse  `json:"order"`
	Claims []TrackedClaim `json:"claims"`
}

// ToOrderResponse converts a domain order to an OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Phone:         o.Phone,
		Platform:      o.Platform.String(),
		Service:       o.Service,
		ProfileLink:   o.ProfileLink,
		PostLink:      o.PostLink,
		SocialHandle:  o.SocialHandle,
		Quantity:      o.Quantity,
		Price:         o.Price,
		Status:        o.Status.String(),
		StatusDisplay: o.Status.DisplayName(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders to responses
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}

// ParsePlatform converts the wire platform string to a catalog.Platform
func ParsePlatform(s string) catalog.Platform {
	return catalog.Platform(s)
}
