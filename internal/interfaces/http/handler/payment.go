package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	paymentapp "github.com/socialboost/backend/internal/application/payment"
	"github.com/socialboost/backend/internal/domain/shared"
	"github.com/socialboost/backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment claim submission and review endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.Service
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment claim routes on the given group.
// Submission is public (customers report out-of-band payments); the review
// queue and decisions are admin-only.
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	claims := rg.Group("/payment-claims")
	claims.POST("", h.Create)
	claims.GET("", middleware.RequireAdmin(), h.List)
	claims.GET("/:id", middleware.RequireAdmin(), h.Get)
	claims.POST("/:id/approve", middleware.RequireAdmin(), h.Approve)
	claims.POST("/:id/reject", middleware.RequireAdmin(), h.Reject)
}

// Create files a payment claim against an order
func (h *PaymentHandler) Create(c *gin.Context) {
	var req paymentapp.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.paymentService.CreateClaim(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves a single payment claim (admin)
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.GetByID(c.Request.Context(), id, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List retrieves payment claims with filtering and pagination (admin)
func (h *PaymentHandler) List(c *gin.Context) {
	var filter paymentapp.ClaimListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	claims, total, err := h.paymentService.List(c.Request.Context(), filter, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, claims, total, page, pageSize)
}

// Approve accepts a pending claim; the linked order moves to InProgress in
// the same transaction
func (h *PaymentHandler) Approve(c *gin.Context) {
	h.review(c, h.paymentService.Approve)
}

// Reject declines a pending claim; the linked order is left untouched
func (h *PaymentHandler) Reject(c *gin.Context) {
	h.review(c, h.paymentService.Reject)
}

func (h *PaymentHandler) review(c *gin.Context, decide func(ctx context.Context, id uuid.UUID, remarks string, actor shared.Actor) (*paymentapp.ClaimResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	// The remarks body is optional; a bare decision is fine
	var req paymentapp.ReviewClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	actor, hasActor := middleware.GetActor(c)
	if !hasActor {
		h.HandleError(c, errUnauthenticated)
		return
	}

	resp, err := decide(c.Request.Context(), id, req.Remarks, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
