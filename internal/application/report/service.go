package report

import (
	"context"
	"time"

	"github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
	"github.com/socialboost/backend/internal/domain/shared"
)

// maxDashboardRows bounds how many rows the dashboard aggregates over.
// The storefront's order book is small; revisit if it outgrows this.
const maxDashboardRows = 10000

// DashboardResponse bundles the aggregate views shown on the admin dashboard
type DashboardResponse struct {
	Orders   OrderStats   `json:"orders"`
	Payments PaymentStats `json:"payments"`
}

// Service computes dashboard aggregates
type Service struct {
	orderRepo order.Repository
	claimRepo payment.Repository
	now       func() time.Time
}

// NewService creates a new report Service
func NewService(orderRepo order.Repository, claimRepo payment.Repository) *Service {
	return &Service{
		orderRepo: orderRepo,
		claimRepo: claimRepo,
		now:       time.Now,
	}
}

// Dashboard builds the admin dashboard aggregates (admin-only)
func (s *Service) Dashboard(ctx context.Context, actor shared.Actor) (*DashboardResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	filter := shared.DefaultFilter()
	filter.PageSize = maxDashboardRows

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	claims, err := s.claimRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Orders:   ComputeOrderStats(orders, s.now()),
		Payments: ComputePaymentStats(claims),
	}, nil
}
