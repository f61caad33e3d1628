package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
	"github.com/socialboost/backend/internal/domain/shared"
)

// Service handles order business operations
type Service struct {
	orderRepo      order.Repository
	claimRepo      payment.Repository
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, claimRepo payment.Repository) *Service {
	return &Service{
		orderRepo:      orderRepo,
		claimRepo:      claimRepo,
		idempotencyCfg: shared.DefaultIdempotencyConfig(),
	}
}

// SetIdempotencyStore enables duplicate-request detection for Create
func (s *Service) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotency = store
	s.idempotencyCfg = cfg
}

// Create places a new order in Pending status
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if err := s.claimIdempotencyKey(ctx, "order", req.IdempotencyKey); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		req.Name, req.Email, req.Phone,
		ParsePlatform(req.Platform), req.Service,
		req.ProfileLink, req.PostLink, req.SocialHandle,
		req.Quantity, req.Price,
	)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order. Customers only see their own orders; to them a
// foreign order is indistinguishable from a missing one.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !o.IsOwnedBy(actor.Email) {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Track retrieves an order together with its payment claims for the public
// tracking page. Tracking is keyed by the unguessable order id only.
func (s *Service) Track(ctx context.Context, id uuid.UUID) (*TrackOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	claims, err := s.claimRepo.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	tracked := make([]TrackedClaim, 0, len(claims))
	for i := range claims {
		c := &claims[i]
		tracked = append(tracked, TrackedClaim{
			ID:          c.ID,
			Amount:      c.Amount,
			Method:      c.Method.String(),
			Status:      c.Status.String(),
			SubmittedAt: c.CreatedAt,
			ReviewedAt:  c.ReviewedAt,
		})
	}

	return &TrackOrderResponse{
		Order:  ToOrderResponse(o),
		Claims: tracked,
	}, nil
}

// List retrieves orders with filtering and pagination. Non-admin callers are
// always scoped to their own email regardless of the requested filter.
func (s *Service) List(ctx context.Context, filter OrderListFilter, actor shared.Actor) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	email := filter.Email
	if !actor.IsAdmin() {
		email = actor.Email
	}
	if email != "" {
		domainFilter.Filters["customer_email"] = email
	}
	if filter.Status != "" {
		status := order.Status(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("status: unknown status %q", filter.Status))
		}
		domainFilter.Filters["status"] = status.String()
	}
	if filter.Platform != "" {
		domainFilter.Filters["platform"] = filter.Platform
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// SetStatus moves an order to the given status on behalf of the actor.
// Cancelling also rejects any payment claims still pending review, in the
// same transaction as the status write.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, target string, actor shared.Actor) (*OrderResponse, error) {
	status := order.Status(target)

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !o.IsOwnedBy(actor.Email) {
		return nil, shared.ErrNotFound
	}

	if err := o.TransitionTo(status, actor); err != nil {
		return nil, err
	}

	if status == order.StatusCancelled {
		err = s.orderRepo.SaveWithLockRejectingClaims(ctx, o, "order was cancelled")
	} else {
		err = s.orderRepo.SaveWithLock(ctx, o)
	}
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// Cancel cancels an order on behalf of the actor
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor shared.Actor) (*OrderResponse, error) {
	return s.SetStatus(ctx, id, order.StatusCancelled.String(), actor)
}

// claimIdempotencyKey consumes a client-supplied idempotency key. The second
// request carrying the same key within the TTL fails with ALREADY_EXISTS
// instead of creating a duplicate record.
func (s *Service) claimIdempotencyKey(ctx context.Context, scope, key string) error {
	if key == "" || s.idempotency == nil || !s.idempotencyCfg.Enabled {
		return nil
	}
	fresh, err := s.idempotency.MarkProcessed(ctx, scope+":"+key, s.idempotencyCfg.TTL)
	if err != nil {
		return err
	}
	if !fresh {
		return shared.NewDomainError("ALREADY_EXISTS", "request with this idempotency key was already processed")
	}
	return nil
}
