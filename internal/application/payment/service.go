package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	orderdomain "github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
	"github.com/socialboost/backend/internal/domain/shared"
)

// Service handles payment claim submission and review. Claim review is the
// reconciliation point between payments and orders: an approval moves the
// linked order to InProgress in the same transaction as the claim write.
type Service struct {
	claimRepo      payment.Repository
	orderRepo      orderdomain.Repository
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
}

// NewService creates a new payment Service
func NewService(claimRepo payment.Repository, orderRepo orderdomain.Repository) *Service {
	return &Service{
		claimRepo:      claimRepo,
		orderRepo:      orderRepo,
		idempotencyCfg: shared.DefaultIdempotencyConfig(),
	}
}

// SetIdempotencyStore enables duplicate-request detection for CreateClaim
func (s *Service) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotency = store
	s.idempotencyCfg = cfg
}

// CreateClaim files a payment claim against an order. A first claim moves a
// Pending order to PaymentPending atomically with the claim insert; further
// claims against a PaymentPending order leave its status alone. Orders
// already in progress or in a terminal state refuse new claims.
func (s *Service) CreateClaim(ctx context.Context, req CreateClaimRequest) (*ClaimResponse, error) {
	if err := s.claimIdempotencyKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !o.CanAcceptPaymentClaim() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("order is %s and no longer accepts payment claims", o.Status))
	}

	exists, err := s.claimRepo.ExistsActiveTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateTransaction
	}

	// Customer identity is denormalized onto the claim at submission time so
	// the review queue stays readable without joins
	name := req.Name
	if name == "" {
		name = o.CustomerName
	}
	email := req.Email
	if email == "" {
		email = o.CustomerEmail
	}

	claim, err := payment.NewClaim(req.OrderID, name, email, req.Amount,
		payment.Method(req.Method), req.TransactionID, req.ScreenshotURL, req.Remarks)
	if err != nil {
		return nil, err
	}

	var linked *orderdomain.Order
	if o.Status == orderdomain.StatusPending {
		if err := o.TransitionTo(orderdomain.StatusPaymentPending, shared.SystemActor); err != nil {
			return nil, err
		}
		linked = o
	}

	if err := s.claimRepo.CreateWithOrder(ctx, claim, linked); err != nil {
		return nil, err
	}

	response := ToClaimResponse(claim)
	return &response, nil
}

// GetByID retrieves a payment claim. Review data is admin-only.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*ClaimResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClaimResponse(claim)
	return &response, nil
}

// List retrieves payment claims with filtering and pagination (admin-only)
func (s *Service) List(ctx context.Context, filter ClaimListFilter, actor shared.Actor) ([]ClaimResponse, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, shared.ErrForbidden
	}

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
	if filter.Status != "" {
		status := payment.ClaimStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("status: unknown status %q", filter.Status))
		}
		domainFilter.Filters["status"] = status.String()
	}
	if filter.Method != "" {
		domainFilter.Filters["method"] = filter.Method
	}
	if filter.Email != "" {
		domainFilter.Filters["customer_email"] = filter.Email
	}

	claims, err := s.claimRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.claimRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToClaimResponses(claims), total, nil
}

// ListByOrder retrieves the claims filed against one order
func (s *Service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]ClaimResponse, error) {
	claims, err := s.claimRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToClaimResponses(claims), nil
}

// Approve accepts a pending claim and moves its order to InProgress in the
// same transaction. Approving a claim whose order is already InProgress
// (an earlier claim won) records the approval without touching the order.
func (s *Service) Approve(ctx context.Context, claimID uuid.UUID, remarks string, actor shared.Actor) (*ClaimResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepo.FindByID(ctx, claim.OrderID)
	if err != nil {
		return nil, err
	}

	if err := claim.Approve(remarks); err != nil {
		return nil, err
	}

	var linked *orderdomain.Order
	if o.Status != orderdomain.StatusInProgress {
		if err := o.TransitionTo(orderdomain.StatusInProgress, shared.SystemActor); err != nil {
			return nil, err
		}
		linked = o
	}

	if err := s.claimRepo.ReviewWithOrder(ctx, claim, linked); err != nil {
		return nil, err
	}

	response := ToClaimResponse(claim)
	return &response, nil
}

// Reject declines a pending claim. The linked order is left untouched; the
// customer may file a corrected claim afterwards.
func (s *Service) Reject(ctx context.Context, claimID uuid.UUID, remarks string, actor shared.Actor) (*ClaimResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if err := claim.Reject(remarks); err != nil {
		return nil, err
	}
	if err := s.claimRepo.ReviewWithOrder(ctx, claim, nil); err != nil {
		return nil, err
	}

	response := ToClaimResponse(claim)
	return &response, nil
}

func (s *Service) claimIdempotencyKey(ctx context.Context, key string) error {
	if key == "" || s.idempotency == nil || !s.idempotencyCfg.Enabled {
		return nil
	}
	fresh, err := s.idempotency.MarkProcessed(ctx, "claim:"+key, s.idempotencyCfg.TTL)
	if err != nil {
		return err
	}
	if !fresh {
		return shared.NewDomainError("ALREADY_EXISTS", "request with this idempotency key was already processed")
	}
	return nil
}
