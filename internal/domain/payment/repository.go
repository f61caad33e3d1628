package payment

import (
	"context"

	"github.com/google/uuid"

	orderdomain "github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/shared"
)

// Repository defines persistence operations for payment claims.
// The two workflow methods take the linked order so the claim write and the
// order-status write commit in a single transaction; a claim approved while
// its order stays behind is a consistency defect, not an acceptable outcome.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Claim, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Claim, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]Claim, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status ClaimStatus) (int64, error)

	// ExistsActiveTransactionID reports whether a non-Rejected claim already
	// uses the given transaction reference
	ExistsActiveTransactionID(ctx context.Context, transactionID string) (bool, error)

	// CreateWithOrder inserts the claim and persists the order's move to
	// PaymentPending atomically. ord may be nil when the order status is
	// left unchanged (order already in progress).
	CreateWithOrder(ctx context.Context, claim *Claim, ord *orderdomain.Order) error

	// ReviewWithOrder persists the claim review with an optimistic version
	// check and, when ord is non-nil (approval), the order's move to
	// InProgress in the same transaction.
	ReviewWithOrder(ctx context.Context, claim *Claim, ord *orderdomain.Order) error
}
