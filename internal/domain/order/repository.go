package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/socialboost/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByEmail(ctx context.Context, email string, filter shared.Filter) ([]Order, error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// Save persists a new order
	Save(ctx context.Context, o *Order) error

	// SaveWithLock persists a status change with an optimistic version check,
	// failing with CONCURRENCY_CONFLICT if the row changed underneath us
	SaveWithLock(ctx context.Context, o *Order) error

	// SaveWithLockRejectingClaims persists a status change and, in the same
	// transaction, marks all Pending payment claims for the order as Rejected
	// with the given remarks. Used when an order is cancelled so outstanding
	// claims do not linger under review.
	SaveWithLockRejectingClaims(ctx context.Context, o *Order, claimRemarks string) error
}
