package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
	"github.com/socialboost/backend/internal/domain/shared"
)

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment claim by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Claim, error) {
	var claim payment.Claim
	if err := r.db.WithContext(ctx).First(&claim, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &claim, nil
}

// FindAll finds payment claims with filtering and pagination
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Claim, error) {
	var claims []payment.Claim
	query := r.applyFilter(r.db.WithContext(ctx).Model(&payment.Claim{}), filter)
	if err := query.Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

// FindByOrderID finds all claims filed against an order, newest first
func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]payment.Claim, error) {
	var claims []payment.Claim
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

// Count counts payment claims matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&payment.Claim{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts claims in the given status
func (r *GormPaymentRepository) CountByStatus(ctx context.Context, status payment.ClaimStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&payment.Claim{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsActiveTransactionID reports whether a non-Rejected claim already uses
// the given transaction reference. Rejected claims release their reference so
// a corrected resubmission can reuse it.
func (r *GormPaymentRepository) ExistsActiveTransactionID(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&payment.Claim{}).
		Where("transaction_id = ? AND status <> ?", transactionID, payment.ClaimStatusRejected).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateWithOrder inserts the claim and persists the order's status move in a
// single transaction. ord may be nil when the order is left unchanged.
// The partial unique index on active transaction references backstops the
// service-level duplicate check, so a lost race surfaces here as
// DUPLICATE_TRANSACTION rather than a raw constraint error.
func (r *GormPaymentRepository) CreateWithOrder(ctx context.Context, claim *payment.Claim, ord *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrDuplicateTransaction
			}
			return err
		}
		if ord != nil {
			return saveOrderWithLock(tx, ord)
		}
		return nil
	})
}

// ReviewWithOrder persists the claim review and, when ord is non-nil, the
// order's status move in the same transaction. Both writes carry optimistic
// version checks: two admins racing on the same claim leaves exactly one
// decision recorded.
func (r *GormPaymentRepository) ReviewWithOrder(ctx context.Context, claim *payment.Claim, ord *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := claim.Version
		claim.Version++
		claim.UpdatedAt = time.Now()

		result := tx.Model(&payment.Claim{}).
			Where("id = ? AND version = ?", claim.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":      claim.Status,
				"remarks":     claim.Remarks,
				"reviewed_at": claim.ReviewedAt,
				"version":     claim.Version,
				"updated_at":  claim.UpdatedAt,
			})
		if result.Error != nil {
			claim.Version = currentVersion
			return result.Error
		}
		if result.RowsAffected == 0 {
			claim.Version = currentVersion
			return shared.ErrConcurrencyConflict
		}

		if ord != nil {
			return saveOrderWithLock(tx, ord)
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ClaimSortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "customer_email":
			query = query.Where("customer_email = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		}
	}
	return query
}

// Ensure GormPaymentRepository implements payment.Repository
var _ payment.Repository = (*GormPaymentRepository)(nil)
