package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/socialboost/backend/internal/domain/catalog"
	orderdomain "github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
	"github.com/socialboost/backend/internal/domain/shared"
)

// MockClaimRepository is a mock implementation of payment.Repository
type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Claim), args.Error(1)
}

func (m *MockClaimRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Claim, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Claim), args.Error(1)
}

func (m *MockClaimRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]payment.Claim, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Claim), args.Error(1)
}

func (m *MockClaimRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClaimRepository) CountByStatus(ctx context.Context, status payment.ClaimStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClaimRepository) ExistsActiveTransactionID(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClaimRepository) CreateWithOrder(ctx context.Context, claim *payment.Claim, ord *orderdomain.Order) error {
	args := m.Called(ctx, claim, ord)
	return args.Error(0)
}

func (m *MockClaimRepository) ReviewWithOrder(ctx context.Context, claim *payment.Claim, ord *orderdomain.Order) error {
	args := m.Called(ctx, claim, ord)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orderdomain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderdomain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]orderdomain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderdomain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByEmail(ctx context.Context, email string, filter shared.Filter) ([]orderdomain.Order, error) {
	args := m.Called(ctx, email, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderdomain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status orderdomain.Status, filter shared.Filter) ([]orderdomain.Order, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderdomain.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status orderdomain.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *orderdomain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *orderdomain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLockRejectingClaims(ctx context.Context, o *orderdomain.Order, claimRemarks string) error {
	args := m.Called(ctx, o, claimRemarks)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Test helpers
var (
	testAdmin = shared.Actor{Email: "admin@example.com", Role: shared.RoleAdmin}
	testUser  = shared.Actor{Email: "ali@example.com", Role: shared.RoleUser}
)

func createPendingOrder(t *testing.T) *orderdomain.Order {
	o, err := orderdomain.NewOrder(
		"Ali Raza", "ali@example.com", "+92-300-1234567",
		catalog.PlatformInstagram, "Followers",
		"https://instagram.com/ali", "", "@ali",
		1000, decimal.NewFromFloat(40.00),
	)
	require.NoError(t, err)
	return o
}

func createClaimRequest(orderID uuid.UUID) CreateClaimRequest {
	return CreateClaimRequest{
		OrderID:       orderID,
		Amount:        decimal.NewFromFloat(40.00),
		Method:        "easypaisa",
		TransactionID: "EP-20260801-0042",
		ScreenshotURL: "https://cdn.example.com/screenshots/ep42.png",
	}
}

func TestService_CreateClaim(t *testing.T) {
	t.Run("first claim moves a Pending order to PaymentPending", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ExistsActiveTransactionID", mock.Anything, "EP-20260801-0042").Return(false, nil)
		claimRepo.On("CreateWithOrder", mock.Anything, mock.AnythingOfType("*payment.Claim"), o).Return(nil)

		resp, err := service.CreateClaim(context.Background(), createClaimRequest(o.ID))
		require.NoError(t, err)
		assert.Equal(t, "Pending", resp.Status)
		// The order travels with the claim insert so both commit together
		assert.Equal(t, orderdomain.StatusPaymentPending, o.Status)
		// Customer identity denormalized from the order
		assert.Equal(t, "ali@example.com", resp.CustomerEmail)
		claimRepo.AssertExpectations(t)
	})

	t.Run("claim against an order already awaiting payment leaves it alone", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)
		require.NoError(t, o.TransitionTo(orderdomain.StatusPaymentPending, shared.SystemActor))

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ExistsActiveTransactionID", mock.Anything, mock.Anything).Return(false, nil)
		claimRepo.On("CreateWithOrder", mock.Anything, mock.AnythingOfType("*payment.Claim"), (*orderdomain.Order)(nil)).Return(nil)

		_, err := service.CreateClaim(context.Background(), createClaimRequest(o.ID))
		require.NoError(t, err)
		assert.Equal(t, orderdomain.StatusPaymentPending, o.Status)
		claimRepo.AssertExpectations(t)
	})

	t.Run("reused transaction reference is refused", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ExistsActiveTransactionID", mock.Anything, "EP-20260801-0042").Return(true, nil)

		_, err := service.CreateClaim(context.Background(), createClaimRequest(o.ID))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_TRANSACTION", domainErr.Code)
		assert.Equal(t, orderdomain.StatusPending, o.Status)
		claimRepo.AssertNotCalled(t, "CreateWithOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("order already in progress accepts no further claims", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)
		require.NoError(t, o.TransitionTo(orderdomain.StatusPaymentPending, shared.SystemActor))
		require.NoError(t, o.TransitionTo(orderdomain.StatusInProgress, shared.SystemActor))

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := service.CreateClaim(context.Background(), createClaimRequest(o.ID))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, orderdomain.StatusInProgress, o.Status)
		claimRepo.AssertNotCalled(t, "ExistsActiveTransactionID", mock.Anything, mock.Anything)
		claimRepo.AssertNotCalled(t, "CreateWithOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("terminal orders accept no claims", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)
		require.NoError(t, o.TransitionTo(orderdomain.StatusCancelled, testAdmin))

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := service.CreateClaim(context.Background(), createClaimRequest(o.ID))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		claimRepo.AssertNotCalled(t, "ExistsActiveTransactionID", mock.Anything, mock.Anything)
	})

	t.Run("unknown order is NOT_FOUND", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		id := uuid.New()

		orderRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.CreateClaim(context.Background(), createClaimRequest(id))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("replayed idempotency key does not create a second claim", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		store := new(MockIdempotencyStore)
		service := NewService(claimRepo, orderRepo)
		service.SetIdempotencyStore(store, shared.DefaultIdempotencyConfig())

		req := createClaimRequest(uuid.New())
		req.IdempotencyKey = "retry-key-9"

		store.On("MarkProcessed", mock.Anything, "claim:retry-key-9", mock.Anything).Return(false, nil)

		_, err := service.CreateClaim(context.Background(), req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestService_Approve(t *testing.T) {
	t.Run("approval moves the order to InProgress atomically", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)
		require.NoError(t, o.TransitionTo(orderdomain.StatusPaymentPending, shared.SystemActor))

		claim, err := payment.NewClaim(o.ID, o.CustomerName, o.CustomerEmail,
			decimal.NewFromFloat(40.00), payment.MethodEasypaisa, "EP-1", "https://x/s.png", "")
		require.NoError(t, err)

		claimRepo.On("FindByID", mock.Anything, claim.ID).Return(claim, nil)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ReviewWithOrder", mock.Anything, claim, o).Return(nil)

		resp, err := service.Approve(context.Background(), claim.ID, "verified", testAdmin)
		require.NoError(t, err)
		assert.Equal(t, "Approved", resp.Status)
		assert.NotNil(t, resp.ReviewedAt)
		assert.Equal(t, orderdomain.StatusInProgress, o.Status)
		claimRepo.AssertExpectations(t)
	})

	t.Run("approval with order already InProgress leaves it untouched", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)
		require.NoError(t, o.TransitionTo(orderdomain.StatusInProgress, testAdmin))

		claim, err := payment.NewClaim(o.ID, o.CustomerName, o.CustomerEmail,
			decimal.NewFromFloat(40.00), payment.MethodJazzcash, "JC-1", "https://x/s.png", "")
		require.NoError(t, err)

		claimRepo.On("FindByID", mock.Anything, claim.ID).Return(claim, nil)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ReviewWithOrder", mock.Anything, claim, (*orderdomain.Order)(nil)).Return(nil)

		_, err = service.Approve(context.Background(), claim.ID, "", testAdmin)
		require.NoError(t, err)
		assert.Equal(t, orderdomain.StatusInProgress, o.Status)
	})

	t.Run("non-admin callers are refused", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		service := NewService(claimRepo, new(MockOrderRepository))

		_, err := service.Approve(context.Background(), uuid.New(), "", testUser)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		claimRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("a reviewed claim cannot be reviewed again", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)

		claim, err := payment.NewClaim(o.ID, o.CustomerName, o.CustomerEmail,
			decimal.NewFromFloat(40.00), payment.MethodEasypaisa, "EP-1", "https://x/s.png", "")
		require.NoError(t, err)
		require.NoError(t, claim.Reject("unreadable"))

		claimRepo.On("FindByID", mock.Anything, claim.ID).Return(claim, nil)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err = service.Approve(context.Background(), claim.ID, "", testAdmin)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		claimRepo.AssertNotCalled(t, "ReviewWithOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Reject(t *testing.T) {
	t.Run("rejection records the decision and leaves the order alone", func(t *testing.T) {
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)
		require.NoError(t, o.TransitionTo(orderdomain.StatusPaymentPending, shared.SystemActor))

		claim, err := payment.NewClaim(o.ID, o.CustomerName, o.CustomerEmail,
			decimal.NewFromFloat(40.00), payment.MethodBankTransfer, "BT-1", "https://x/s.png", "")
		require.NoError(t, err)

		claimRepo.On("FindByID", mock.Anything, claim.ID).Return(claim, nil)
		claimRepo.On("ReviewWithOrder", mock.Anything, claim, (*orderdomain.Order)(nil)).Return(nil)

		resp, err := service.Reject(context.Background(), claim.ID, "amount mismatch", testAdmin)
		require.NoError(t, err)
		assert.Equal(t, "Rejected", resp.Status)
		assert.Equal(t, "amount mismatch", resp.Remarks)
		assert.Equal(t, orderdomain.StatusPaymentPending, o.Status)
		orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejected reference can be reused by a corrected claim", func(t *testing.T) {
		// ExistsActiveTransactionID only counts non-Rejected claims; after a
		// rejection the same reference passes the duplicate check again.
		claimRepo := new(MockClaimRepository)
		orderRepo := new(MockOrderRepository)
		service := NewService(claimRepo, orderRepo)
		o := createPendingOrder(t)
		require.NoError(t, o.TransitionTo(orderdomain.StatusPaymentPending, shared.SystemActor))

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ExistsActiveTransactionID", mock.Anything, "EP-20260801-0042").Return(false, nil)
		claimRepo.On("CreateWithOrder", mock.Anything, mock.AnythingOfType("*payment.Claim"), (*orderdomain.Order)(nil)).Return(nil)

		_, err := service.CreateClaim(context.Background(), createClaimRequest(o.ID))
		require.NoError(t, err)
	})
}
