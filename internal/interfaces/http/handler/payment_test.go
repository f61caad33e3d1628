package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	paymentapp "github.com/socialboost/backend/internal/application/payment"
	"github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
	"github.com/socialboost/backend/internal/domain/shared"
	"github.com/socialboost/backend/internal/interfaces/http/dto"
	"github.com/socialboost/backend/internal/interfaces/http/middleware"
)

func newPaymentRouter(claimRepo *MockClaimRepository, orderRepo *MockOrderRepository, actor *shared.Actor) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	if actor != nil {
		engine.Use(func(c *gin.Context) {
			c.Set(middleware.ActorKey, *actor)
			c.Next()
		})
	}

	h := NewPaymentHandler(paymentapp.NewService(claimRepo, orderRepo))
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func newPendingClaim(t *testing.T, o *order.Order) *payment.Claim {
	t.Helper()
	claim, err := payment.NewClaim(o.ID, o.CustomerName, o.CustomerEmail,
		decimal.NewFromInt(40), payment.MethodEasypaisa, "EP-1001",
		"https://storage.example.com/screenshots/a.png", "")
	require.NoError(t, err)
	return claim
}

func TestPaymentHandler_Create(t *testing.T) {
	t.Run("files a claim and moves the order to PaymentPending", func(t *testing.T) {
		o := newPlacedOrder(t, "ali@example.com")
		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ExistsActiveTransactionID", mock.Anything, "EP-1001").Return(false, nil)
		claimRepo.On("CreateWithOrder", mock.Anything, mock.AnythingOfType("*payment.Claim"), o).Return(nil)

		router := newPaymentRouter(claimRepo, orderRepo, nil)

		body, _ := json.Marshal(gin.H{
			"orderId":       o.ID,
			"amount":        "40",
			"method":        "easypaisa",
			"transactionId": "EP-1001",
			"screenshotUrl": "https://storage.example.com/screenshots/a.png",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/payment-claims", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		claimRepo.AssertExpectations(t)
	})

	t.Run("duplicate transaction reference maps to 409", func(t *testing.T) {
		o := newPlacedOrder(t, "ali@example.com")
		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ExistsActiveTransactionID", mock.Anything, "EP-1001").Return(true, nil)

		router := newPaymentRouter(claimRepo, orderRepo, nil)

		body, _ := json.Marshal(gin.H{
			"orderId":       o.ID,
			"amount":        "40",
			"method":        "easypaisa",
			"transactionId": "EP-1001",
			"screenshotUrl": "https://storage.example.com/screenshots/a.png",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/payment-claims", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "DUPLICATE_TRANSACTION", resp.Error.Code)
	})
}

func TestPaymentHandler_Review(t *testing.T) {
	t.Run("approval moves the order in the same call", func(t *testing.T) {
		o := newPlacedOrder(t, "ali@example.com")
		require.NoError(t, o.TransitionTo(order.StatusPaymentPending, shared.SystemActor))
		claim := newPendingClaim(t, o)

		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)
		claimRepo.On("FindByID", mock.Anything, claim.ID).Return(claim, nil)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		claimRepo.On("ReviewWithOrder", mock.Anything, claim, o).Return(nil)

		admin := shared.Actor{Email: "admin@example.com", Role: shared.RoleAdmin}
		router := newPaymentRouter(claimRepo, orderRepo, &admin)

		body, _ := json.Marshal(gin.H{"remarks": "verified against bank statement"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/payment-claims/"+claim.ID.String()+"/approve", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, order.StatusInProgress, o.Status)
		claimRepo.AssertExpectations(t)
	})

	t.Run("reject works without a body", func(t *testing.T) {
		o := newPlacedOrder(t, "ali@example.com")
		claim := newPendingClaim(t, o)

		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)
		claimRepo.On("FindByID", mock.Anything, claim.ID).Return(claim, nil)
		claimRepo.On("ReviewWithOrder", mock.Anything, claim, (*order.Order)(nil)).Return(nil)

		admin := shared.Actor{Email: "admin@example.com", Role: shared.RoleAdmin}
		router := newPaymentRouter(claimRepo, orderRepo, &admin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/payment-claims/"+claim.ID.String()+"/reject", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, payment.ClaimStatusRejected, claim.Status)
	})

	t.Run("non-admin is blocked by the route guard", func(t *testing.T) {
		o := newPlacedOrder(t, "ali@example.com")
		claim := newPendingClaim(t, o)

		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)

		user := shared.Actor{Email: "ali@example.com", Role: shared.RoleUser}
		router := newPaymentRouter(claimRepo, orderRepo, &user)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/payment-claims/"+claim.ID.String()+"/approve", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		claimRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("second decision maps to 422", func(t *testing.T) {
		o := newPlacedOrder(t, "ali@example.com")
		claim := newPendingClaim(t, o)
		require.NoError(t, claim.Approve("done"))

		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)
		claimRepo.On("FindByID", mock.Anything, claim.ID).Return(claim, nil)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		admin := shared.Actor{Email: "admin@example.com", Role: shared.RoleAdmin}
		router := newPaymentRouter(claimRepo, orderRepo, &admin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/payment-claims/"+claim.ID.String()+"/reject", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_STATE", resp.Error.Code)
		claimRepo.AssertNotCalled(t, "ReviewWithOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentHandler_List(t *testing.T) {
	t.Run("admin lists claims with meta", func(t *testing.T) {
		o := newPlacedOrder(t, "ali@example.com")
		claim := newPendingClaim(t, o)

		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)
		claimRepo.On("FindAll", mock.Anything, mock.Anything).Return([]payment.Claim{*claim}, nil)
		claimRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		admin := shared.Actor{Email: "admin@example.com", Role: shared.RoleAdmin}
		router := newPaymentRouter(claimRepo, orderRepo, &admin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/payment-claims?status=Pending", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("customer cannot list the review queue", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		claimRepo := new(MockClaimRepository)

		user := shared.Actor{Email: "ali@example.com", Role: shared.RoleUser}
		router := newPaymentRouter(claimRepo, orderRepo, &user)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/payment-claims", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
