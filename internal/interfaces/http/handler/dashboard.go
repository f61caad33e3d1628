package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	reportapp "github.com/socialboost/backend/internal/application/report"
	"github.com/socialboost/backend/internal/domain/shared/valueobject"
	"github.com/socialboost/backend/internal/interfaces/http/middleware"
)

// DashboardHandler serves the admin dashboard aggregates
type DashboardHandler struct {
	BaseHandler
	reportService *reportapp.Service
	usdToPKRRate  decimal.Decimal
}

// NewDashboardHandler creates a new DashboardHandler. The PKR rate is a fixed
// configuration value used for display only; all stored figures stay in USD.
func NewDashboardHandler(reportService *reportapp.Service, usdToPKRRate decimal.Decimal) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
		usdToPKRRate:  usdToPKRRate,
	}
}

// RegisterRoutes registers dashboard routes on the given group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/dashboard", middleware.RequireAdmin(), h.Dashboard)
}

// DashboardView wraps the computed stats with display-currency figures
type DashboardView struct {
	Orders   reportapp.OrderStats   `json:"orders"`
	Payments reportapp.PaymentStats `json:"payments"`
	Display  DisplayTotals          `json:"display"`
}

// DisplayTotals carries the approximate PKR equivalents shown next to the
// USD figures
type DisplayTotals struct {
	Currency            string          `json:"currency"`
	Rate                decimal.Decimal `json:"rate"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	CurrentMonthRevenue decimal.Decimal `json:"currentMonthRevenue"`
	ApprovedAmount      decimal.Decimal `json:"approvedAmount"`
}

// Dashboard returns order and payment aggregates (admin)
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	view := DashboardView{
		Orders:   stats.Orders,
		Payments: stats.Payments,
		Display: DisplayTotals{
			Currency:            string(valueobject.PKR),
			Rate:                h.usdToPKRRate,
			TotalRevenue:        h.toPKR(stats.Orders.TotalRevenue),
			CurrentMonthRevenue: h.toPKR(stats.Orders.CurrentMonthRevenue),
			ApprovedAmount:      h.toPKR(stats.Payments.ApprovedAmount),
		},
	}
	h.Success(c, view)
}

func (h *DashboardHandler) toPKR(usd decimal.Decimal) decimal.Decimal {
	converted, err := valueobject.NewMoneyUSD(usd).ConvertTo(valueobject.PKR, h.usdToPKRRate)
	if err != nil {
		return decimal.Zero
	}
	return converted.Amount()
}
