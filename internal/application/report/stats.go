// Package report computes the read-only aggregates behind the admin
// dashboard. All figures are derived on demand from the order and payment
// stores; nothing here is persisted.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/socialboost/backend/internal/domain/order"
	"github.com/socialboost/backend/internal/domain/payment"
)

var hundred = decimal.NewFromInt(100)

// ServiceRevenue is revenue attributed to one platform/service pair
type ServiceRevenue struct {
	Platform string          `json:"platform"`
	Service  string          `json:"service"`
	Orders   int64           `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// OrderStats is the aggregate view over all orders
type OrderStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`

	// TotalRevenue sums the price of every order regardless of status, so the
	// headline number matches the raw order book
	TotalRevenue decimal.Decimal `json:"totalRevenue"`

	// Growth figures are computed over Completed orders only: money not yet
	// collected should not inflate the trend
	CurrentMonthRevenue  decimal.Decimal `json:"currentMonthRevenue"`
	PreviousMonthRevenue decimal.Decimal `json:"previousMonthRevenue"`
	MonthlyGrowth        decimal.Decimal `json:"monthlyGrowth"`

	RevenueByService []ServiceRevenue `json:"revenueByService"`
}

// PaymentStats is the aggregate view over all payment claims
type PaymentStats struct {
	Total          int64           `json:"total"`
	Pending        int64           `json:"pending"`
	Approved       int64           `json:"approved"`
	Rejected       int64           `json:"rejected"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
}

// ComputeOrderStats derives order aggregates from the given orders as of now
func ComputeOrderStats(orders []order.Order, now time.Time) OrderStats {
	stats := OrderStats{
		ByStatus:     make(map[string]int64, len(order.AllStatuses())),
		TotalRevenue: decimal.Zero,
	}
	for _, s := range order.AllStatuses() {
		stats.ByStatus[s.String()] = 0
	}

	currentStart := monthStart(now)
	previousStart := monthStart(currentStart.AddDate(0, 0, -1))

	current := decimal.Zero
	previous := decimal.Zero
	byService := make(map[string]*ServiceRevenue)
	serviceOrder := make([]string, 0)

	for i := range orders {
		o := &orders[i]
		stats.Total++
		stats.ByStatus[o.Status.String()]++
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Price)

		key := o.Platform.String() + "/" + o.Service
		entry, ok := byService[key]
		if !ok {
			entry = &ServiceRevenue{Platform: o.Platform.String(), Service: o.Service, Revenue: decimal.Zero}
			byService[key] = entry
			serviceOrder = append(serviceOrder, key)
		}
		entry.Orders++
		entry.Revenue = entry.Revenue.Add(o.Price)

		if o.Status == order.StatusCompleted {
			switch {
			case !o.CreatedAt.Before(currentStart):
				current = current.Add(o.Price)
			case !o.CreatedAt.Before(previousStart):
				previous = previous.Add(o.Price)
			}
		}
	}

	stats.CurrentMonthRevenue = current
	stats.PreviousMonthRevenue = previous
	stats.MonthlyGrowth = GrowthPercent(previous, current)

	stats.RevenueByService = make([]ServiceRevenue, 0, len(serviceOrder))
	for _, key := range serviceOrder {
		stats.RevenueByService = append(stats.RevenueByService, *byService[key])
	}

	return stats
}

// GrowthPercent returns the month-over-month growth percentage rounded to two
// decimal places. A previous month of zero reads as 100% growth when anything
// was earned this month, and 0% when nothing was.
func GrowthPercent(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// ComputePaymentStats derives claim aggregates from the given claims
func ComputePaymentStats(claims []payment.Claim) PaymentStats {
	stats := PaymentStats{ApprovedAmount: decimal.Zero}
	for i := range claims {
		c := &claims[i]
		stats.Total++
		switch c.Status {
		case payment.ClaimStatusPending:
			stats.Pending++
		case payment.ClaimStatusApproved:
			stats.Approved++
			stats.ApprovedAmount = stats.ApprovedAmount.Add(c.Amount)
		case payment.ClaimStatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
