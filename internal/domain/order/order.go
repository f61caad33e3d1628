package order

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/socialboost/backend/internal/domain/catalog"
	"github.com/socialboost/backend/internal/domain/shared"
	"github.com/socialboost/backend/internal/domain/shared/valueobject"
)

// Order is the aggregate root for a customer's purchase of an engagement
// service. After creation the only mutable field is Status; every other
// attribute is frozen at purchase time.
type Order struct {
	shared.BaseAggregateRoot
	CustomerName  string           `gorm:"not null"`
	CustomerEmail string           `gorm:"not null;index"`
	Phone         string           `gorm:"not null"`
	Platform      catalog.Platform `gorm:"not null"`
	Service       string           `gorm:"not null"`
	ProfileLink   string           `gorm:"not null"`
	PostLink      string
	SocialHandle  string
	Quantity      int64           `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"` // USD
	Status        Status          `gorm:"not null;index"`
}

// TableName sets the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in Pending status.
// All validation failures use code VALIDATION_ERROR and name the field.
func NewOrder(customerName, customerEmail, phone string, platform catalog.Platform, service, profileLink, postLink, socialHandle string, quantity int64, price decimal.Decimal) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "name: customer name cannot be empty")
	}
	customerEmail = strings.TrimSpace(customerEmail)
	if customerEmail == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "email: customer email cannot be empty")
	}
	if _, err := mail.ParseAddress(customerEmail); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "email: invalid email address")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "phone: phone number cannot be empty")
	}
	if !platform.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "platform: unknown platform")
	}
	if strings.TrimSpace(service) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "service: service cannot be empty")
	}
	if !catalog.IsOffered(platform, service) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("service: %q is not offered for %s", service, platform))
	}
	if strings.TrimSpace(profileLink) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "profileLink: profile link cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "quantity: quantity must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "price: price cannot be negative")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		Phone:             phone,
		Platform:          platform,
		Service:           service,
		ProfileLink:       profileLink,
		PostLink:          postLink,
		SocialHandle:      socialHandle,
		Quantity:          quantity,
		Price:             price,
		Status:            StatusPending,
	}, nil
}

// TransitionTo applies a status transition on behalf of an actor.
// This is the only mutation an order supports. The state machine is checked
// before authorization so illegal transitions report INVALID_TRANSITION even
// for admins; either failure leaves the order untouched.
func (o *Order) TransitionTo(target Status, actor shared.Actor) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("status: unknown status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("cannot transition order from %s to %s", o.Status, target))
	}
	if err := o.authorizeTransition(target, actor); err != nil {
		return err
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// authorizeTransition enforces who may drive which edge:
//   - admins: any legal edge
//   - the system actor: the reconciliation edges (PaymentPending, InProgress)
//   - customers: cancellation of their own order, only before work starts
func (o *Order) authorizeTransition(target Status, actor shared.Actor) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsSystem():
		if target == StatusPaymentPending || target == StatusInProgress {
			return nil
		}
		return shared.NewDomainError("FORBIDDEN", "system actor may only drive payment reconciliation transitions")
	case actor.Role == shared.RoleUser:
		if target != StatusCancelled {
			return shared.NewDomainError("FORBIDDEN", "customers may only cancel their orders")
		}
		if !actor.Owns(o.CustomerEmail) {
			return shared.NewDomainError("FORBIDDEN", "order belongs to a different customer")
		}
		return nil
	default:
		return shared.ErrUnauthorized
	}
}

// CanAcceptPaymentClaim reports whether a payment claim may be filed against
// this order. Claims are only accepted while the order is still waiting on
// payment: once work has started the order is already paid for, and terminal
// orders take no further payments.
func (o *Order) CanAcceptPaymentClaim() bool {
	return o.Status == StatusPending || o.Status == StatusPaymentPending
}

// IsTerminal returns true if the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// GetPriceMoney returns the price as a Money value object
func (o *Order) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Price)
}

// IsOwnedBy reports whether the given email owns this order
func (o *Order) IsOwnedBy(email string) bool {
	return email != "" && o.CustomerEmail == email
}
