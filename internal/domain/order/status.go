package order

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending        Status = "Pending"
	StatusPaymentPending Status = "PaymentPending"
	StatusInProgress     Status = "InProgress"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"
	StatusRefunded       Status = "Refunded"
	StatusFailed         Status = "Failed"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaymentPending, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRefunded, StatusFailed:
		return true
	}
	return false
}

// String returns the wire representation of Status
func (s Status) String() string {
	return string(s)
}

// DisplayName returns the human-readable form shown in UIs
func (s Status) DisplayName() string {
	switch s {
	case StatusPaymentPending:
		return "Payment Pending"
	case StatusInProgress:
		return "In Progress"
	default:
		return string(s)
	}
}

// IsTerminal returns true if no further transition is permitted
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRefunded, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}

	// Failed and Refunded are reachable from any non-terminal state
	// (operational failure / money-back, admin-initiated).
	if target == StatusFailed || target == StatusRefunded {
		return true
	}

	switch s {
	case StatusPending:
		return target == StatusPaymentPending || target == StatusInProgress || target == StatusCancelled
	case StatusPaymentPending:
		return target == StatusInProgress || target == StatusCancelled
	case StatusInProgress:
		return target == StatusCompleted
	}
	return false
}

// AllStatuses returns every defined order status
func AllStatuses() []Status {
	return []Status{
		StatusPending, StatusPaymentPending, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRefunded, StatusFailed,
	}
}
