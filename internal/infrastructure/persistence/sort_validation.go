package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Returns the defaultField if the input is empty or not whitelisted.
// Caller-supplied sort fields end up interpolated into ORDER BY, so nothing
// outside the whitelist may pass through.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// OrderSortFields contains allowed sort columns for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"customer_name":  true,
	"customer_email": true,
	"platform":       true,
	"service":        true,
	"quantity":       true,
	"price":          true,
	"status":         true,
}

// ClaimSortFields contains allowed sort columns for payment claims
var ClaimSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_id":       true,
	"customer_name":  true,
	"customer_email": true,
	"amount":         true,
	"method":         true,
	"transaction_id": true,
	"status":         true,
	"reviewed_at":    true,
}
