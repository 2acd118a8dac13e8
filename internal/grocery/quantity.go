package grocery

import (
	"strconv"
	"strings"
)

// ResolveQuantity returns the template override when it is set and
// non-empty, otherwise the item's default quantity (which may be nil).
func ResolveQuantity(override, fallback *string) *string {
	if override != nil && *override != "" {
		return override
	}
	return fallback
}

// IntQuantity parses q as a whole number for items counted in units.
// It returns nil when the item is not integer-valued, q is empty, or q does
// not parse; a bad value never fails the caller.
func IntQuantity(q *string, isInt bool) *int64 {
	if !isInt || q == nil || *q == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*q), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
