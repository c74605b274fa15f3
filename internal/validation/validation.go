// Package validation holds the pure pre-condition checks run by the
// services before any mutating storage call. Each check returns a typed
// apperr on violation and nil otherwise; none of them touch storage.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"todolist/internal/apperr"
)

// NonEmpty fails when the trimmed value is empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validationf("%s cannot be empty", field)
	}
	return nil
}

// MaxLength fails when the value exceeds limit characters. Lengths are
// counted in runes, not bytes.
func MaxLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return apperr.Validationf("%s cannot exceed %d characters", field, limit)
	}
	return nil
}

// DeadlineNotPast fails when deadline is set and strictly earlier than now.
// The check runs once at call time; a task may become overdue later.
func DeadlineNotPast(deadline *time.Time, now time.Time) error {
	if deadline != nil && deadline.Before(now) {
		return apperr.Validationf("deadline cannot be in the past")
	}
	return nil
}

// CountCeiling fails when creating one more entity would exceed the
// configured ceiling.
func CountCeiling(what string, current, limit int) error {
	if current >= limit {
		return apperr.BusinessRulef("cannot create more than %d %s", limit, what)
	}
	return nil
}
