package main

import (
	"errors"
	"fmt"
	"strings"
)

// Typed errors the taxpayer registry propagates; handlers map them to statuses.
var (
	ErrDuplicateCedula  = errors.New("a taxpayer with this cedula already exists")
	ErrTaxpayerNotFound = errors.New("taxpayer not found")
)

// ValidationError reports a malformed input field before any registry logic runs.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// isUniqueConstraintError detects a Postgres unique violation surfaced through
// gorm. The constraint on cedula is the authoritative uniqueness check; the
// optimistic pre-checks only exist to give friendlier errors on the common path.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
