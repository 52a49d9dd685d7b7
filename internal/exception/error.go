package exception

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// ConfigError represents a fatal configuration problem detected before
// any probe runs. Per-target probe failures are never ConfigErrors.
type ConfigError struct {
	Reason string
}

// Error implements the error interface for ConfigError
func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigError returns a new ConfigError with a formatted reason
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError returns true if err is or wraps a ConfigError
func IsConfigError(err error) bool {
	var confErr *ConfigError
	return errors.As(err, &confErr)
}
