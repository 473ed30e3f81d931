package noise

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid configuration")
	// ErrDomain is matched by every *DomainError.
	ErrDomain = errors.New("value outside domain")
)

// ConfigError reports an unrecognized enumerated option.
type ConfigError struct {
	Field    string
	Value    string
	Accepted []string
}

func (e *ConfigError) Error() string {
	quoted := make([]string, len(e.Accepted))
	for i, a := range e.Accepted {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return fmt.Sprintf("invalid %s %q: must be one of %s", e.Field, e.Value, strings.Join(quoted, ", "))
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// DomainError reports a size or parameter that would make evaluation
// produce NaN or Inf.
type DomainError struct {
	Field  string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }

// CheckOption returns a *ConfigError unless value is one of accepted.
func CheckOption(field, value string, accepted []string) error {
	for _, a := range accepted {
		if value == a {
			return nil
		}
	}
	return &ConfigError{Field: field, Value: value, Accepted: accepted}
}

// CheckSize rejects degenerate field dimensions.
func CheckSize(width, height int) error {
	if width <= 0 {
		return &DomainError{Field: "width", Reason: fmt.Sprintf("must be positive, got %d", width)}
	}
	if height <= 0 {
		return &DomainError{Field: "height", Reason: fmt.Sprintf("must be positive, got %d", height)}
	}
	return nil
}
