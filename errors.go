package propval

import (
	"errors"
	"fmt"
)

// MissingValueError reports a strict read of a source or provider that
// currently has no value. Callers that need a non-failing path should use
// the tolerant operations (TryGet, MaybeCollectInto) instead of recovering
// from this error.
type MissingValueError struct {
	DisplayName string
}

func (e *MissingValueError) Error() string {
	if e.DisplayName != "" {
		return fmt.Sprintf("no value available for %s", e.DisplayName)
	}
	return "no value available"
}

// SizeUnsupportedError reports a Size query against a deferred sequence
// whose provider exposes no known element count. The count is never
// approximated; callers must check for the Sized capability first.
type SizeUnsupportedError struct {
	Provider any
}

func (e *SizeUnsupportedError) Error() string {
	if e.Provider != nil {
		return fmt.Sprintf("provider %T does not expose a known element count", e.Provider)
	}
	return "provider does not expose a known element count"
}

// SelfReferenceError reports an attempt to register a source backed by the
// property's own value provider, which would recurse during evaluation.
type SelfReferenceError struct {
	DisplayName string
}

func (e *SelfReferenceError) Error() string {
	if e.DisplayName != "" {
		return fmt.Sprintf("adding this provider to %s would reference the property itself", e.DisplayName)
	}
	return "adding this provider would reference the property itself"
}

// IsMissingValue reports whether err is, or wraps, a MissingValueError.
func IsMissingValue(err error) bool {
	var mv *MissingValueError
	return errors.As(err, &mv)
}

// IsSizeUnsupported reports whether err is, or wraps, a SizeUnsupportedError.
func IsSizeUnsupported(err error) bool {
	var su *SizeUnsupportedError
	return errors.As(err, &su)
}
