// Package errors defines the error kinds shared by the aggchain protocol packages.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ProtocolError is a classified protocol failure. Every failure is synchronous and
// fatal to the calling operation; retrying with the same inputs cannot succeed.
type ProtocolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Details == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

// Is matches on Code so copies made with WithDetails or WithMessage still
// satisfy errors.Is against the sentinel.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetails returns a copy of the error with additional details.
func (e *ProtocolError) WithDetails(details any) *ProtocolError {
	return &ProtocolError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ProtocolError) WithMessage(message string) *ProtocolError {
	return &ProtocolError{
		Code:    e.Code,
		Message: message,
		Details: e.Details,
	}
}

// Error kinds
var (
	// ErrInvalidTagLength is returned when a flavor or version tag is not exactly its fixed width.
	ErrInvalidTagLength = &ProtocolError{
		Code:    "invalid_tag_length",
		Message: "tag is not exactly its fixed byte width",
	}

	// ErrFieldOverflow is returned when a numeric field does not fit its encoding width.
	ErrFieldOverflow = &ProtocolError{
		Code:    "field_overflow",
		Message: "numeric field does not fit its fixed encoding width",
	}

	// ErrSelectorKeyLengthMismatch is returned when selector and key lists differ in length.
	ErrSelectorKeyLengthMismatch = &ProtocolError{
		Code:    "selector_key_length_mismatch",
		Message: "selectors and verification keys differ in length",
	}

	// ErrUnsupportedFlavor is returned for an unrecognized aggchain or consensus type.
	ErrUnsupportedFlavor = &ProtocolError{
		Code:    "unsupported_flavor",
		Message: "unsupported flavor",
	}

	// ErrAlreadyInitialized is returned when a payload targets a unit that already consumed it.
	ErrAlreadyInitialized = &ProtocolError{
		Code:    "already_initialized",
		Message: "unit is already initialized for this payload version",
	}

	// ErrInitVersionMismatch is returned when a re-initialization payload targets a fresh unit.
	ErrInitVersionMismatch = &ProtocolError{
		Code:    "init_version_mismatch",
		Message: "payload version does not match the unit initialization state",
	}

	// ErrSchemaMismatch is returned when bytes do not decode canonically under a payload schema.
	ErrSchemaMismatch = &ProtocolError{
		Code:    "schema_mismatch",
		Message: "payload does not match the requested schema",
	}

	// ErrVKeyNotFound is returned when no verification key is registered for a selector.
	ErrVKeyNotFound = &ProtocolError{
		Code:    "vkey_not_found",
		Message: "verification key not found",
	}

	// ErrVKeyAlreadyExists is returned when a selector is registered twice.
	ErrVKeyAlreadyExists = &ProtocolError{
		Code:    "vkey_already_exists",
		Message: "verification key already registered for selector",
	}

	// ErrInvalidLayout is returned when a storage layout table is inconsistent.
	ErrInvalidLayout = &ProtocolError{
		Code:    "invalid_layout",
		Message: "invalid storage layout",
	}
)

// NewTagLengthError reports a tag of the wrong width.
func NewTagLengthError(tag string, want, got int) *ProtocolError {
	return ErrInvalidTagLength.WithDetails(map[string]any{
		"tag":  tag,
		"want": want,
		"got":  got,
	})
}

// NewFieldOverflowError reports a numeric field that does not fit width bits.
func NewFieldOverflowError(field string, width int) *ProtocolError {
	return ErrFieldOverflow.WithDetails(map[string]any{
		"field": field,
		"bits":  width,
	})
}

// NewLengthMismatchError reports parallel selector/key lists of different length.
func NewLengthMismatchError(selectors, keys int) *ProtocolError {
	return ErrSelectorKeyLengthMismatch.WithDetails(map[string]int{
		"selectors": selectors,
		"keys":      keys,
	})
}

// NewUnsupportedFlavorError reports an unknown flavor value.
func NewUnsupportedFlavorError(kind string, value any) *ProtocolError {
	return ErrUnsupportedFlavor.WithMessage(fmt.Sprintf("unsupported %s", kind)).WithDetails(value)
}

// IsProtocolError checks if an error chain contains a ProtocolError.
func IsProtocolError(err error) bool {
	var pErr *ProtocolError
	return stderrors.As(err, &pErr)
}

// Code returns the error code of the first ProtocolError in the chain, or "internal_error".
func Code(err error) string {
	var pErr *ProtocolError
	if stderrors.As(err, &pErr) {
		return pErr.Code
	}
	return "internal_error"
}
