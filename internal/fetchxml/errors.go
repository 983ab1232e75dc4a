package fetchxml

import (
	"errors"
	"fmt"
)

// ParseError reports malformed markup: XML that does not decode, or
// decoded elements missing required attributes.
type ParseError struct {
	// Message describes what was malformed.
	Message string

	// Err holds the underlying decoder error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetchxml: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("fetchxml: %s", e.Message)
}

// Unwrap exposes the underlying decoder error to errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedOperatorError reports an operator name outside the
// implemented vocabulary. It carries the name only; callers own
// presentation.
type UnsupportedOperatorError struct {
	// Name is the operator string as written in markup.
	Name string
}

// Error implements the error interface.
func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("fetchxml: unsupported operator %q", e.Name)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsUnsupportedOperator reports whether err is (or wraps) an
// UnsupportedOperatorError.
func IsUnsupportedOperator(err error) bool {
	var ue *UnsupportedOperatorError
	return errors.As(err, &ue)
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}
