package engine

import (
	"errors"
	"fmt"
)

// EvalError represents a failure detected during query evaluation.
//
// Evaluation errors include:
//   - Type mismatch: operator applied to an incompatible attribute type
//   - Unknown entity: logical name with no metadata
//   - Unknown attribute: condition or projection names an undeclared attribute
//   - Unsupported operator: vocabulary gap that must fail loudly
//
// EvalError carries structured fields for diagnostics; presentation is
// the caller's concern.
type EvalError struct {
	// Code identifies the error category.
	Code EvalErrorCode

	// Entity is the logical name involved, when known.
	Entity string

	// Attribute is the attribute involved, when known.
	Attribute string

	// Operator is the operator involved, when known.
	Operator string

	// Message is a human-readable description.
	Message string
}

// EvalErrorCode categorizes evaluation errors.
type EvalErrorCode string

const (
	// ErrCodeTypeMismatch indicates an operator applied to an attribute
	// whose declared type is outside the operator's type class.
	ErrCodeTypeMismatch EvalErrorCode = "TYPE_MISMATCH"

	// ErrCodeUnknownEntity indicates a logical name with no metadata.
	ErrCodeUnknownEntity EvalErrorCode = "UNKNOWN_ENTITY"

	// ErrCodeUnknownAttribute indicates a metadata miss on an attribute.
	ErrCodeUnknownAttribute EvalErrorCode = "UNKNOWN_ATTRIBUTE"

	// ErrCodeUnsupportedOperator indicates an operator the engine does
	// not evaluate. Distinct from a parse failure so coverage gaps are
	// visible instead of silently mismatching.
	ErrCodeUnsupportedOperator EvalErrorCode = "UNSUPPORTED_OPERATOR"
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	switch {
	case e.Entity != "" && e.Attribute != "":
		return fmt.Sprintf("%s: %s (entity=%s, attribute=%s)", e.Code, e.Message, e.Entity, e.Attribute)
	case e.Entity != "":
		return fmt.Sprintf("%s: %s (entity=%s)", e.Code, e.Message, e.Entity)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsTypeMismatch reports whether err is a type-mismatch EvalError.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatch(err error) bool {
	return hasCode(err, ErrCodeTypeMismatch)
}

// IsUnknownEntity reports whether err is an unknown-entity EvalError.
func IsUnknownEntity(err error) bool {
	return hasCode(err, ErrCodeUnknownEntity)
}

// IsUnknownAttribute reports whether err is an unknown-attribute EvalError.
func IsUnknownAttribute(err error) bool {
	return hasCode(err, ErrCodeUnknownAttribute)
}

// IsUnsupportedOperator reports whether err is an unsupported-operator
// EvalError.
func IsUnsupportedOperator(err error) bool {
	return hasCode(err, ErrCodeUnsupportedOperator)
}

func hasCode(err error, code EvalErrorCode) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

// NewTypeMismatchError creates an EvalError for an operator applied to an
// incompatible attribute type.
func NewTypeMismatchError(entity, attribute, operator string, declared string) *EvalError {
	return &EvalError{
		Code:      ErrCodeTypeMismatch,
		Entity:    entity,
		Attribute: attribute,
		Operator:  operator,
		Message:   fmt.Sprintf("operator %s cannot apply to %s attribute", operator, declared),
	}
}

// NewUnknownEntityError creates an EvalError for a logical name with no
// metadata.
func NewUnknownEntityError(entity string) *EvalError {
	return &EvalError{
		Code:    ErrCodeUnknownEntity,
		Entity:  entity,
		Message: "no metadata for entity",
	}
}

// NewUnknownAttributeError creates an EvalError for an undeclared
// attribute.
func NewUnknownAttributeError(entity, attribute string) *EvalError {
	return &EvalError{
		Code:      ErrCodeUnknownAttribute,
		Entity:    entity,
		Attribute: attribute,
		Message:   "no metadata for attribute",
	}
}

// NewUnsupportedOperatorError creates an EvalError for an operator the
// engine does not evaluate.
func NewUnsupportedOperatorError(operator string) *EvalError {
	return &EvalError{
		Code:     ErrCodeUnsupportedOperator,
		Operator: operator,
		Message:  fmt.Sprintf("operator %s is not implemented", operator),
	}
}
