package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports a read, update or delete against an identifier
// the partition does not hold.
type NotFoundError struct {
	LogicalName string
	ID          uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record %s not found", e.LogicalName, e.ID)
}

// DuplicateError reports a create with an identifier already taken.
type DuplicateError struct {
	LogicalName string
	ID          uuid.UUID
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s record %s already exists", e.LogicalName, e.ID)
}

// IsNotFound reports whether err is a record miss.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDuplicate reports whether err is an identifier collision.
func IsDuplicate(err error) bool {
	var d *DuplicateError
	return errors.As(err, &d)
}
