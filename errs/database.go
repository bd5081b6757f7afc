package errs

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// FromDatabase translates a storage error into an ApiErr. Duplicate-key
// violations surface as conflicts so callers can retry slug assignment;
// the raw storage message never reaches the response body.
func FromDatabase(operation, entity string, cause error) *ApiErr {
	if cause == nil {
		return nil
	}

	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return NewNotFoundError(entity)
	case errors.Is(cause, gorm.ErrDuplicatedKey):
		return NewConflictError(fmt.Sprintf("%s already exists", entity))
	case errors.Is(cause, gorm.ErrForeignKeyViolated):
		return NewInvalidInputError(fmt.Sprintf("%s references a missing record", entity))
	}

	e := NewInternalError(fmt.Sprintf("failed to %s %s", operation, entity))
	e.Details = cause.Error()
	return e
}
