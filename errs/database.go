package errs

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// FromStore translates a persistence-layer failure into the API taxonomy.
// Record-not-found becomes NotFound, unique violations become Conflict,
// anything else is Internal with the cause attached for logging.
func FromStore(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("failed to %s %s", operation, entity)

	if errors.Is(cause, gorm.ErrRecordNotFound) {
		e := NotFound(entity + " not found")
		e.Details = details
		return e
	}

	if cause != nil {
		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key"):
			e := Conflict(entity + " already exists")
			e.Details = details
			e.Cause = cause
			return e
		case strings.Contains(errStr, "foreign key constraint"):
			e := Validation("invalid reference in " + entity)
			e.Details = "the referenced resource does not exist or cannot be linked"
			e.Cause = cause
			return e
		}
	}

	e := Internal(details, cause)
	e.Details = details
	return e
}
