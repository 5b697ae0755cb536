package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Taxonomy sentinels. Every *ApiErr wraps exactly one of these so callers
// can classify with errors.Is without looking at status codes.
var (
	ErrValidation    = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("operation not allowed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("resource conflict")
	ErrPartialUpdate = errors.New("partial update")
	ErrInternal      = errors.New("internal server error")
)

type ApiErr struct {
	StatusCode int
	kind       error  // taxonomy sentinel
	message    string // user-visible message
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

// implements error interface. this allows us to pass an instance of ApiErr
// as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.kind.Error()
}

// this function allows us to do the following:
// err := Forbidden("...")
// errors.Is(err, ErrForbidden) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.kind
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

func newApiErr(statusCode int, kind error, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		kind:       kind,
		message:    message,
	}
}

// Validation: missing or malformed input.
func Validation(message string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrValidation, message)
}

// ValidationField is Validation with the offending field recorded.
func ValidationField(field, message string) *ApiErr {
	e := Validation(message)
	e.Field = field
	return e
}

// Unauthorized: missing, invalid or expired credential.
func Unauthorized(message string) *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrUnauthorized, message)
}

// Forbidden: authenticated but not permitted.
func Forbidden(message string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrForbidden, message)
}

// NotFound: entity absent, or filtered out by the activity rule.
func NotFound(message string) *ApiErr {
	return newApiErr(http.StatusNotFound, ErrNotFound, message)
}

// Conflict: duplicate unique field or duplicate relation. Answers 400,
// matching the signup/follow convention.
func Conflict(message string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrConflict, message)
}

// ToggleConflict is a Conflict on a like/save toggle, which answers 403 per
// the existing API convention.
func ToggleConflict(message string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrConflict, message)
}

// PartialUpdate: a multi-system write applied one side but not the other and
// compensation failed. Always logged by the responder; never swallowed.
func PartialUpdate(message string, cause error) *ApiErr {
	e := newApiErr(http.StatusInternalServerError, ErrPartialUpdate, message)
	e.Cause = cause
	return e
}

// Internal: unexpected failure.
func Internal(message string, cause error) *ApiErr {
	e := newApiErr(http.StatusInternalServerError, ErrInternal, message)
	e.Cause = cause
	return e
}

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsUnauthorized(err error) bool  { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool     { return errors.Is(err, ErrForbidden) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool      { return errors.Is(err, ErrConflict) }
func IsPartialUpdate(err error) bool { return errors.Is(err, ErrPartialUpdate) }
func IsInternal(err error) bool      { return errors.Is(err, ErrInternal) }
