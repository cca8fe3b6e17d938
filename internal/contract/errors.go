package contract

import (
	"errors"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// ErrorCode is the machine-readable failure class reported at the boundary.
type ErrorCode string

const (
	ErrConfiguration         ErrorCode = "configuration_error"
	ErrContentGap            ErrorCode = "content_gap"
	ErrCapacityExhausted     ErrorCode = "capacity_exhausted"
	ErrPersistenceFailure    ErrorCode = "persistence_failure"
	ErrDependencyUnavailable ErrorCode = "dependency_unavailable"
	ErrNotFound              ErrorCode = "not_found"
	ErrInternal              ErrorCode = "internal_error"
)

// PlannerError is a typed failure carrying the code and offending field.
type PlannerError struct {
	Code    ErrorCode
	Field   string
	Message string
	Err     error
}

func (e *PlannerError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		return string(e.Code) + ": " + e.Field + ": " + msg
	}
	return string(e.Code) + ": " + msg
}

func (e *PlannerError) Unwrap() error {
	return e.Err
}

// NewError wraps err with a code. The message defaults to err's text.
func NewError(code ErrorCode, field string, err error) *PlannerError {
	pe := &PlannerError{Code: code, Field: field, Err: err}
	if err != nil {
		pe.Message = err.Error()
	}
	return pe
}

// CodeOf extracts the code of a PlannerError in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) ErrorCode {
	var pe *PlannerError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrInternal
}

// Issue is an error or warning reported to the caller.
type Issue struct {
	Code     ErrorCode       `json:"code,omitempty" yaml:"code,omitempty"`
	Field    string          `json:"field,omitempty" yaml:"field,omitempty"`
	Message  string          `json:"message" yaml:"message"`
	Severity domain.Severity `json:"severity" yaml:"severity"`
}

// IssueFromValidation converts a validation finding. Errors from structural
// checks are configuration errors.
func IssueFromValidation(v domain.ValidationIssue) Issue {
	is := Issue{Field: v.Field, Message: v.Message, Severity: v.Severity}
	if v.Severity == domain.SeverityError {
		is.Code = ErrConfiguration
	}
	return is
}

// IssueFromError converts a Go error into an error-severity issue.
func IssueFromError(err error) Issue {
	is := Issue{Code: CodeOf(err), Message: err.Error(), Severity: domain.SeverityError}
	var pe *PlannerError
	if errors.As(err, &pe) {
		is.Field = pe.Field
		is.Message = pe.Message
	}
	return is
}

// Warn builds a warning issue.
func Warn(code ErrorCode, field, msg string) Issue {
	return Issue{Code: code, Field: field, Message: msg, Severity: domain.SeverityWarning}
}
