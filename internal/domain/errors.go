package domain

import "fmt"

type ErrorCode string

const (
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeInvalidSelection ErrorCode = "INVALID_SELECTION"
	ErrorCodeInvalidMode      ErrorCode = "INVALID_MODE"
)

// DomainError is surfaced at the HTTP boundary as an inline error payload
// with the mapped status; it never terminates the process.
type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
