package core

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrForbidden             = errors.New("forbidden")
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)

// ErrorCode maps a domain error to a stable machine-readable code for the API
// envelope. Unclassified errors are reported as internal without leaking the
// underlying message.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrRepositoryUnavailable):
		return "repository_unavailable"
	default:
		return "internal"
	}
}
