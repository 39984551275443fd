package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("item not found")
	ErrConflict            = errors.New("remote conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrUnreachable wraps failures that never produced a structured
	// response from the backend: timeouts, DNS errors, refused connections.
	// These are connectivity failures, not rejections, and are the only
	// class of error the queue retries.
	ErrUnreachable = errors.New("backend unreachable")
)

// IsTransient reports whether err is a connectivity failure that should be
// retried with backoff while the optimistic state is kept. Everything else
// is a remote rejection: the backend was reached and said no.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
