package prompt

import "errors"

var (
	// ErrUnauthenticated means no caller identity was resolved. Every
	// operation treats this as a fatal precondition, distinct from
	// data-layer errors.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound covers both "no such entity" and "entity owned by someone
	// else". Collapsing the two keeps other users' data unobservable.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports input that fails the shape constraints. It is
// surfaced immediately and never retried.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
