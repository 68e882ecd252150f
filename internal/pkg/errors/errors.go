package errors

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalid       = errors.New("invalid")
	ErrConflict      = errors.New("conflict")
	ErrTooMany       = errors.New("too many requests")
	ErrInternal      = errors.New("internal")
	ErrTransport     = errors.New("transport")
	ErrNoSession     = errors.New("no active session")
	ErrBadSourceURL  = errors.New("unrecognized source url")
	ErrInputTooShort = errors.New("input too short")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
