package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a domain failure. Every rejection a service can return maps
// to exactly one kind, and each kind to one HTTP status at the boundary.
type Kind string

const (
	KindInvalidToken     Kind = "INVALID_TOKEN"
	KindAccessDenied     Kind = "ACCESS_DENIED"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindExpired          Kind = "EXPIRED"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindInvalidState     Kind = "INVALID_STATE"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindUnavailable      Kind = "UNAVAILABLE"
	KindBadRequest       Kind = "BAD_REQUEST"
)

// Error is a kinded domain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a domain error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of err, or empty string for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// statusByKind: tenant mismatch and role insufficiency intentionally share
// 403 so a cross-tenant probe cannot distinguish "wrong org" from
// "insufficient role".
var statusByKind = map[Kind]int{
	KindInvalidToken:     fiber.StatusUnauthorized,
	KindUnauthorized:     fiber.StatusUnauthorized,
	KindAccessDenied:     fiber.StatusForbidden,
	KindForbidden:        fiber.StatusForbidden,
	KindNotFound:         fiber.StatusNotFound,
	KindConflict:         fiber.StatusConflict,
	KindExpired:          fiber.StatusGone,
	KindInvalidOperation: fiber.StatusBadRequest,
	KindInvalidState:     fiber.StatusBadRequest,
	KindBadRequest:       fiber.StatusBadRequest,
	KindUnavailable:      fiber.StatusServiceUnavailable,
}

// StatusOf maps a domain error to its HTTP status. Foreign errors (e.g. a
// persistence outage) surface as 503 so collaborator failures are never
// conflated with the domain taxonomy.
func StatusOf(err error) int {
	if code, ok := statusByKind[KindOf(err)]; ok {
		return code
	}
	return fiber.StatusServiceUnavailable
}
