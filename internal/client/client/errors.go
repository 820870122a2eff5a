package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// ForbiddenError is returned when the server refused the call for lack of
// a role. RolesRequired lists the roles that would have been accepted.
type ForbiddenError struct {
	Message       string
	RolesRequired []string
}

func (e *ForbiddenError) Error() string {
	if len(e.RolesRequired) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (requires one of: %s)", e.Message, strings.Join(e.RolesRequired, ", "))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
