package access

import (
	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
)

const (
	ReasonNoToken          = "token isn't attached or expired"
	ReasonLoginAgain       = "Login again"
	ReasonNotVerified      = "Your account is not verified"
	ReasonDisabled         = "Your account has been disabled"
	ReasonNotAuthorized    = "User is not authorized to perform this action"
	ReasonNotAuthenticated = "User is not authenticated"
)

// DeniedError is returned by Gate.Authorize. RolesRequired is set only for
// a failed role check. It matches common.ErrorUnauthorized with errors.Is.
type DeniedError struct {
	Reason        string
	RolesRequired []models.Role
}

func (e *DeniedError) Error() string {
	return e.Reason
}

func (e *DeniedError) Unwrap() error {
	return common.ErrorUnauthorized
}

func deny(reason string) *DeniedError {
	return &DeniedError{Reason: reason}
}
