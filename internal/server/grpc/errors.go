package grpc

import (
	"errors"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/server/access"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service and gate errors onto gRPC statuses. Anything
// unrecognised becomes Internal without its text.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var denied *access.DeniedError
	if errors.As(err, &denied) {
		if denied.RolesRequired == nil {
			return status.Error(codes.Unauthenticated, denied.Reason)
		}
		return deniedWithRoles(denied)
	}

	switch {
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrAccountDisabled),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrPasswordMismatch),
		errors.Is(err, common.ErrInvalidOtp):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrInvalidState):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

// deniedWithRoles is PermissionDenied with {"roles_required": [...]} as a
// structpb.Struct detail.
func deniedWithRoles(d *access.DeniedError) error {
	st := status.New(codes.PermissionDenied, d.Reason)

	roles := make([]string, len(d.RolesRequired))
	for i, r := range d.RolesRequired {
		roles[i] = string(r)
	}

	detail, err := api.RolesRequiredDetail(roles)
	if err != nil {
		return st.Err()
	}
	withDetail, err := st.WithDetails(detail)
	if err != nil {
		return st.Err()
	}
	return withDetail.Err()
}
