package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/server/access"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protected lists the methods that go through the gate and what they need.
// Anything not listed is public.
var protected = map[string]access.Requirement{
	api.MethodLogout:         access.NoRequirement(),
	api.MethodGetCurrentUser: access.NoRequirement(),
	api.MethodChangePassword: access.NoRequirement(),
	api.MethodCreateUser:     access.RoleIn(models.RoleSuperAdmin),
	api.MethodToggleActive:   access.RoleIn(models.RoleSuperAdmin),
	api.MethodListUsers:      access.NoRequirement(),
	api.MethodUpdateUser:     access.RoleIn(models.RoleDefaultUser),
	api.MethodUpdateHost:     access.RoleIn(models.RoleVendor),
}

func accessToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AccessTokenHeaderName)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// accessTokenInterceptor verifies the identity token of protected calls,
// runs the gate and stores the live user in the context. A missing or
// unusable token reaches the gate as nil claims.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	requirement, ok := protected[info.FullMethod]
	if !ok {
		return handler(ctx, req)
	}

	var claims *auth.Claims
	if token := accessToken(ctx); token != "" {
		c, err := s.tokens.Verify(token, auth.KindIdentity)
		if err != nil {
			s.logger.Debug(ctx, "identity token rejected", "method", info.FullMethod, "error", err)
		} else {
			claims = c
		}
	}

	user, err := s.gate.Authorize(ctx, claims, requirement)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(access.WithUser(ctx, user), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	return resp, err
}
