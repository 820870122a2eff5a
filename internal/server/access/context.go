package access

import (
	"context"

	"github.com/dmitrijs2005/bookinggate/internal/server/models"
)

type userKey struct{}

// WithUser attaches the live user returned by Authorize.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok && u != nil
}
