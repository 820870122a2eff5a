// Package services contains server-side business logic: the credential
// flows in AuthService and the account administration in UserService.
package services

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/metrics"
	"github.com/dmitrijs2005/bookinggate/internal/server/notifications"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/users"
)

// Hasher is the password hashing collaborator. *password.Hasher satisfies it.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Compare(digest, plaintext string) bool
}

// Deps is shared by the services. DB may be nil when Repos is the
// in-memory manager; Metrics may be nil.
type Deps struct {
	DB              *sql.DB
	Repos           repomanager.RepositoryManager
	Codec           *auth.Codec
	Hasher          Hasher
	Dispatcher      notifications.Dispatcher
	Metrics         *metrics.Metrics
	Logger          logging.Logger
	FrontendBaseURL string
}

func (d Deps) users() users.Repository {
	return d.Repos.Users(d.DB)
}

// internal logs err and returns the opaque common.ErrorInternal.
func internal(ctx context.Context, logger logging.Logger, op string, err error) error {
	logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

// link builds <base>/<page>?token=<token>.
func link(base, page, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u = u.JoinPath(page)
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}
