package access

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/metrics"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/repomanager"
)

// Gate decides per request whether the caller behind a set of identity
// claims may proceed. It reads the live user record on every call.
type Gate struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	metrics *metrics.Metrics
	logger  logging.Logger
}

// NewGate builds a gate over the user store. db may be nil for the
// in-memory store.
func NewGate(db *sql.DB, repos repomanager.RepositoryManager, m *metrics.Metrics, logger logging.Logger) *Gate {
	return &Gate{db: db, repos: repos, metrics: m, logger: logger.With("module", "access_gate")}
}

// Authorize checks, in order: claims present, user still exists, user
// verified, user active, requirement met. It returns the live user with
// secrets stripped. Denials are *DeniedError; a store failure is
// common.ErrorInternal.
func (g *Gate) Authorize(ctx context.Context, claims *auth.Claims, req Requirement) (*models.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, g.denied(ctx, "no_token", deny(ReasonNoToken))
	}

	user, err := g.repos.Users(g.db).FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, g.denied(ctx, "unknown_user", deny(ReasonLoginAgain))
		}
		g.logger.Error(ctx, "load user failed", "user_id", claims.Subject, "error", err)
		return nil, common.ErrorInternal
	}

	if !user.Verified() {
		return nil, g.denied(ctx, "unverified", deny(ReasonNotVerified))
	}
	if !user.IsActive {
		return nil, g.denied(ctx, "disabled", deny(ReasonDisabled))
	}

	if req.Restricted() {
		if !req.allows(user.Role) {
			return nil, g.denied(ctx, "denied_role", &DeniedError{Reason: ReasonNotAuthorized, RolesRequired: req.Roles()})
		}
	} else if user.Email == "" {
		// bare authentication still wants a real account behind the token
		return nil, g.denied(ctx, "unauthenticated", deny(ReasonNotAuthenticated))
	}

	g.metrics.GateDecision("allowed")
	return user.Redacted(), nil
}

func (g *Gate) denied(ctx context.Context, result string, err *DeniedError) error {
	g.metrics.GateDecision(result)
	g.logger.Debug(ctx, "access denied", "result", result)
	return err
}
