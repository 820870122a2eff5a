// Package users declares the credential store contract and its PostgreSQL
// and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/bookinggate/internal/server/models"
)

// Repository is the only way the services read or change user records.
// Every Update is a single-row write; there are no multi-row transactions
// and concurrent updates of the same row are last-writer-wins.
//
// Lookups return common.ErrorNotFound when no row matches, including an id
// the store cannot parse. List orders by creation time. Create returns
// common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	FindBySetToken(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	Update(ctx context.Context, id string, fields models.Fields) error
}
