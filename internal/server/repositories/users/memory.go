package users

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in a map. It is used by tests and by the
// server when no database DSN is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User), now: time.Now}
}

func clone(u *models.User) *models.User {
	c := *u
	c.Dob = clonePtr(u.Dob)
	c.PasswordHash = clonePtr(u.PasswordHash)
	c.Otp = clonePtr(u.Otp)
	c.PasswordResetToken = clonePtr(u.PasswordResetToken)
	c.SetPasswordToken = clonePtr(u.SetPasswordToken)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Email != "" {
		for _, u := range r.users {
			if u.Email == user.Email {
				return nil, common.ErrorAlreadyExists
			}
		}
	}

	now := r.now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = clone(user)

	return user, nil
}

func (r *MemoryRepository) find(match func(u *models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, common.ErrorNotFound
	}
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.find(func(u *models.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == token
	})
}

func (r *MemoryRepository) FindBySetToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.find(func(u *models.User) bool {
		return u.SetPasswordToken != nil && *u.SetPasswordToken == token
	})
}

func (r *MemoryRepository) List(_ context.Context, filter models.UserFilter) ([]*models.User, error) {
	r.mu.RLock()
	all := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		if filter.Role == "" || u.Role == filter.Role {
			all = append(all, clone(u))
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b *models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	offset := max(filter.Offset, 0)
	if offset >= len(all) {
		return []*models.User{}, nil
	}
	all = all[offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, f models.Fields) error {
	if f.Empty() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	f.Apply(u)
	u.UpdatedAt = r.now().UTC()

	return nil
}
