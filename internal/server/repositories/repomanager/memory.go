package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookinggate/internal/dbx"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out one shared in-memory users store and
// ignores the DBTX it is given.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

// RunMigrations is a no-op: the in-memory store has no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
