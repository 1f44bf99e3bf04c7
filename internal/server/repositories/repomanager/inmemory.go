package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/eventboard/internal/dbx"
	"github.com/dmitrijs2005/eventboard/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves a single process-local user directory and
// ignores the database handle. Migrations are a no-op.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
