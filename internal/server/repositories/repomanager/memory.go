package repomanager

import (
	"context"

	"github.com/dmitrijs2005/radicacion/internal/server/repositories/submissions"
)

// InMemoryRepositoryManager serves a single process-local repository. WithTx
// is not isolated: each repository call is atomic on its own.
type InMemoryRepositoryManager struct {
	submissions *submissions.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{submissions: submissions.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Submissions() submissions.Repository {
	return m.submissions
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repo submissions.Repository) error) error {
	return fn(ctx, m.submissions)
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
