package repomanager

import (
	"context"

	"github.com/dmitrijs2005/radicacion/internal/server/repositories/submissions"
)

// RepositoryManager vends repositories and the transaction boundary the
// services write through.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Submissions() submissions.Repository
	// WithTx runs fn against a repository whose writes commit or roll back
	// together.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo submissions.Repository) error) error
	Close() error
}
