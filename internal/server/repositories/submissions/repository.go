package submissions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/server/models"
)

// Repository persists submissions together with their expected files.
// Lookups return common.ErrorNotFound for unknown keys.
type Repository interface {
	Create(ctx context.Context, s *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	GetByRadicado(ctx context.Context, radicado string) (*models.Submission, error)
	SetFilePresent(ctx context.Context, fileID string, present bool) error
	UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) error
	Delete(ctx context.Context, id string) error
	// ListPendingBefore returns the radicados still pending that were created
	// before the given time.
	ListPendingBefore(ctx context.Context, before time.Time) ([]string, error)
}
