// Package services holds the server business logic: opening radicaciones,
// minting upload URLs and reconciling what storage received.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/logging"
	"github.com/dmitrijs2005/radicacion/internal/server/config"
	"github.com/dmitrijs2005/radicacion/internal/server/models"
	"github.com/dmitrijs2005/radicacion/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/radicacion/internal/server/repositories/submissions"
	"github.com/dmitrijs2005/radicacion/internal/server/storage"
)

// radicadoAttempts bounds how often a colliding radicado is regenerated.
const radicadoAttempts = 3

type SubmissionService struct {
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	scheduler   Scheduler
	logger      logging.Logger
	urlTTL      time.Duration
	expiryDelay time.Duration
	maxFileSize int64
	now         func() time.Time
}

// NewSubmissionService wires the service. scheduler may be nil, in which case
// expiry relies on Sweep.
func NewSubmissionService(m repomanager.RepositoryManager, store storage.ObjectStore, scheduler Scheduler, cfg *config.Config, logger logging.Logger) *SubmissionService {
	return &SubmissionService{
		repomanager: m,
		store:       store,
		scheduler:   scheduler,
		logger:      logger.With("module", "services"),
		urlTTL:      cfg.SignedURLTTL,
		expiryDelay: cfg.ExpiryDelay(),
		maxFileSize: cfg.MaxFileSize,
		now:         time.Now,
	}
}

func (s *SubmissionService) validate(userID string, meta Metadata, manifest []ManifestEntry) error {
	if userID == "" {
		return common.ErrorUnauthorized
	}
	switch {
	case strings.TrimSpace(meta.IdentificationType) == "":
		return fmt.Errorf("%w: identification type is required", common.ErrorIncorrectMetadata)
	case strings.TrimSpace(meta.IdentificationNumber) == "":
		return fmt.Errorf("%w: identification number is required", common.ErrorIncorrectMetadata)
	case strings.TrimSpace(meta.Service) == "":
		return fmt.Errorf("%w: service is required", common.ErrorIncorrectMetadata)
	}

	total := 0
	for _, e := range manifest {
		if !e.Category.Valid() {
			return fmt.Errorf("%w: %q", common.ErrorUnknownCategory, e.Category)
		}
		for _, f := range e.Files {
			if f.Name == "" {
				return fmt.Errorf("%w: file without name in %s", common.ErrorIncorrectMetadata, e.Category)
			}
			if f.Size <= 0 {
				return fmt.Errorf("%w: %s is empty", common.ErrorIncorrectMetadata, f.Name)
			}
			if f.Size > s.maxFileSize {
				return fmt.Errorf("%w: %s", common.ErrorFileTooLarge, f.Name)
			}
			total++
		}
	}
	if total == 0 {
		return common.ErrorEmptyManifest
	}
	return nil
}

func (s *SubmissionService) newRadicado() (string, error) {
	suffix, err := common.MakeRandHexString(radicadoRandLen)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", radicadoPrefix, s.now().Format("20060102"), strings.ToUpper(suffix)), nil
}

// Initiate opens a pending submission for userID and returns one signed
// upload URL per manifest file, in manifest order.
func (s *SubmissionService) Initiate(ctx context.Context, userID string, meta Metadata, manifest []ManifestEntry) (*InitiateOutput, error) {
	if err := s.validate(userID, meta, manifest); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sub := &models.Submission{
		ID:                   uuid.NewString(),
		UserID:               userID,
		IdentificationType:   meta.IdentificationType,
		IdentificationNumber: meta.IdentificationNumber,
		PatientName:          meta.PatientName,
		Service:              meta.Service,
		ServiceCategory:      meta.ServiceCategory,
		Observations:         meta.Observations,
		Status:               models.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	out := &InitiateOutput{SubmissionID: sub.ID}
	ordinals := make(map[common.Category]int, len(manifest))
	for _, e := range manifest {
		for _, f := range e.Files {
			ordinals[e.Category]++
			file := &models.SubmissionFile{
				ID:           uuid.NewString(),
				SubmissionID: sub.ID,
				Category:     e.Category,
				OriginalName: f.Name,
				Size:         f.Size,
				Ordinal:      ordinals[e.Category],
			}
			file.Path = ObjectPath(sub.ID, e.Category, file.Ordinal, f.Name)

			url, err := s.store.PresignPut(ctx, file.Path, s.urlTTL)
			if err != nil {
				s.logger.Error(ctx, "presign failed", "path", file.Path, "error", err)
				return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
			}

			sub.Files = append(sub.Files, file)
			out.Tokens = append(out.Tokens, IssuedToken{
				SignedURL:    url,
				Token:        file.ID,
				Path:         file.Path,
				Category:     e.Category,
				OriginalName: f.Name,
			})
		}
	}

	if err := s.create(ctx, sub); err != nil {
		return nil, err
	}
	out.Radicado = sub.Radicado

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleExpiry(ctx, sub.Radicado, s.expiryDelay); err != nil {
			s.logger.Warn(ctx, "expiry not scheduled", "radicado", sub.Radicado, "error", err)
		}
	}

	s.logger.Info(ctx, "submission initiated", "radicado", sub.Radicado, "files", len(sub.Files))
	return out, nil
}

func (s *SubmissionService) create(ctx context.Context, sub *models.Submission) error {
	for attempt := 0; attempt < radicadoAttempts; attempt++ {
		radicado, err := s.newRadicado()
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		sub.Radicado = radicado

		err = s.repomanager.WithTx(ctx, func(ctx context.Context, repo submissions.Repository) error {
			return repo.Create(ctx, sub)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Error(ctx, "create submission failed", "error", err)
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
	}
	return fmt.Errorf("%w: radicado collision", common.ErrorInternal)
}

// Finalize reconciles the submission identified by radicado against storage.
// Submissions of other users are reported as not found.
func (s *SubmissionService) Finalize(ctx context.Context, userID, radicado string) (*FinalizeOutput, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}
	sub, err := s.repomanager.Submissions().GetByRadicado(ctx, radicado)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if sub.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return s.reconcile(ctx, sub)
}

// ExpireIfPending reconciles a submission nobody finalized. It returns nil
// output when the submission is gone or already finalized.
func (s *SubmissionService) ExpireIfPending(ctx context.Context, radicado string) (*FinalizeOutput, error) {
	sub, err := s.repomanager.Submissions().GetByRadicado(ctx, radicado)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if sub.Status != models.StatusPending {
		return nil, nil
	}
	s.logger.Info(ctx, "expiring pending submission", "radicado", radicado)
	return s.reconcile(ctx, sub)
}

// Sweep expires every submission still pending after the expiry delay. It
// stands in for the job queue when none is configured.
func (s *SubmissionService) Sweep(ctx context.Context) (int, error) {
	radicados, err := s.repomanager.Submissions().ListPendingBefore(ctx, s.now().Add(-s.expiryDelay))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range radicados {
		if _, err := s.ExpireIfPending(ctx, r); err != nil {
			s.logger.Warn(ctx, "sweep failed", "radicado", r, "error", err)
			continue
		}
		n++
	}
	return n, nil
}

func (s *SubmissionService) reconcile(ctx context.Context, sub *models.Submission) (*FinalizeOutput, error) {
	for _, f := range sub.Files {
		ok, err := s.store.Exists(ctx, f.Path)
		if err != nil {
			s.logger.Error(ctx, "storage check failed", "path", f.Path, "error", err)
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		f.Present = ok
	}

	expected := sub.Expected()
	present := sub.PresentCount()
	out := &FinalizeOutput{
		Radicado: sub.Radicado,
		Present:  present,
		Missing:  expected - present,
		Expected: expected,
	}

	if present == 0 {
		if err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo submissions.Repository) error {
			return repo.Delete(ctx, sub.ID)
		}); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		// A PUT may land between the check and the delete.
		for _, f := range sub.Files {
			if err := s.store.Delete(ctx, f.Path); err != nil {
				s.logger.Warn(ctx, "stray object not removed", "path", f.Path, "error", err)
			}
		}
		out.Status = UploadNone
		out.Deleted = true
		out.Message = "No se recibió ningún archivo; la radicación fue eliminada"
		s.logger.Warn(ctx, "submission deleted", "radicado", sub.Radicado, "expected", expected)
		return out, nil
	}

	status := models.StatusSynced
	out.Status = UploadComplete
	out.Message = fmt.Sprintf("Radicación completa: %d archivos recibidos", present)
	if present < expected {
		status = models.StatusPartial
		out.Status = UploadPartial
		out.Message = fmt.Sprintf("Radicación parcial: %d de %d archivos recibidos", present, expected)
	}

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo submissions.Repository) error {
		for _, f := range sub.Files {
			if err := repo.SetFilePresent(ctx, f.ID, f.Present); err != nil {
				return err
			}
		}
		return repo.UpdateStatus(ctx, sub.ID, status)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "submission finalized", "radicado", sub.Radicado, "status", status, "present", present, "expected", expected)
	return out, nil
}
