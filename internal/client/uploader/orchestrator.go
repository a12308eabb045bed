package uploader

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/logging"
)

// Backend is the submission server: it opens a submission with one token per
// file and later verifies what reached storage.
type Backend interface {
	Initiate(ctx context.Context, req models.InitiateRequest) (*models.InitiateResult, error)
	Finalize(ctx context.Context, radicado string) (*models.FinalizeResult, error)
}

// Result merges the server verdict with the locally observed statuses.
// Uploaded, Missing and Expected come from the server and are authoritative;
// LocalDone and LocalFailed only describe what this client saw.
type Result struct {
	Success      bool
	Radicado     string
	SubmissionID string
	UploadStatus models.UploadStatus
	Uploaded     int
	Missing      int
	Expected     int
	Deleted      bool
	Message      string
	// ServerMessage is the backend's own wording, if it sent one.
	ServerMessage string

	Files       []FileStatus
	Rejected    []Rejection
	LocalDone   int
	LocalFailed int
}

// Orchestrator runs complete submissions.
type Orchestrator struct {
	backend  Backend
	uploader *Uploader
	cfg      Config
	logger   logging.Logger
}

func NewOrchestrator(backend Backend, transfer Transfer, cfg Config, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Nop()
	}
	cfg = cfg.withDefaults()
	return &Orchestrator{
		backend:  backend,
		uploader: NewUploader(cfg, transfer, logger),
		cfg:      cfg,
		logger:   logger.With("module", "orchestrator"),
	}
}

// Submit validates, initiates, uploads, recovers and finalizes one radicación.
//
// Errors: a *BatchRejectedError when every file failed validation,
// ErrInitiateFailed when no submission could be opened. When finalize itself
// fails the result carries the local statuses and the error wraps
// ErrFinalizeFailed. When the server deleted the submission because nothing
// arrived, both a Result (Success=false) and ErrSubmissionDeleted are returned.
func (o *Orchestrator) Submit(ctx context.Context, meta models.SubmissionMetadata, files map[common.Category][]models.File, onProgress ProgressFunc) (*Result, error) {
	accepted, rejected, err := ValidateBatch(files, o.cfg.MaxFileSize)
	if err != nil {
		o.logger.Warn(ctx, "batch rejected", "error", err)
		return nil, err
	}
	for _, r := range rejected {
		o.logger.Warn(ctx, "file excluded", "category", r.Category, "name", r.Name, "reason", r.Err)
	}

	init, err := o.backend.Initiate(ctx, models.InitiateRequest{Metadata: meta, Manifest: Manifest(accepted)})
	if err != nil {
		o.logger.Error(ctx, "initiate failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInitiateFailed, err)
	}

	log := o.logger.With("radicado", init.Radicado)
	log.Info(ctx, "submission initiated", "submission_id", init.SubmissionID, "tokens", len(init.Tokens))

	run := o.uploader.UploadAll(ctx, init.Tokens, accepted, onProgress)
	if left := o.uploader.Recover(ctx, run); len(left) > 0 {
		log.Warn(ctx, "files failed after recovery", "count", len(left))
	}

	res := &Result{
		Radicado:     init.Radicado,
		SubmissionID: init.SubmissionID,
		Files:        run.Statuses(),
		Rejected:     rejected,
	}
	res.LocalDone, res.LocalFailed = Count(res.Files)

	fin, err := o.backend.Finalize(ctx, init.Radicado)
	if err != nil {
		log.Error(ctx, "finalize failed", "error", err)
		res.Message = fmt.Sprintf("No fue posible confirmar la radicación %s. Consulte su estado antes de volver a radicar.", init.Radicado)
		return res, fmt.Errorf("%w: %w", ErrFinalizeFailed, err)
	}

	res.UploadStatus = fin.UploadStatus
	res.Uploaded = fin.Uploaded
	res.Missing = fin.Missing
	res.Expected = fin.Expected
	res.Deleted = fin.Deleted
	res.ServerMessage = fin.Message

	switch {
	case fin.Deleted:
		res.Success = false
		res.Message = fmt.Sprintf("No se cargó ningún archivo y la radicación %s fue eliminada. Por favor radique nuevamente.", init.Radicado)
		log.Error(ctx, "submission deleted by server", "expected", fin.Expected)
		return res, ErrSubmissionDeleted
	case fin.UploadStatus == models.UploadStatusComplete:
		res.Success = true
		res.Message = fmt.Sprintf("Radicación %s exitosa: %d archivo(s) cargado(s).", init.Radicado, fin.Uploaded)
	case fin.UploadStatus == models.UploadStatusPartial:
		res.Success = true
		res.Message = fmt.Sprintf("Radicación %s registrada parcialmente: %d de %d archivos cargados, %d faltantes.",
			init.Radicado, fin.Uploaded, fin.Expected, fin.Missing)
	default:
		res.Success = false
		res.Message = fmt.Sprintf("La radicación %s no registró archivos cargados.", init.Radicado)
	}

	if res.LocalDone != fin.Uploaded {
		log.Warn(ctx, "local and server counts differ", "local_done", res.LocalDone, "server_uploaded", fin.Uploaded)
	}
	log.Info(ctx, "submission finalized", "status", fin.UploadStatus, "uploaded", fin.Uploaded, "missing", fin.Missing)
	return res, nil
}
