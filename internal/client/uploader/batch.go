package uploader

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/logging"
)

// Uploader runs the batched first pass and the recovery passes.
type Uploader struct {
	cfg      Config
	transfer Transfer
	logger   logging.Logger
}

func NewUploader(cfg Config, transfer Transfer, logger logging.Logger) *Uploader {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Uploader{cfg: cfg.withDefaults(), transfer: transfer, logger: logger.With("module", "uploader")}
}

// Run is the state of one submission attempt: the tokens, the local file
// matched to each token (nil when none matched) and the status slots.
type Run struct {
	tokens  []models.UploadToken
	files   []models.File
	tracker *tracker
}

// Statuses returns a copy of the current per-file statuses, in token order.
func (r *Run) Statuses() []FileStatus {
	return r.tracker.snapshot()
}

// FailedIndices lists tokens in error that have a local file, i.e. the ones
// another attempt could fix.
func (r *Run) FailedIndices() []int {
	var out []int
	for i := range r.tokens {
		if r.files[i] != nil && r.tracker.get(i).Status == StatusError {
			out = append(out, i)
		}
	}
	return out
}

// matchFiles pairs every token with its local file by FileKey. Both sides
// count duplicates in encounter order, the same way the backend does when it
// issues tokens.
func matchFiles(tokens []models.UploadToken, files map[common.Category][]models.File) []models.File {
	lookup := make(map[string]models.File)
	local := common.NewKeyCounter()
	for c, fs := range files {
		for _, f := range fs {
			lookup[local.Next(c, f.Name())] = f
		}
	}

	matched := make([]models.File, len(tokens))
	remote := common.NewKeyCounter()
	for i, tk := range tokens {
		key := remote.Next(tk.Category, tk.OriginalName)
		if f, ok := lookup[key]; ok {
			matched[i] = f
			delete(lookup, key)
		}
	}
	return matched
}

// UploadAll transfers every token's file. Tokens are split into consecutive
// batches of Config.Concurrency; a batch starts only after the previous one
// settled, so no more than Concurrency transfers are ever in flight.
func (u *Uploader) UploadAll(ctx context.Context, tokens []models.UploadToken, files map[common.Category][]models.File, onProgress ProgressFunc) *Run {
	run := &Run{
		tokens:  tokens,
		files:   matchFiles(tokens, files),
		tracker: newTracker(tokens, onProgress),
	}
	run.tracker.emit()

	size := u.cfg.Concurrency
	for start, batch := 0, 1; start < len(tokens); start, batch = start+size, batch+1 {
		if start > 0 {
			// A cancelled pause just lets the remaining transfers fail fast.
			_ = sleepCtx(ctx, u.cfg.BatchPause)
		}
		end := min(start+size, len(tokens))

		var failed atomic.Int32
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				if !u.uploadOne(ctx, run, i) {
					failed.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()

		u.logger.Info(ctx, "batch settled", "batch", batch, "files", end-start, "failed", failed.Load())
	}
	return run
}

// uploadOne drives slot i through pending -> uploading -> done|error.
func (u *Uploader) uploadOne(ctx context.Context, run *Run, i int) bool {
	tk := run.tokens[i]
	f := run.files[i]
	if f == nil {
		u.logger.Error(ctx, "no local file for token", "category", tk.Category, "name", tk.OriginalName, "path", tk.Path)
		run.tracker.update(i, markError(ErrFileNotFoundForToken.Error()))
		return false
	}

	run.tracker.update(i, markUploading)
	if err := u.transferWithRetry(ctx, tk, f); err != nil {
		u.logger.Warn(ctx, "transfer failed", "path", tk.Path, "error", err)
		run.tracker.update(i, markError(err.Error()))
		return false
	}
	run.tracker.update(i, markDone)
	u.logger.Debug(ctx, "transfer done", "path", tk.Path)
	return true
}

func (u *Uploader) transferWithRetry(ctx context.Context, tk models.UploadToken, f models.File) error {
	attempt := 0
	_, err := ExecuteWithRetry(ctx, u.cfg.Retry, func(ctx context.Context) (struct{}, error) {
		attempt++
		err := u.transfer.Upload(ctx, tk, f)
		if err != nil {
			u.logger.Debug(ctx, "transfer attempt failed", "path", tk.Path, "attempt", attempt, "error", err)
		}
		return struct{}{}, err
	})
	return err
}
