package uploader

import (
	"context"
	"time"
)

// Recover retries the files UploadAll left in error, in up to
// Config.RecoveryPasses passes. Pass n waits n*PassDelay first, a longer
// cooldown than the per-attempt backoff because these files already
// survived a full retry policy. Files are retried one at a time, in token
// order. It returns the indices still failing after the last pass.
func (u *Uploader) Recover(ctx context.Context, run *Run) []int {
	failed := run.FailedIndices()

	for pass := 1; pass <= u.cfg.RecoveryPasses && len(failed) > 0; pass++ {
		wait := time.Duration(pass) * u.cfg.PassDelay
		u.logger.Info(ctx, "recovery pass scheduled", "pass", pass, "files", len(failed), "wait", wait)
		if err := sleepCtx(ctx, wait); err != nil {
			u.logger.Warn(ctx, "recovery aborted", "pass", pass, "error", err)
			break
		}

		var still []int
		for _, i := range failed {
			tk := run.tokens[i]
			run.tracker.update(i, markUploading)
			if err := u.transferWithRetry(ctx, tk, run.files[i]); err != nil {
				u.logger.Warn(ctx, "recovery transfer failed", "pass", pass, "path", tk.Path, "error", err)
				run.tracker.update(i, markError(retriesExhaustedMessage))
				still = append(still, i)
				continue
			}
			run.tracker.update(i, markDone)
		}

		u.logger.Info(ctx, "recovery pass finished", "pass", pass, "recovered", len(failed)-len(still), "failed", len(still))
		failed = still
	}
	return failed
}
