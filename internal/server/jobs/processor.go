package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dmitrijs2005/radicacion/internal/logging"
	"github.com/dmitrijs2005/radicacion/internal/server/services"
)

// Expirer reconciles a submission if it is still pending.
type Expirer interface {
	ExpireIfPending(ctx context.Context, radicado string) (*services.FinalizeOutput, error)
}

// Processor is plugged into the asynq worker loop.
type Processor struct {
	expirer Expirer
	logger  logging.Logger
}

func NewProcessor(expirer Expirer, logger logging.Logger) *Processor {
	return &Processor{expirer: expirer, logger: logger.With("module", "jobs")}
}

// Handler registers the task handlers.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(ExpireSubmissionTask, p.handleExpire)
	return mux
}

func (p *Processor) handleExpire(ctx context.Context, task *asynq.Task) error {
	var payload ExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Radicado == "" {
		return fmt.Errorf("empty radicado: %w", asynq.SkipRetry)
	}

	out, err := p.expirer.ExpireIfPending(ctx, payload.Radicado)
	if err != nil {
		p.logger.Warn(ctx, "expire failed", "radicado", payload.Radicado, "error", err)
		return err
	}
	if out == nil {
		p.logger.Debug(ctx, "nothing to expire", "radicado", payload.Radicado)
		return nil
	}
	p.logger.Info(ctx, "submission expired", "radicado", payload.Radicado, "status", out.Status, "deleted", out.Deleted)
	return nil
}

// Worker consumes the queue until its context is cancelled.
type Worker struct {
	server    *asynq.Server
	processor *Processor
}

func NewWorker(redisAddr string, processor *Processor) *Worker {
	server := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency:     2,
		ShutdownTimeout: 10 * time.Second,
	})
	return &Worker{server: server, processor: processor}
}

// Run starts processing and blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.processor.Handler()); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
