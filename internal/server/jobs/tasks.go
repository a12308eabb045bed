// Package jobs runs the deferred side of the protocol: submissions that were
// initiated but never finalized get reconciled once their upload URLs have
// expired. With Redis configured this goes through an asynq queue; without,
// a Sweeper polls the repository.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// ExpireSubmissionTask is enqueued once per initiated submission.
	ExpireSubmissionTask = "radicacion:expire"

	expireMaxRetry = 5
)

// ExpirePayload names the submission to reconcile.
type ExpirePayload struct {
	Radicado string `json:"radicado"`
}

func NewExpireTask(radicado string) (*asynq.Task, error) {
	data, err := json.Marshal(ExpirePayload{Radicado: radicado})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(ExpireSubmissionTask, data), nil
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler enqueues expiry tasks. The task ID is derived from the radicado,
// so scheduling the same submission twice keeps the first task.
type Scheduler struct {
	client enqueuer
}

func NewScheduler(client enqueuer) *Scheduler {
	return &Scheduler{client: client}
}

func (s *Scheduler) ScheduleExpiry(ctx context.Context, radicado string, delay time.Duration) error {
	task, err := NewExpireTask(radicado)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(delay),
		asynq.MaxRetry(expireMaxRetry),
		asynq.TaskID("expire:"+radicado),
	)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("enqueue expire task: %w", err)
	}
	return nil
}
