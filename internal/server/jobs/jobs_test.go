package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/radicacion/internal/logging"
	"github.com/dmitrijs2005/radicacion/internal/server/services"
)

type fakeEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.task = task
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "t1", Type: task.Type()}, nil
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) any {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value()
		}
	}
	return nil
}

func TestScheduler_ScheduleExpiry(t *testing.T) {
	q := &fakeEnqueuer{}
	s := NewScheduler(q)

	require.NoError(t, s.ScheduleExpiry(context.Background(), "RAD-1", 45*time.Minute))

	require.NotNil(t, q.task)
	assert.Equal(t, ExpireSubmissionTask, q.task.Type())
	assert.JSONEq(t, `{"radicado":"RAD-1"}`, string(q.task.Payload()))
	assert.Equal(t, 45*time.Minute, optionValue(q.opts, asynq.ProcessInOpt))
	assert.Equal(t, expireMaxRetry, optionValue(q.opts, asynq.MaxRetryOpt))
	assert.Equal(t, "expire:RAD-1", optionValue(q.opts, asynq.TaskIDOpt))
}

func TestScheduler_Errors(t *testing.T) {
	q := &fakeEnqueuer{err: asynq.ErrTaskIDConflict}
	s := NewScheduler(q)
	require.NoError(t, s.ScheduleExpiry(context.Background(), "RAD-1", time.Minute), "already scheduled")

	q.err = errors.New("redis: connection refused")
	err := s.ScheduleExpiry(context.Background(), "RAD-1", time.Minute)
	require.ErrorContains(t, err, "enqueue expire task")
}

type fakeExpirer struct {
	got []string
	out *services.FinalizeOutput
	err error
}

func (f *fakeExpirer) ExpireIfPending(_ context.Context, radicado string) (*services.FinalizeOutput, error) {
	f.got = append(f.got, radicado)
	return f.out, f.err
}

func TestProcessor_HandleExpire(t *testing.T) {
	ctx := context.Background()
	exp := &fakeExpirer{out: &services.FinalizeOutput{Radicado: "RAD-1", Status: services.UploadNone, Deleted: true}}
	mux := NewProcessor(exp, logging.Nop()).Handler()

	task, err := NewExpireTask("RAD-1")
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, task))
	assert.Equal(t, []string{"RAD-1"}, exp.got)

	exp.out = nil
	require.NoError(t, mux.ProcessTask(ctx, task), "finalized in the meantime")

	exp.err = errors.New("db down")
	require.EqualError(t, mux.ProcessTask(ctx, task), "db down")
}

func TestProcessor_BadPayloadSkipsRetry(t *testing.T) {
	exp := &fakeExpirer{}
	mux := NewProcessor(exp, logging.Nop()).Handler()

	err := mux.ProcessTask(context.Background(), asynq.NewTask(ExpireSubmissionTask, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = mux.ProcessTask(context.Background(), asynq.NewTask(ExpireSubmissionTask, []byte(`{}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, exp.got)
}

type countingSweep struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweep) Sweep(context.Context) (int, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSweeper_RunsUntilCancelled(t *testing.T) {
	target := &countingSweep{}
	s := NewSweeper(target, 5*time.Millisecond, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return target.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_KeepsGoingAfterErrors(t *testing.T) {
	target := &countingSweep{err: errors.New("boom")}
	s := NewSweeper(target, 2*time.Millisecond, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	require.Eventually(t, func() bool { return target.calls.Load() >= 3 }, time.Second, time.Millisecond)
}
