package uploader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
)

func TestRecover_NothingToDo(t *testing.T) {
	files := map[common.Category][]models.File{common.CategoryFactura: pdfs(2, "f")}
	tr := newFakeTransfer()
	cfg := testConfig()
	cfg.PassDelay = time.Hour
	u := NewUploader(cfg, tr, nil)

	run := u.UploadAll(context.Background(), tokensFor(t, files), files, nil)
	start := time.Now()
	assert.Empty(t, u.Recover(context.Background(), run))
	assert.Less(t, time.Since(start), time.Second, "no pass should be scheduled")
}

func TestRecover_FirstPassRecovers(t *testing.T) {
	files := map[common.Category][]models.File{common.CategoryFactura: pdfs(3, "f")}
	tokens := tokensFor(t, files)
	tr := newFakeTransfer()
	// fails the whole first-pass policy, succeeds on the next call
	tr.failures[tokens[2].Path] = 6
	rec := &progressRecorder{}
	u := NewUploader(testConfig(), tr, nil)

	run := u.UploadAll(context.Background(), tokens, files, rec.record)
	require.Equal(t, []int{2}, run.FailedIndices())

	left := u.Recover(context.Background(), run)

	assert.Empty(t, left)
	assert.Equal(t, StatusDone, run.Statuses()[2].Status)
	assert.Equal(t, 7, tr.callsFor(tokens[2].Path))
	assert.Equal(t, []Status{StatusPending, StatusUploading, StatusError, StatusUploading, StatusDone}, rec.history(2))
}

func TestRecover_SecondPassRecovers(t *testing.T) {
	files := map[common.Category][]models.File{common.CategoryFactura: pdfs(1, "f")}
	tokens := tokensFor(t, files)
	tr := newFakeTransfer()
	tr.failures[tokens[0].Path] = 12
	u := NewUploader(testConfig(), tr, nil)

	run := u.UploadAll(context.Background(), tokens, files, nil)
	left := u.Recover(context.Background(), run)

	assert.Empty(t, left)
	assert.Equal(t, 13, tr.callsFor(tokens[0].Path))
}

func TestRecover_PermanentFailureExhaustsAllPasses(t *testing.T) {
	files := map[common.Category][]models.File{common.CategoryFactura: pdfs(2, "f")}
	tokens := tokensFor(t, files)
	tr := newFakeTransfer()
	tr.failures[tokens[0].Path] = -1
	u := NewUploader(testConfig(), tr, nil)

	run := u.UploadAll(context.Background(), tokens, files, nil)
	left := u.Recover(context.Background(), run)

	assert.Equal(t, []int{0}, left)
	st := run.Statuses()
	assert.Equal(t, StatusError, st[0].Status)
	assert.Equal(t, "Error tras múltiples reintentos", st[0].Error)
	assert.Equal(t, StatusDone, st[1].Status)
	// first pass plus three recovery passes, six calls each
	assert.Equal(t, 24, tr.callsFor(tokens[0].Path))
	assert.Equal(t, 1, tr.callsFor(tokens[1].Path))
}

func TestRecover_PassesWaitIncreasingly(t *testing.T) {
	files := map[common.Category][]models.File{common.CategoryFactura: pdfs(1, "f")}
	tokens := tokensFor(t, files)
	tr := newFakeTransfer()
	tr.failures[tokens[0].Path] = -1
	cfg := testConfig()
	cfg.PassDelay = 10 * time.Millisecond
	u := NewUploader(cfg, tr, nil)

	run := u.UploadAll(context.Background(), tokens, files, nil)
	start := time.Now()
	u.Recover(context.Background(), run)

	// 10ms + 20ms + 30ms
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestRecover_ZeroPasses(t *testing.T) {
	files := map[common.Category][]models.File{common.CategoryFactura: pdfs(1, "f")}
	tokens := tokensFor(t, files)
	tr := newFakeTransfer()
	tr.failures[tokens[0].Path] = 6
	cfg := testConfig()
	cfg.RecoveryPasses = 0
	u := NewUploader(cfg, tr, nil)

	run := u.UploadAll(context.Background(), tokens, files, nil)
	assert.Equal(t, []int{0}, u.Recover(context.Background(), run))
	assert.Equal(t, 6, tr.callsFor(tokens[0].Path))
}

func TestRecover_CancelledBeforePass(t *testing.T) {
	files := map[common.Category][]models.File{common.CategoryFactura: pdfs(1, "f")}
	tokens := tokensFor(t, files)
	tr := newFakeTransfer()
	tr.failures[tokens[0].Path] = 6
	cfg := testConfig()
	cfg.PassDelay = time.Hour
	u := NewUploader(cfg, tr, nil)

	run := u.UploadAll(context.Background(), tokens, files, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, []int{0}, u.Recover(ctx, run))
	assert.Equal(t, 6, tr.callsFor(tokens[0].Path))
}
