package uploader

import (
	"sync"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
)

// Status is the lifecycle state of one file within a submission attempt.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusError     Status = "error"
)

// FileStatus is the observable state of one token's transfer. Progress is
// coarse: 0 until storage acknowledged the write, then 100.
type FileStatus struct {
	Path     string
	Category common.Category
	Name     string
	Status   Status
	Progress int
	Error    string
}

// ProgressFunc receives a copy of every FileStatus after each transition.
type ProgressFunc func([]FileStatus)

// tracker owns the status slots of one run. Each transfer goroutine writes
// only its own slot; the mutex makes the write and the snapshot atomic.
type tracker struct {
	mu         sync.Mutex
	slots      []FileStatus
	onProgress ProgressFunc
}

func newTracker(tokens []models.UploadToken, onProgress ProgressFunc) *tracker {
	slots := make([]FileStatus, len(tokens))
	for i, tk := range tokens {
		slots[i] = FileStatus{
			Path:     tk.Path,
			Category: tk.Category,
			Name:     tk.OriginalName,
			Status:   StatusPending,
		}
	}
	return &tracker{slots: slots, onProgress: onProgress}
}

// emit publishes the current state without changing it.
func (t *tracker) emit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.publishLocked()
}

func (t *tracker) update(i int, fn func(*FileStatus)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.slots[i])
	t.publishLocked()
}

func (t *tracker) publishLocked() {
	if t.onProgress == nil {
		return
	}
	t.onProgress(t.copyLocked())
}

func (t *tracker) snapshot() []FileStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyLocked()
}

func (t *tracker) copyLocked() []FileStatus {
	out := make([]FileStatus, len(t.slots))
	copy(out, t.slots)
	return out
}

func (t *tracker) get(i int) FileStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots[i]
}

func markUploading(s *FileStatus) {
	s.Status = StatusUploading
	s.Progress = 0
	s.Error = ""
}

func markDone(s *FileStatus) {
	s.Status = StatusDone
	s.Progress = 100
	s.Error = ""
}

func markError(msg string) func(*FileStatus) {
	return func(s *FileStatus) {
		s.Status = StatusError
		s.Progress = 0
		s.Error = msg
	}
}

// Count tallies statuses.
func Count(statuses []FileStatus) (done, failed int) {
	for _, s := range statuses {
		switch s.Status {
		case StatusDone:
			done++
		case StatusError:
			failed++
		}
	}
	return done, failed
}
