package submissions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/server/models"
)

// MemoryRepository keeps submissions in process. Values are copied on the
// way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*models.Submission
	byRadicado map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]*models.Submission),
		byRadicado: make(map[string]string),
	}
}

func clone(s *models.Submission) *models.Submission {
	c := *s
	c.Files = make([]*models.SubmissionFile, len(s.Files))
	for i, f := range s.Files {
		fc := *f
		c.Files[i] = &fc
	}
	return &c
}

func (r *MemoryRepository) Create(_ context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; ok {
		return common.ErrorAlreadyExists
	}
	if _, ok := r.byRadicado[s.Radicado]; ok {
		return common.ErrorAlreadyExists
	}
	c := clone(s)
	for _, f := range c.Files {
		f.SubmissionID = c.ID
	}
	r.byID[c.ID] = c
	r.byRadicado[c.Radicado] = c.ID
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(s), nil
}

func (r *MemoryRepository) GetByRadicado(ctx context.Context, radicado string) (*models.Submission, error) {
	r.mu.RLock()
	id, ok := r.byRadicado[radicado]
	r.mu.RUnlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) SetFilePresent(_ context.Context, fileID string, present bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		for _, f := range s.Files {
			if f.ID == fileID {
				f.Present = present
				return nil
			}
		}
	}
	return common.ErrorNotFound
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status models.SubmissionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.byRadicado, s.Radicado)
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) ListPendingBefore(_ context.Context, before time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var pending []*models.Submission
	for _, s := range r.byID {
		if s.Status == models.StatusPending && s.CreatedAt.Before(before) {
			pending = append(pending, s)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	out := make([]string, len(pending))
	for i, s := range pending {
		out[i] = s.Radicado
	}
	return out, nil
}
