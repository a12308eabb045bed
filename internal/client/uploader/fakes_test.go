package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
)

func testConfig() Config {
	return Config{
		MaxFileSize:    common.MaxFileSize,
		Concurrency:    3,
		BatchPause:     time.Millisecond,
		Retry:          Policy{MaxRetries: 5, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond, Jitter: 0.3},
		RecoveryPasses: 3,
		PassDelay:      time.Millisecond,
	}
}

// fakeTransfer stores uploads by path and fails according to plan.
type fakeTransfer struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   map[string]int
	// failures maps a path to the number of leading attempts that fail;
	// a negative value fails forever.
	failures map[string]int
	delay    time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeTransfer() *fakeTransfer {
	return &fakeTransfer{
		objects:  make(map[string][]byte),
		calls:    make(map[string]int),
		failures: make(map[string]int),
	}
}

func (f *fakeTransfer) Upload(ctx context.Context, tk models.UploadToken, file models.File) error {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.calls[tk.Path]++
	attempt := f.calls[tk.Path]
	plan, planned := f.failures[tk.Path]
	f.mu.Unlock()

	if planned && (plan < 0 || attempt <= plan) {
		return fmt.Errorf("503 slow down (attempt %d)", attempt)
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.objects[tk.Path] = data
	f.mu.Unlock()
	return nil
}

func (f *fakeTransfer) callsFor(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeTransfer) stored() map[string][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]byte, len(f.objects))
	for k, v := range f.objects {
		out[k] = v
	}
	return out
}

// fakeBackend issues tokens the way the server does and finalizes against
// what the fake transfer stored.
type fakeBackend struct {
	storage *fakeTransfer

	initiateErr error
	finalizeErr error
	extraTokens []models.UploadToken

	lastRequest models.InitiateRequest
	finalized   []string
}

func (b *fakeBackend) Initiate(_ context.Context, req models.InitiateRequest) (*models.InitiateResult, error) {
	b.lastRequest = req
	if b.initiateErr != nil {
		return nil, b.initiateErr
	}
	res := &models.InitiateResult{Radicado: "RAD-TEST-1", SubmissionID: "sub-1"}
	for _, e := range req.Manifest {
		for i, f := range e.Files {
			res.Tokens = append(res.Tokens, models.UploadToken{
				SignedURL:    "http://storage.invalid/" + f.Name,
				Token:        fmt.Sprintf("tok-%s-%d", e.Category, i+1),
				Path:         fmt.Sprintf("radicaciones/sub-1/%s/%03d-%s", e.Category, i+1, f.Name),
				Category:     e.Category,
				OriginalName: f.Name,
			})
		}
	}
	res.Tokens = append(res.Tokens, b.extraTokens...)
	return res, nil
}

func (b *fakeBackend) Finalize(_ context.Context, radicado string) (*models.FinalizeResult, error) {
	b.finalized = append(b.finalized, radicado)
	if b.finalizeErr != nil {
		return nil, b.finalizeErr
	}

	expected := 0
	for _, e := range b.lastRequest.Manifest {
		expected += len(e.Files)
	}
	uploaded := len(b.storage.stored())

	res := &models.FinalizeResult{
		Radicado: radicado,
		Uploaded: uploaded,
		Missing:  expected - uploaded,
		Expected: expected,
	}
	switch {
	case uploaded == 0:
		res.UploadStatus = models.UploadStatusNone
		res.Deleted = true
	case uploaded == expected:
		res.UploadStatus = models.UploadStatusComplete
	default:
		res.UploadStatus = models.UploadStatusPartial
	}
	return res, nil
}

// progressRecorder collects every snapshot handed to the callback.
type progressRecorder struct {
	mu        sync.Mutex
	snapshots [][]FileStatus
}

func (p *progressRecorder) record(s []FileStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, s)
}

func (p *progressRecorder) all() [][]FileStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshots
}

// history returns the distinct consecutive states one slot went through.
func (p *progressRecorder) history(i int) []Status {
	var out []Status
	for _, s := range p.all() {
		st := s[i].Status
		if len(out) == 0 || out[len(out)-1] != st {
			out = append(out, st)
		}
	}
	return out
}

// countingFile records how many content bytes were read.
type countingFile struct {
	name string
	size int64
	data []byte
	read atomic.Int64
}

func (f *countingFile) Name() string { return f.name }
func (f *countingFile) Size() int64  { return f.size }
func (f *countingFile) Open() (io.ReadCloser, error) {
	return &countingReader{f: f, off: 0}, nil
}

type countingReader struct {
	f   *countingFile
	off int
}

func (r *countingReader) Read(p []byte) (int, error) {
	if r.off >= len(r.f.data) {
		return 0, io.EOF
	}
	n := copy(p, r.f.data[r.off:])
	r.off += n
	r.f.read.Add(int64(n))
	return n, nil
}

func (r *countingReader) Close() error { return nil }

// brokenReadFile opens fine but fails on the first read.
type brokenReadFile struct{ name string }

func (f brokenReadFile) Name() string { return f.name }
func (f brokenReadFile) Size() int64  { return 100 }
func (f brokenReadFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(errReader{}), nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("i/o error") }
