package uploader

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
)

// headerSize is the only slice of content the validator reads.
const headerSize = 4

const mib = 1 << 20

// Validate reports why f cannot be uploaded, or nil. It only checks that the
// header is readable; content sniffing never rejects a file, since valid
// documents can carry metadata before their format marker.
func Validate(f models.File, maxSize int64) error {
	size := f.Size()
	if size <= 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, f.Name())
	}
	if size > maxSize {
		return fmt.Errorf("%w: %s is %.2f MB, limit is %.2f MB",
			ErrFileTooLarge, f.Name(), float64(size)/mib, float64(maxSize)/mib)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnreadableFile, f.Name(), err)
	}
	defer rc.Close()

	buf := make([]byte, headerSize)
	// Files shorter than the header are fine as long as something was read.
	if _, err := io.ReadFull(rc, buf); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: %w", ErrUnreadableFile, f.Name(), err)
	}
	return nil
}

// Rejection records a file excluded from the manifest.
type Rejection struct {
	Category common.Category
	Name     string
	Err      error
}

// BatchRejectedError is returned when no file of the batch survived
// validation. It matches ErrNoValidFiles and every individual reason.
type BatchRejectedError struct {
	Rejections []Rejection
}

func (e *BatchRejectedError) Error() string {
	if len(e.Rejections) == 0 {
		return ErrNoValidFiles.Error() + ": no files selected"
	}
	reasons := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		reasons = append(reasons, r.Err.Error())
	}
	return ErrNoValidFiles.Error() + ": " + strings.Join(reasons, "; ")
}

func (e *BatchRejectedError) Is(target error) bool {
	return target == ErrNoValidFiles
}

func (e *BatchRejectedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		errs = append(errs, r.Err)
	}
	return errs
}

// ValidateBatch validates every file before anything touches the network.
// Accepted files keep their per-category order. If nothing is accepted the
// whole batch fails with a *BatchRejectedError.
func ValidateBatch(files map[common.Category][]models.File, maxSize int64) (map[common.Category][]models.File, []Rejection, error) {
	accepted := make(map[common.Category][]models.File)
	var rejected []Rejection

	for _, c := range sortedCategories(files) {
		for _, f := range files[c] {
			var err error
			if !c.Valid() {
				err = fmt.Errorf("%w: %q (%s)", ErrUnknownCategory, c, f.Name())
			} else {
				err = Validate(f, maxSize)
			}
			if err != nil {
				rejected = append(rejected, Rejection{Category: c, Name: f.Name(), Err: err})
				continue
			}
			accepted[c] = append(accepted[c], f)
		}
	}

	if len(accepted) == 0 {
		return nil, rejected, &BatchRejectedError{Rejections: rejected}
	}
	return accepted, rejected, nil
}

// Manifest lists accepted files in category order, the order tokens come back in.
func Manifest(files map[common.Category][]models.File) []models.ManifestEntry {
	var out []models.ManifestEntry
	for _, c := range sortedCategories(files) {
		if len(files[c]) == 0 {
			continue
		}
		entry := models.ManifestEntry{Category: c}
		for _, f := range files[c] {
			entry.Files = append(entry.Files, models.ManifestFile{Name: f.Name(), Size: f.Size()})
		}
		out = append(out, entry)
	}
	return out
}

func sortedCategories(files map[common.Category][]models.File) []common.Category {
	cs := make([]common.Category, 0, len(files))
	for c := range files {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
	return cs
}
