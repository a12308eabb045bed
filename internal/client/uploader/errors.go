package uploader

import (
	"errors"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

var (
	// Validation reasons.
	ErrEmptyFile       = errors.New("empty file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnreadableFile  = errors.New("unreadable file")
	ErrUnknownCategory = common.ErrorUnknownCategory
	ErrNoValidFiles    = errors.New("no valid files to upload")

	// Submission-level failures.
	ErrInitiateFailed    = errors.New("initiate submission failed")
	ErrFinalizeFailed    = errors.New("finalize submission failed")
	ErrSubmissionDeleted = errors.New("submission deleted: no file reached storage")

	// ErrFileNotFoundForToken marks a token with no matching local file. It is
	// a bookkeeping fault and never retried.
	ErrFileNotFoundForToken = errors.New("file not found for token")
)

// retriesExhaustedMessage is recorded on files that failed every recovery pass.
const retriesExhaustedMessage = "Error tras múltiples reintentos"
