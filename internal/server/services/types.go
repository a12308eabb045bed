package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

// Metadata is the form data of a radicación.
type Metadata struct {
	IdentificationType   string
	IdentificationNumber string
	PatientName          string
	Service              string
	ServiceCategory      string
	Observations         string
}

type ManifestFile struct {
	Name string
	Size int64
}

type ManifestEntry struct {
	Category common.Category
	Files    []ManifestFile
}

// IssuedToken authorizes one object write. Tokens are returned in manifest
// order so clients can pair duplicates by occurrence.
type IssuedToken struct {
	SignedURL    string
	Token        string
	Path         string
	Category     common.Category
	OriginalName string
}

type InitiateOutput struct {
	Radicado     string
	SubmissionID string
	Tokens       []IssuedToken
}

type UploadStatus string

const (
	UploadComplete UploadStatus = "complete"
	UploadPartial  UploadStatus = "partial"
	UploadNone     UploadStatus = "none"
)

// FinalizeOutput reports what storage actually holds for a submission.
type FinalizeOutput struct {
	Radicado string
	Status   UploadStatus
	Present  int
	Missing  int
	Expected int
	Deleted  bool
	Message  string
}

// Success is false only when nothing arrived and the record was dropped.
func (o *FinalizeOutput) Success() bool {
	return !o.Deleted
}

// Scheduler arranges for ExpireIfPending to run for radicado after delay.
type Scheduler interface {
	ScheduleExpiry(ctx context.Context, radicado string, delay time.Duration) error
}
