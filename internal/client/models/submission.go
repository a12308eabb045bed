package models

import "github.com/dmitrijs2005/radicacion/internal/common"

// SubmissionMetadata is the form data that accompanies a radicación.
type SubmissionMetadata struct {
	IdentificationType   string
	IdentificationNumber string
	PatientName          string
	Service              string
	ServiceCategory      string
	Observations         string
}

// ManifestFile describes one accepted file without its content.
type ManifestFile struct {
	Name string
	Size int64
}

// ManifestEntry groups the accepted files of one category.
type ManifestEntry struct {
	Category common.Category
	Files    []ManifestFile
}

// InitiateRequest is sent to the backend to open a submission.
type InitiateRequest struct {
	Metadata SubmissionMetadata
	Manifest []ManifestEntry
}

// UploadToken is a single-use credential for one object write.
type UploadToken struct {
	SignedURL    string
	Token        string
	Path         string
	Category     common.Category
	OriginalName string
}

// InitiateResult is the backend answer to an InitiateRequest.
type InitiateResult struct {
	Radicado     string
	SubmissionID string
	Tokens       []UploadToken
}

// UploadStatus is the server-verified outcome of a finalize call.
type UploadStatus string

const (
	UploadStatusComplete UploadStatus = "complete"
	UploadStatusPartial  UploadStatus = "partial"
	UploadStatusNone     UploadStatus = "none"
)

// FinalizeResult is the backend reconciliation report.
type FinalizeResult struct {
	Radicado     string
	UploadStatus UploadStatus
	Uploaded     int
	Missing      int
	Expected     int
	Deleted      bool
	Message      string
}
