// Package models defines the server-side records of a radicación.
package models

import (
	"time"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

type SubmissionStatus string

const (
	// StatusPending: tokens issued, finalize not called yet.
	StatusPending SubmissionStatus = "pending"
	// StatusSynced: every expected object was found on finalize.
	StatusSynced SubmissionStatus = "synced"
	// StatusPartial: some, not all, expected objects were found.
	StatusPartial SubmissionStatus = "partial"
)

// Submission is one radicación and the files it expects.
type Submission struct {
	ID       string
	Radicado string
	UserID   string

	IdentificationType   string
	IdentificationNumber string
	PatientName          string
	Service              string
	ServiceCategory      string
	Observations         string

	Status    SubmissionStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	Files []*SubmissionFile
}

// SubmissionFile is one expected object. Ordinal is the 1-based position of
// the file within its category.
type SubmissionFile struct {
	ID           string
	SubmissionID string
	Category     common.Category
	OriginalName string
	Path         string
	Size         int64
	Ordinal      int
	Present      bool
}

// Expected is the number of files the submission was opened with.
func (s *Submission) Expected() int {
	return len(s.Files)
}

// PresentCount counts the files confirmed in storage.
func (s *Submission) PresentCount() int {
	n := 0
	for _, f := range s.Files {
		if f.Present {
			n++
		}
	}
	return n
}
