package application

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending       = "pending"
	StatusReviewing     = "reviewing"
	StatusShortlisted   = "shortlisted"
	StatusInterviewed   = "interviewed"
	StatusOfferExtended = "offer_extended"
	StatusAccepted      = "accepted"
	StatusRejected      = "rejected"
	StatusWithdrawn     = "withdrawn"
)

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	Status      string
	ResumeURL   string
	CoverLetter string
	Timeline    []TimelineEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimelineEntry records a status transition; entries are append-only.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

var statuses = map[string]bool{
	StatusPending:       true,
	StatusReviewing:     true,
	StatusShortlisted:   true,
	StatusInterviewed:   true,
	StatusOfferExtended: true,
	StatusAccepted:      true,
	StatusRejected:      true,
	StatusWithdrawn:     true,
}

func IsValidStatus(s string) bool {
	return statuses[s]
}
