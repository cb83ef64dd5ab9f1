package dto

import (
	"time"

	"jobsync/internal/domain/application"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	ResumeURL   string    `json:"resume_url,omitempty" validate:"omitempty,url"`
	CoverLetter string    `json:"cover_letter,omitempty" validate:"max=5000"`
}

func (r *ApplyRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewing shortlisted interviewed offer_extended accepted rejected"`
	Notes  string `json:"notes,omitempty" validate:"max=2000"`
}

func (r *UpdateApplicationStatusRequest) Validate() error {
	return validate.Struct(r)
}

type ApplicationResponse struct {
	ID          uuid.UUID                   `json:"id"`
	JobID       uuid.UUID                   `json:"job_id"`
	ApplicantID uuid.UUID                   `json:"applicant_id"`
	Status      string                      `json:"status"`
	ResumeURL   string                      `json:"resume_url,omitempty"`
	CoverLetter string                      `json:"cover_letter,omitempty"`
	Timeline    []application.TimelineEntry `json:"timeline"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Status:      a.Status,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter,
		Timeline:    a.Timeline,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func NewApplicationResponses(apps []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
