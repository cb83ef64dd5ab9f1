package usecase

import (
	"jobsync/internal/domain/job"

	"github.com/google/uuid"
)

// Notifier fans events out to connected websocket clients. Implementations
// must not block the calling request.
type Notifier interface {
	JobPosted(j job.Job)
	ApplicationStatusChanged(applicantID, jobID uuid.UUID, status string)
}

type NoopNotifier struct{}

func (NoopNotifier) JobPosted(job.Job) {}

func (NoopNotifier) ApplicationStatusChanged(uuid.UUID, uuid.UUID, string) {}
