package ws

import (
	"encoding/json"
	"time"

	"jobsync/internal/domain/job"

	"github.com/google/uuid"
)

type JobPostedEvent struct {
	Type         string `json:"type"`
	JobID        string `json:"job_id"`
	Title        string `json:"title"`
	EmployerName string `json:"employer_name"`
	Location     string `json:"location"`
	Timestamp    string `json:"timestamp"`
}

type ApplicationStatusEvent struct {
	Type        string `json:"type"`
	ApplicantID string `json:"applicant_id"`
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// Notifier broadcasts job-board events over the hub. It satisfies the
// usecase layer's notifier contract without blocking request handlers.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) JobPosted(j job.Job) {
	if n == nil || n.hub == nil {
		return
	}

	evt := JobPostedEvent{
		Type:         "job_posted",
		JobID:        j.ID.String(),
		Title:        j.Title,
		EmployerName: j.EmployerName,
		Location:     j.LocationString(),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}

func (n *Notifier) ApplicationStatusChanged(applicantID, jobID uuid.UUID, status string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := ApplicationStatusEvent{
		Type:        "application_status",
		ApplicantID: applicantID.String(),
		JobID:       jobID.String(),
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
