package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleJobSeeker = "job_seeker"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

type User struct {
	ID            uuid.UUID
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Role          string
	SeekerProfile SeekerProfile
	Activity      Activity
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SeekerProfile carries the job-seeker preferences the recommendation
// endpoint falls back to when no explicit keywords are supplied.
type SeekerProfile struct {
	ResumeSkills       []string
	DesiredPositions   []string
	PreferredLocations []string
	MinSalary          int
}

type Activity struct {
	TotalJobsPosted   int
	TotalApplications int
	LastLogin         *time.Time
}

func IsValidRole(role string) bool {
	switch role {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}
