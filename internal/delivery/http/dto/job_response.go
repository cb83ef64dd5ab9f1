package dto

import (
	"time"

	"jobsync/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"job_title"`
	Description     string          `json:"job_description,omitempty"`
	EmployerName    string          `json:"employer_name"`
	EmployerWebsite string          `json:"employer_website,omitempty"`
	Location        string          `json:"location"`
	EmploymentType  string          `json:"job_employment_type,omitempty"`
	IsRemote        bool            `json:"job_is_remote"`
	Salary          job.SalaryRange `json:"salary_range"`
	ApplyLink       string          `json:"job_apply_link,omitempty"`
	PostedAt        time.Time       `json:"posted_at"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	RequiredSkills  []string        `json:"required_skills,omitempty"`
	AIKeywords      []job.AIKeyword `json:"ai_extracted_keywords,omitempty"`
	ViewCount       int             `json:"view_count"`
	ApplicationCnt  int             `json:"application_count"`
	IsFeatured      bool            `json:"is_featured"`
	IsVerified      bool            `json:"is_verified"`
	QualityScore    int             `json:"quality_score"`
	Source          string          `json:"source,omitempty"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		EmployerName:    j.EmployerName,
		EmployerWebsite: j.EmployerWebsite,
		Location:        j.LocationString(),
		EmploymentType:  j.EmploymentType,
		IsRemote:        j.IsRemote,
		Salary:          j.Salary,
		ApplyLink:       j.ApplyLink,
		PostedAt:        j.PostedAt,
		ExpiresAt:       j.ExpiresAt,
		RequiredSkills:  j.RequiredSkills,
		AIKeywords:      j.AIKeywords,
		ViewCount:       j.Engagement.ViewCount,
		ApplicationCnt:  j.Engagement.ApplicationCount,
		IsFeatured:      j.Platform.IsFeatured,
		IsVerified:      j.Platform.IsVerified,
		QualityScore:    j.Platform.QualityScore,
		Source:          j.Platform.Source,
	}
}

func NewJobResponses(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalJobs   int  `json:"total_jobs"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

func NewPaginationMeta(total, limit, offset int) PaginationMeta {
	if limit <= 0 {
		limit = 20
	}
	totalPages := (total + limit - 1) / limit
	currentPage := offset/limit + 1
	return PaginationMeta{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalJobs:   total,
		HasNext:     currentPage < totalPages,
		HasPrev:     currentPage > 1 && total > 0,
	}
}

type JobListResponse struct {
	Jobs       []JobResponse  `json:"jobs"`
	Pagination PaginationMeta `json:"pagination"`
}
