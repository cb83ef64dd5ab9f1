package dto

import (
	"time"

	"jobsync/internal/domain/job"
)

type SalaryRangeRequest struct {
	MinSalary int    `json:"min_salary" validate:"min=0"`
	MaxSalary int    `json:"max_salary" validate:"min=0"`
	Currency  string `json:"currency,omitempty"`
	Period    string `json:"period,omitempty"`
}

type AIKeywordRequest struct {
	Keyword        string  `json:"keyword" validate:"required"`
	RelevanceScore float64 `json:"relevance_score" validate:"min=0,max=1"`
	Category       string  `json:"category,omitempty"`
}

type JobRequest struct {
	Title           string             `json:"job_title" validate:"required,min=1"`
	Description     string             `json:"job_description,omitempty"`
	EmployerName    string             `json:"employer_name" validate:"required,min=1"`
	EmployerWebsite string             `json:"employer_website,omitempty" validate:"omitempty,url"`
	City            string             `json:"job_city,omitempty"`
	State           string             `json:"job_state,omitempty"`
	Country         string             `json:"job_country,omitempty"`
	EmploymentType  string             `json:"job_employment_type,omitempty" validate:"omitempty,oneof=FULLTIME PARTTIME CONTRACTOR INTERN TEMPORARY"`
	IsRemote        bool               `json:"job_is_remote"`
	Salary          SalaryRangeRequest `json:"salary_range"`
	ApplyLink       string             `json:"job_apply_link,omitempty" validate:"omitempty,url"`
	PostedAt        *time.Time         `json:"posted_at,omitempty"`
	ExpiresAt       *time.Time         `json:"expires_at,omitempty"`
	ExternalJobID   string             `json:"external_job_id,omitempty"`
	RequiredSkills  []string           `json:"required_skills,omitempty"`
	AIKeywords      []AIKeywordRequest `json:"ai_extracted_keywords,omitempty" validate:"dive"`
	IsFeatured      bool               `json:"is_featured"`
	Source          string             `json:"source,omitempty"`
}

func (r *JobRequest) Validate() error {
	return validate.Struct(r)
}

func (r *JobRequest) ToEntity() job.Job {
	j := job.Job{
		Title:           r.Title,
		Description:     r.Description,
		EmployerName:    r.EmployerName,
		EmployerWebsite: r.EmployerWebsite,
		City:            r.City,
		State:           r.State,
		Country:         r.Country,
		EmploymentType:  r.EmploymentType,
		IsRemote:        r.IsRemote,
		Salary: job.SalaryRange{
			MinSalary: r.Salary.MinSalary,
			MaxSalary: r.Salary.MaxSalary,
			Currency:  r.Salary.Currency,
			Period:    r.Salary.Period,
		},
		ApplyLink:      r.ApplyLink,
		ExpiresAt:      r.ExpiresAt,
		ExternalJobID:  r.ExternalJobID,
		RequiredSkills: r.RequiredSkills,
	}
	if r.PostedAt != nil {
		j.PostedAt = *r.PostedAt
	}
	for _, k := range r.AIKeywords {
		j.AIKeywords = append(j.AIKeywords, job.AIKeyword{
			Keyword:        k.Keyword,
			RelevanceScore: k.RelevanceScore,
			Category:       k.Category,
		})
	}
	j.Platform.IsFeatured = r.IsFeatured
	j.Platform.Source = r.Source
	return j
}

type BulkImportRequest struct {
	Jobs []JobRequest `json:"jobs" validate:"required,min=1,max=500,dive"`
}

func (r *BulkImportRequest) Validate() error {
	return validate.Struct(r)
}
