package job

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EmploymentFullTime   = "FULLTIME"
	EmploymentPartTime   = "PARTTIME"
	EmploymentContractor = "CONTRACTOR"
	EmploymentIntern     = "INTERN"
	EmploymentTemporary  = "TEMPORARY"
)

const (
	KeywordCategorySkill         = "skill"
	KeywordCategoryTool          = "tool"
	KeywordCategoryTechnology    = "technology"
	KeywordCategoryQualification = "qualification"
	KeywordCategoryIndustry      = "industry"
	KeywordCategoryOther         = "other"
)

// AIKeyword is a keyword/weight pair attached to a job by an upstream
// enrichment process. RelevanceScore is in [0, 1].
type AIKeyword struct {
	Keyword        string  `json:"keyword"`
	RelevanceScore float64 `json:"relevance_score"`
	Category       string  `json:"category,omitempty"`
}

type SalaryRange struct {
	MinSalary int    `json:"min_salary,omitempty"`
	MaxSalary int    `json:"max_salary,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Period    string `json:"period,omitempty"`
}

type Engagement struct {
	ViewCount        int `json:"view_count"`
	ApplicationCount int `json:"application_count"`
	SaveCount        int `json:"save_count"`
	ShareCount       int `json:"share_count"`
}

// Recommendation holds the most recent relevance score computed for this job.
// It is advisory, not an accumulating history: concurrent scoring calls may
// race on it and last-write-wins is acceptable.
type Recommendation struct {
	Score          int                `json:"score"`
	LastCalculated time.Time          `json:"last_calculated"`
	Factors        map[string]float64 `json:"factors,omitempty"`
}

type Platform struct {
	IsFeatured   bool   `json:"is_featured"`
	IsActive     bool   `json:"is_active"`
	IsVerified   bool   `json:"is_verified"`
	QualityScore int    `json:"quality_score"`
	Source       string `json:"source,omitempty"`
}

type Job struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"job_title"`
	Description     string         `json:"job_description"`
	EmployerName    string         `json:"employer_name"`
	EmployerWebsite string         `json:"employer_website,omitempty"`
	City            string         `json:"job_city"`
	State           string         `json:"job_state"`
	Country         string         `json:"job_country"`
	EmploymentType  string         `json:"job_employment_type"`
	IsRemote        bool           `json:"job_is_remote"`
	Salary          SalaryRange    `json:"salary_range"`
	ApplyLink       string         `json:"job_apply_link"`
	PostedAt        time.Time      `json:"posted_at"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
	ExternalJobID   string         `json:"external_job_id,omitempty"`
	RequiredSkills  []string       `json:"required_skills"`
	AIKeywords      []AIKeyword    `json:"ai_extracted_keywords"`
	Recommendation  Recommendation `json:"recommendation_data"`
	Engagement      Engagement     `json:"engagement_metrics"`
	Platform        Platform       `json:"platform_data"`
	PostedBy        *uuid.UUID     `json:"posted_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// DaysSincePosted returns ceil((now - posted_at) / 1 day). A job posted
// moments ago counts as 1 day old; an unset posted_at counts as 0.
func (j Job) DaysSincePosted(now time.Time) int {
	if j.PostedAt.IsZero() {
		return 0
	}
	diff := now.Sub(j.PostedAt)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func (j Job) IsExpired(now time.Time) bool {
	if j.ExpiresAt == nil || j.ExpiresAt.IsZero() {
		return false
	}
	return now.After(*j.ExpiresAt)
}

// EngagementRate is applications per hundred views, rounded.
func (j Job) EngagementRate() int {
	if j.Engagement.ViewCount <= 0 {
		return 0
	}
	return int(math.Round(float64(j.Engagement.ApplicationCount) / float64(j.Engagement.ViewCount) * 100))
}

func (j Job) LocationString() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{j.City, j.State, j.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

var employmentTypes = map[string]bool{
	EmploymentFullTime:   true,
	EmploymentPartTime:   true,
	EmploymentContractor: true,
	EmploymentIntern:     true,
	EmploymentTemporary:  true,
}

func IsValidEmploymentType(t string) bool {
	return employmentTypes[strings.ToUpper(strings.TrimSpace(t))]
}

// QualityScore derives a completeness score for the posting, recomputed on
// every create and update.
func (j Job) QualityScore() int {
	score := 50
	if len(j.Description) > 100 {
		score += 10
	}
	if len(j.RequiredSkills) > 0 {
		score += 10
	}
	if j.Salary.MinSalary > 0 {
		score += 10
	}
	if strings.TrimSpace(j.EmployerWebsite) != "" {
		score += 5
	}
	if len(j.AIKeywords) > 0 {
		score += 5
	}
	if j.ExpiresAt != nil && !j.ExpiresAt.IsZero() {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}
