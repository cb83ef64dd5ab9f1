package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobsync/internal/database"
	"jobsync/internal/domain/job"
)

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	now := time.Now().UTC()

	items := []struct {
		ExternalID     string
		Title          string
		Description    string
		Employer       string
		City           string
		Country        string
		Employment     string
		Remote         bool
		SalaryMin      int
		SalaryMax      int
		Skills         []string
		Keywords       []job.AIKeyword
		PostedDaysAgo  int
		Views          int
	}{
		{
			ExternalID:  "seed-backend-go",
			Title:       "Backend Engineer (Go)",
			Description: "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems with Redis caching.",
			Employer:    "JobSync Labs",
			City:        "Austin",
			Country:     "US",
			Employment:  job.EmploymentFullTime,
			SalaryMin:   120000,
			SalaryMax:   160000,
			Skills:      []string{"Go", "PostgreSQL", "Redis", "Docker"},
			Keywords: []job.AIKeyword{
				{Keyword: "go", RelevanceScore: 0.95, Category: job.KeywordCategorySkill},
				{Keyword: "postgresql", RelevanceScore: 0.8, Category: job.KeywordCategoryTechnology},
				{Keyword: "redis", RelevanceScore: 0.6, Category: job.KeywordCategoryTechnology},
			},
			PostedDaysAgo: 2,
			Views:         180,
		},
		{
			ExternalID:  "seed-frontend-react",
			Title:       "Frontend Engineer (React)",
			Description: "Develop web apps with React and TypeScript against a Go backend.",
			Employer:    "JobSync Labs",
			City:        "Remote",
			Country:     "US",
			Employment:  job.EmploymentFullTime,
			Remote:      true,
			SalaryMin:   110000,
			SalaryMax:   150000,
			Skills:      []string{"React", "TypeScript", "CSS"},
			Keywords: []job.AIKeyword{
				{Keyword: "react", RelevanceScore: 0.9, Category: job.KeywordCategorySkill},
				{Keyword: "typescript", RelevanceScore: 0.85, Category: job.KeywordCategorySkill},
			},
			PostedDaysAgo: 6,
			Views:         75,
		},
		{
			ExternalID:  "seed-devops",
			Title:       "DevOps Engineer",
			Description: "Own CI/CD pipelines, Kubernetes clusters, and infrastructure as code.",
			Employer:    "CloudWorks",
			City:        "Denver",
			Country:     "US",
			Employment:  job.EmploymentContractor,
			SalaryMin:   90000,
			SalaryMax:   130000,
			Skills:      []string{"Kubernetes", "Terraform", "AWS", "Docker"},
			Keywords: []job.AIKeyword{
				{Keyword: "kubernetes", RelevanceScore: 0.9, Category: job.KeywordCategoryTool},
				{Keyword: "terraform", RelevanceScore: 0.7, Category: job.KeywordCategoryTool},
			},
			PostedDaysAgo: 12,
			Views:         40,
		},
	}

	for _, it := range items {
		kw, err := json.Marshal(it.Keywords)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO jobs (
				id, job_title, job_description, employer_name,
				job_city, job_country, job_employment_type, job_is_remote,
				salary_min, salary_max, external_job_id, required_skills,
				ai_keywords, view_count, posted_at, is_active
			)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13, $14, TRUE)
			ON CONFLICT (external_job_id) WHERE external_job_id IS NOT NULL DO NOTHING`,
			it.Title, it.Description, it.Employer,
			it.City, it.Country, it.Employment, it.Remote,
			it.SalaryMin, it.SalaryMax, it.ExternalID, it.Skills,
			string(kw), it.Views, now.AddDate(0, 0, -it.PostedDaysAgo),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
