package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobsync/internal/database"
	"jobsync/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// KeywordFilter bounds the candidate set handed to the relevance scorer.
// The keyword clause is a coarse pre-filter (substring/membership match
// against title, description, skills, and AI keywords), not the
// authoritative score.
type KeywordFilter struct {
	Keywords       []string
	Location       string
	EmploymentType string
	IsRemote       *bool
	SalaryMin      int
	Limit          int
	Offset         int
}

type ListFilter struct {
	Location       string
	EmploymentType string
	IsRemote       *bool
	SalaryMin      int
	Search         string
	SortBy         string
	SortDesc       bool
	Limit          int
	Offset         int
}

type JobStats struct {
	TotalJobs         int     `json:"total_jobs"`
	AvgViews          float64 `json:"avg_views"`
	AvgApplications   float64 `json:"avg_applications"`
	TotalViews        int     `json:"total_views"`
	TotalApplications int     `json:"total_applications"`
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) error
	Update(ctx context.Context, j job.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	GetByExternalID(ctx context.Context, externalID string) (job.Job, error)
	List(ctx context.Context, f ListFilter) ([]job.Job, int, error)
	FindByKeywords(ctx context.Context, f KeywordFilter) ([]job.Job, error)
	Featured(ctx context.Context, limit int) ([]job.Job, error)
	Trending(ctx context.Context, limit int) ([]job.Job, error)
	Recent(ctx context.Context, days, limit int) ([]job.Job, error)
	Stats(ctx context.Context) (JobStats, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementApplicationCount(ctx context.Context, id uuid.UUID) error
	UpdateRecommendation(ctx context.Context, id uuid.UUID, rec job.Recommendation) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, job_title, job_description, employer_name, employer_website,
	job_city, job_state, job_country, job_employment_type, job_is_remote,
	salary_min, salary_max, salary_currency, salary_period, job_apply_link,
	posted_at, expires_at, COALESCE(external_job_id, ''), required_skills, ai_keywords,
	rec_score, rec_last_calculated, rec_factors,
	view_count, application_count, save_count, share_count,
	is_featured, is_active, is_verified, quality_score, source, posted_by,
	created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	aiJSON, err := json.Marshal(j.AIKeywords)
	if err != nil {
		return err
	}
	factorsJSON, err := json.Marshal(j.Recommendation.Factors)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO jobs (
			id, job_title, job_description, employer_name, employer_website,
			job_city, job_state, job_country, job_employment_type, job_is_remote,
			salary_min, salary_max, salary_currency, salary_period, job_apply_link,
			posted_at, expires_at, external_job_id, required_skills, ai_keywords,
			rec_score, rec_last_calculated, rec_factors,
			is_featured, is_active, is_verified, quality_score, source, posted_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, NULLIF($18, ''), $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29
		)`,
		j.ID, j.Title, j.Description, j.EmployerName, j.EmployerWebsite,
		j.City, j.State, j.Country, j.EmploymentType, j.IsRemote,
		j.Salary.MinSalary, j.Salary.MaxSalary, j.Salary.Currency, j.Salary.Period, j.ApplyLink,
		j.PostedAt, j.ExpiresAt, j.ExternalJobID, j.RequiredSkills, aiJSON,
		j.Recommendation.Score, nullableTime(j.Recommendation.LastCalculated), factorsJSON,
		j.Platform.IsFeatured, j.Platform.IsActive, j.Platform.IsVerified,
		j.Platform.QualityScore, j.Platform.Source, j.PostedBy,
	)
	return err
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) error {
	aiJSON, err := json.Marshal(j.AIKeywords)
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx, `
		UPDATE jobs SET
			job_title = $2, job_description = $3, employer_name = $4, employer_website = $5,
			job_city = $6, job_state = $7, job_country = $8,
			job_employment_type = $9, job_is_remote = $10,
			salary_min = $11, salary_max = $12, salary_currency = $13, salary_period = $14,
			job_apply_link = $15, expires_at = $16, required_skills = $17, ai_keywords = $18,
			is_featured = $19, quality_score = $20, updated_at = now()
		WHERE id = $1`,
		j.ID, j.Title, j.Description, j.EmployerName, j.EmployerWebsite,
		j.City, j.State, j.Country, j.EmploymentType, j.IsRemote,
		j.Salary.MinSalary, j.Salary.MaxSalary, j.Salary.Currency, j.Salary.Period,
		j.ApplyLink, j.ExpiresAt, j.RequiredSkills, aiJSON,
		j.Platform.IsFeatured, j.Platform.QualityScore,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetByExternalID(ctx context.Context, externalID string) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE external_job_id = $1`, externalID)
	return scanJob(row)
}

func (r *PostgresJobRepository) List(ctx context.Context, f ListFilter) ([]job.Job, int, error) {
	where, args := listConditions(f)

	countQuery := `SELECT COUNT(1) FROM jobs ` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := orderClause(f.SortBy, f.SortDesc)

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM jobs %s %s LIMIT $%d OFFSET $%d`,
		jobColumns, where, order, len(args)-1, len(args))

	jobs, err := r.queryJobs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *PostgresJobRepository) FindByKeywords(ctx context.Context, f KeywordFilter) ([]job.Job, error) {
	conds := []string{`is_active = true`}
	args := make([]any, 0, 8)

	if len(f.Keywords) > 0 {
		patterns := make([]string, 0, len(f.Keywords))
		lowered := make([]string, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			patterns = append(patterns, "%"+k+"%")
			lowered = append(lowered, k)
		}
		args = append(args, patterns)
		pi := len(args)
		args = append(args, lowered)
		li := len(args)
		conds = append(conds, fmt.Sprintf(`(
			job_title ILIKE ANY($%d)
			OR job_description ILIKE ANY($%d)
			OR EXISTS (SELECT 1 FROM unnest(required_skills) s WHERE s ILIKE ANY($%d))
			OR EXISTS (SELECT 1 FROM jsonb_array_elements(ai_keywords) ak WHERE lower(ak->>'keyword') = ANY($%d))
		)`, pi, pi, pi, li))
	}

	if loc := strings.TrimSpace(f.Location); loc != "" {
		args = append(args, "%"+loc+"%")
		i := len(args)
		conds = append(conds, fmt.Sprintf(`(job_city ILIKE $%d OR job_state ILIKE $%d)`, i, i))
	}
	if et := strings.TrimSpace(f.EmploymentType); et != "" {
		args = append(args, strings.ToUpper(et))
		conds = append(conds, fmt.Sprintf(`job_employment_type = $%d`, len(args)))
	}
	if f.IsRemote != nil {
		args = append(args, *f.IsRemote)
		conds = append(conds, fmt.Sprintf(`job_is_remote = $%d`, len(args)))
	}
	if f.SalaryMin > 0 {
		args = append(args, f.SalaryMin)
		conds = append(conds, fmt.Sprintf(`salary_min >= $%d`, len(args)))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT %s FROM jobs WHERE %s ORDER BY posted_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, strings.Join(conds, " AND "), len(args)-1, len(args),
	)

	return r.queryJobs(ctx, query, args...)
}

func (r *PostgresJobRepository) Featured(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE is_active = true AND is_featured = true
		 ORDER BY posted_at DESC LIMIT $1`, limit)
}

func (r *PostgresJobRepository) Trending(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE is_active = true
		 ORDER BY view_count DESC, application_count DESC, posted_at DESC
		 LIMIT $1`, limit)
}

func (r *PostgresJobRepository) Recent(ctx context.Context, days, limit int) ([]job.Job, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 20
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE is_active = true AND posted_at >= $1
		 ORDER BY posted_at DESC LIMIT $2`, cutoff, limit)
}

func (r *PostgresJobRepository) Stats(ctx context.Context) (JobStats, error) {
	var s JobStats
	row := r.db.QueryRow(ctx, `
		SELECT COUNT(1),
			COALESCE(AVG(view_count), 0),
			COALESCE(AVG(application_count), 0),
			COALESCE(SUM(view_count), 0),
			COALESCE(SUM(application_count), 0)
		FROM jobs WHERE is_active = true`)
	if err := row.Scan(&s.TotalJobs, &s.AvgViews, &s.AvgApplications, &s.TotalViews, &s.TotalApplications); err != nil {
		return JobStats{}, err
	}
	return s, nil
}

func (r *PostgresJobRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx, `
		UPDATE jobs SET is_active = false, updated_at = now()
		WHERE is_active = true AND expires_at IS NOT NULL AND expires_at < $1`, now)
}

func (r *PostgresJobRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE jobs SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresJobRepository) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, id)
	return err
}

// UpdateRecommendation persists the scorer's output. Factor keys merge over
// any previously stored breakdown: new keys overwrite, unspecified keys from
// prior calls are retained.
func (r *PostgresJobRepository) UpdateRecommendation(ctx context.Context, id uuid.UUID, rec job.Recommendation) error {
	factorsJSON, err := json.Marshal(rec.Factors)
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx, `
		UPDATE jobs SET
			rec_score = $2,
			rec_last_calculated = $3,
			rec_factors = rec_factors || $4::jsonb
		WHERE id = $1`,
		id, rec.Score, rec.LastCalculated, factorsJSON,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJobFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func listConditions(f ListFilter) (string, []any) {
	conds := []string{`is_active = true`}
	args := make([]any, 0, 6)

	if loc := strings.TrimSpace(f.Location); loc != "" {
		args = append(args, "%"+loc+"%")
		i := len(args)
		conds = append(conds, fmt.Sprintf(`(job_city ILIKE $%d OR job_state ILIKE $%d OR job_country ILIKE $%d)`, i, i, i))
	}
	if et := strings.TrimSpace(f.EmploymentType); et != "" {
		args = append(args, strings.ToUpper(et))
		conds = append(conds, fmt.Sprintf(`job_employment_type = $%d`, len(args)))
	}
	if f.IsRemote != nil {
		args = append(args, *f.IsRemote)
		conds = append(conds, fmt.Sprintf(`job_is_remote = $%d`, len(args)))
	}
	if f.SalaryMin > 0 {
		args = append(args, f.SalaryMin)
		conds = append(conds, fmt.Sprintf(`salary_min >= $%d`, len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		i := len(args)
		conds = append(conds, fmt.Sprintf(`(job_title ILIKE $%d OR job_description ILIKE $%d)`, i, i))
	}

	return `WHERE ` + strings.Join(conds, " AND "), args
}

// orderClause whitelists sortable columns; anything else falls back to
// posted_at.
func orderClause(sortBy string, desc bool) string {
	col := "posted_at"
	switch sortBy {
	case "posted_at", "":
	case "recommendation_score":
		col = "rec_score"
	case "view_count":
		col = "view_count"
	case "salary_min":
		col = "salary_min"
	case "quality_score":
		col = "quality_score"
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

func scanJob(row database.Row) (job.Job, error) {
	j, err := scanJobFrom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJobFrom(s scanner) (job.Job, error) {
	var (
		j           job.Job
		aiJSON      []byte
		factorsJSON []byte
		recCalc     *time.Time
	)
	err := s.Scan(
		&j.ID, &j.Title, &j.Description, &j.EmployerName, &j.EmployerWebsite,
		&j.City, &j.State, &j.Country, &j.EmploymentType, &j.IsRemote,
		&j.Salary.MinSalary, &j.Salary.MaxSalary, &j.Salary.Currency, &j.Salary.Period, &j.ApplyLink,
		&j.PostedAt, &j.ExpiresAt, &j.ExternalJobID, &j.RequiredSkills, &aiJSON,
		&j.Recommendation.Score, &recCalc, &factorsJSON,
		&j.Engagement.ViewCount, &j.Engagement.ApplicationCount, &j.Engagement.SaveCount, &j.Engagement.ShareCount,
		&j.Platform.IsFeatured, &j.Platform.IsActive, &j.Platform.IsVerified,
		&j.Platform.QualityScore, &j.Platform.Source, &j.PostedBy,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}

	if recCalc != nil {
		j.Recommendation.LastCalculated = *recCalc
	}
	if len(aiJSON) > 0 {
		if err := json.Unmarshal(aiJSON, &j.AIKeywords); err != nil {
			return job.Job{}, err
		}
	}
	if len(factorsJSON) > 0 {
		if err := json.Unmarshal(factorsJSON, &j.Recommendation.Factors); err != nil {
			return job.Job{}, err
		}
	}
	return j, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
