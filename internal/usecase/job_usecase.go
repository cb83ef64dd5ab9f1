package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobsync/internal/domain/job"
	"jobsync/internal/domain/user"
	"jobsync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrForbidden   = errors.New("forbidden")
)

type BulkImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type JobUsecase interface {
	CreateJob(ctx context.Context, posterID uuid.UUID, j job.Job) (job.Job, error)
	GetJob(ctx context.Context, id uuid.UUID, countView bool) (job.Job, error)
	UpdateJob(ctx context.Context, actorID uuid.UUID, actorRole string, j job.Job) (job.Job, error)
	DeactivateJob(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error
	Featured(ctx context.Context, limit int) ([]job.Job, error)
	Trending(ctx context.Context, limit int) ([]job.Job, error)
	Recent(ctx context.Context, days, limit int) ([]job.Job, error)
	Stats(ctx context.Context) (repository.JobStats, error)
	BulkImport(ctx context.Context, jobs []job.Job) (BulkImportResult, error)
}

type Jobs struct {
	jobs     repository.JobRepository
	users    user.Repository
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository, users user.Repository, notifier Notifier, logger *log.Logger) *Jobs {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Jobs{jobs: jobs, users: users, notifier: notifier, logger: logger, now: time.Now}
}

func (u *Jobs) CreateJob(ctx context.Context, posterID uuid.UUID, j job.Job) (job.Job, error) {
	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}

	now := u.now()
	j.ID = uuid.New()
	if posterID != uuid.Nil {
		j.PostedBy = &posterID
	}
	if j.PostedAt.IsZero() {
		j.PostedAt = now
	}
	j.Platform.IsActive = true
	j.Platform.QualityScore = j.QualityScore()
	if j.Platform.Source == "" {
		j.Platform.Source = "direct"
	}
	j.CreatedAt = now
	j.UpdatedAt = now

	if err := u.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrDependency
	}

	if posterID != uuid.Nil {
		if err := u.users.IncrementJobsPosted(ctx, posterID); err != nil {
			u.logf("[Jobs] Poster stats update failed for %s: %v", posterID, err)
		}
	}

	u.notifier.JobPosted(j)

	created, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrDependency
	}
	return created, nil
}

func (u *Jobs) GetJob(ctx context.Context, id uuid.UUID, countView bool) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrDependency
	}
	// Deactivated postings are indistinguishable from missing ones on the
	// public detail endpoint.
	if !j.Platform.IsActive {
		return job.Job{}, ErrJobNotFound
	}

	if countView {
		if err := u.jobs.IncrementViewCount(ctx, id); err != nil {
			u.logf("[Jobs] View count update failed for %s: %v", id, err)
		} else {
			j.Engagement.ViewCount++
		}
	}

	return j, nil
}

func (u *Jobs) UpdateJob(ctx context.Context, actorID uuid.UUID, actorRole string, j job.Job) (job.Job, error) {
	existing, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrDependency
	}

	if !canManageJob(existing, actorID, actorRole) {
		return job.Job{}, ErrForbidden
	}
	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}

	j.PostedBy = existing.PostedBy
	j.CreatedAt = existing.CreatedAt
	j.UpdatedAt = u.now()
	j.Platform.QualityScore = j.QualityScore()

	if err := u.jobs.Update(ctx, j); err != nil {
		return job.Job{}, ErrDependency
	}

	updated, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrDependency
	}
	return updated, nil
}

func (u *Jobs) DeactivateJob(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	existing, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrDependency
	}

	if !canManageJob(existing, actorID, actorRole) {
		return ErrForbidden
	}

	if err := u.jobs.Deactivate(ctx, id); err != nil {
		return ErrDependency
	}
	return nil
}

func (u *Jobs) Featured(ctx context.Context, limit int) ([]job.Job, error) {
	jobs, err := u.jobs.Featured(ctx, sanitizeListLimit(limit))
	if err != nil {
		return nil, ErrDependency
	}
	return jobs, nil
}

func (u *Jobs) Trending(ctx context.Context, limit int) ([]job.Job, error) {
	jobs, err := u.jobs.Trending(ctx, sanitizeListLimit(limit))
	if err != nil {
		return nil, ErrDependency
	}
	return jobs, nil
}

func (u *Jobs) Recent(ctx context.Context, days, limit int) ([]job.Job, error) {
	if days <= 0 {
		days = 7
	}
	if days > 30 {
		days = 30
	}
	jobs, err := u.jobs.Recent(ctx, days, sanitizeListLimit(limit))
	if err != nil {
		return nil, ErrDependency
	}
	return jobs, nil
}

func (u *Jobs) Stats(ctx context.Context) (repository.JobStats, error) {
	stats, err := u.jobs.Stats(ctx)
	if err != nil {
		return repository.JobStats{}, ErrDependency
	}
	return stats, nil
}

// BulkImport upserts keyed on external_job_id: known ids are updated in
// place, unknown ones inserted, records without an id or title skipped.
func (u *Jobs) BulkImport(ctx context.Context, jobs []job.Job) (BulkImportResult, error) {
	var res BulkImportResult
	now := u.now()

	for _, j := range jobs {
		if strings.TrimSpace(j.ExternalJobID) == "" || strings.TrimSpace(j.Title) == "" {
			res.Skipped++
			continue
		}

		existing, err := u.jobs.GetByExternalID(ctx, j.ExternalJobID)
		switch {
		case err == nil:
			j.ID = existing.ID
			j.PostedBy = existing.PostedBy
			j.CreatedAt = existing.CreatedAt
			j.UpdatedAt = now
			j.Platform.IsActive = true
			j.Platform.QualityScore = j.QualityScore()
			if err := u.jobs.Update(ctx, j); err != nil {
				u.logf("[Jobs] Bulk update failed for %s: %v", j.ExternalJobID, err)
				res.Skipped++
				continue
			}
			res.Updated++
		case errors.Is(err, repository.ErrJobNotFound):
			j.ID = uuid.New()
			if j.PostedAt.IsZero() {
				j.PostedAt = now
			}
			j.Platform.IsActive = true
			j.Platform.QualityScore = j.QualityScore()
			if j.Platform.Source == "" {
				j.Platform.Source = "import"
			}
			j.CreatedAt = now
			j.UpdatedAt = now
			if err := u.jobs.Create(ctx, j); err != nil {
				u.logf("[Jobs] Bulk insert failed for %s: %v", j.ExternalJobID, err)
				res.Skipped++
				continue
			}
			res.Created++
		default:
			return res, ErrDependency
		}
	}

	return res, nil
}

func (u *Jobs) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func validateJob(j job.Job) error {
	if strings.TrimSpace(j.Title) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(j.EmployerName) == "" {
		return ErrInvalidInput
	}
	if j.EmploymentType != "" && !job.IsValidEmploymentType(j.EmploymentType) {
		return ErrInvalidInput
	}
	if j.Salary.MinSalary < 0 || j.Salary.MaxSalary < 0 {
		return ErrInvalidInput
	}
	if j.Salary.MinSalary > 0 && j.Salary.MaxSalary > 0 && j.Salary.MinSalary > j.Salary.MaxSalary {
		return ErrInvalidInput
	}
	return nil
}

func canManageJob(j job.Job, actorID uuid.UUID, actorRole string) bool {
	if actorRole == user.RoleAdmin {
		return true
	}
	return j.PostedBy != nil && *j.PostedBy == actorID
}

func sanitizeListLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}
