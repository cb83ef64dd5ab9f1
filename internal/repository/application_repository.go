package repository

import (
	"context"
	"encoding/json"
	"errors"

	"jobsync/internal/database"
	"jobsync/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied")
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error)
	ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, entry application.TimelineEntry) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, applicant_id, status, resume_url, cover_letter, timeline, created_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	timelineJSON, err := json.Marshal(a.Timeline)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO applications (id, job_id, applicant_id, status, resume_url, cover_letter, timeline)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.JobID, a.ApplicantID, a.Status, a.ResumeURL, a.CoverLetter, timelineJSON,
	)
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return r.queryApplications(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		applicantID, sanitizeLimit(limit), sanitizeOffset(offset))
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return r.queryApplications(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		jobID, sanitizeLimit(limit), sanitizeOffset(offset))
}

func (r *PostgresApplicationRepository) ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus sets the new status and appends the timeline entry in one
// statement; the timeline is append-only.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, entry application.TimelineEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx, `
		UPDATE applications SET
			status = $2,
			timeline = timeline || $3::jsonb,
			updated_at = now()
		WHERE id = $1`,
		id, status, entryJSON,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var (
			a            application.Application
			timelineJSON []byte
		)
		if err := rows.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.Status,
			&a.ResumeURL, &a.CoverLetter, &timelineJSON, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if len(timelineJSON) > 0 {
			if err := json.Unmarshal(timelineJSON, &a.Timeline); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a            application.Application
		timelineJSON []byte
	)
	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.Status,
		&a.ResumeURL, &a.CoverLetter, &timelineJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	if len(timelineJSON) > 0 {
		if err := json.Unmarshal(timelineJSON, &a.Timeline); err != nil {
			return application.Application{}, err
		}
	}
	return a, nil
}

func sanitizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func sanitizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
