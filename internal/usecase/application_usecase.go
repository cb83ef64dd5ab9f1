package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"jobsync/internal/domain/application"
	"jobsync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAlreadyApplied      = errors.New("already applied")
	ErrApplicationNotFound = errors.New("application not found")
	ErrJobInactive         = errors.New("job is not accepting applications")
)

type ApplyInput struct {
	JobID       uuid.UUID
	ResumeURL   string
	CoverLetter string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, applicantID uuid.UUID, in ApplyInput) (application.Application, error)
	ListMine(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]application.Application, error)
	ListForJob(ctx context.Context, actorID uuid.UUID, actorRole string, jobID uuid.UUID, limit, offset int) ([]application.Application, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, status, notes string) (application.Application, error)
	Withdraw(ctx context.Context, applicantID uuid.UUID, id uuid.UUID) (application.Application, error)
}

type Applications struct {
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewApplicationUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, notifier Notifier, logger *log.Logger) *Applications {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Applications{apps: apps, jobs: jobs, notifier: notifier, logger: logger, now: time.Now}
}

func (u *Applications) Apply(ctx context.Context, applicantID uuid.UUID, in ApplyInput) (application.Application, error) {
	if applicantID == uuid.Nil || in.JobID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	j, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrDependency
	}
	if !j.Platform.IsActive || j.IsExpired(u.now()) {
		return application.Application{}, ErrJobInactive
	}

	exists, err := u.apps.ExistsByJobAndApplicant(ctx, in.JobID, applicantID)
	if err != nil {
		return application.Application{}, ErrDependency
	}
	if exists {
		return application.Application{}, ErrAlreadyApplied
	}

	now := u.now()
	a := application.Application{
		ID:          uuid.New(),
		JobID:       in.JobID,
		ApplicantID: applicantID,
		Status:      application.StatusPending,
		ResumeURL:   in.ResumeURL,
		CoverLetter: in.CoverLetter,
		Timeline: []application.TimelineEntry{
			{Status: application.StatusPending, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.apps.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrAlreadyApplied) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrDependency
	}

	if err := u.jobs.IncrementApplicationCount(ctx, in.JobID); err != nil {
		u.logf("[Applications] Application count update failed for %s: %v", in.JobID, err)
	}

	return a, nil
}

func (u *Applications) ListMine(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if applicantID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	apps, err := u.apps.ListByApplicant(ctx, applicantID, limit, offset)
	if err != nil {
		return nil, ErrDependency
	}
	return apps, nil
}

func (u *Applications) ListForJob(ctx context.Context, actorID uuid.UUID, actorRole string, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrDependency
	}
	if !canManageJob(j, actorID, actorRole) {
		return nil, ErrForbidden
	}

	apps, err := u.apps.ListByJob(ctx, jobID, limit, offset)
	if err != nil {
		return nil, ErrDependency
	}
	return apps, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, status, notes string) (application.Application, error) {
	if !application.IsValidStatus(status) || status == application.StatusWithdrawn {
		return application.Application{}, ErrInvalidInput
	}

	a, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrDependency
	}

	j, err := u.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return application.Application{}, ErrDependency
	}
	if !canManageJob(j, actorID, actorRole) {
		return application.Application{}, ErrForbidden
	}

	return u.transition(ctx, a, status, notes)
}

func (u *Applications) Withdraw(ctx context.Context, applicantID uuid.UUID, id uuid.UUID) (application.Application, error) {
	a, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrDependency
	}
	if a.ApplicantID != applicantID {
		return application.Application{}, ErrForbidden
	}

	return u.transition(ctx, a, application.StatusWithdrawn, "")
}

func (u *Applications) transition(ctx context.Context, a application.Application, status, notes string) (application.Application, error) {
	entry := application.TimelineEntry{Status: status, Timestamp: u.now(), Notes: notes}
	if err := u.apps.UpdateStatus(ctx, a.ID, status, entry); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrDependency
	}

	a.Status = status
	a.Timeline = append(a.Timeline, entry)
	a.UpdatedAt = entry.Timestamp

	u.notifier.ApplicationStatusChanged(a.ApplicantID, a.JobID, status)

	return a, nil
}

func (u *Applications) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
