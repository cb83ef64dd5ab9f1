package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobsync/internal/domain/application"
	"jobsync/internal/domain/job"
	"jobsync/internal/domain/user"

	"github.com/google/uuid"
)

func activeJob() job.Job {
	j := testJob("Backend Engineer", 1)
	j.Platform.IsActive = true
	return j
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	j := activeJob()
	jobs := newFakeJobRepo(j)
	apps := newFakeApplicationRepo()
	uc := NewApplicationUsecase(apps, jobs, nil, nil)
	uc.now = fixedNow

	applicant := uuid.New()
	a, err := uc.Apply(context.Background(), applicant, ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example/me.pdf"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if a.Status != application.StatusPending {
		t.Fatalf("expected pending status, got %q", a.Status)
	}
	if len(a.Timeline) != 1 || a.Timeline[0].Status != application.StatusPending {
		t.Fatalf("expected a single pending timeline entry, got %+v", a.Timeline)
	}
	if jobs.appCounts[j.ID] != 1 {
		t.Fatalf("expected application count incremented on the job")
	}
}

func TestApply_DuplicateRejected(t *testing.T) {
	j := activeJob()
	jobs := newFakeJobRepo(j)
	uc := NewApplicationUsecase(newFakeApplicationRepo(), jobs, nil, nil)

	applicant := uuid.New()
	if _, err := uc.Apply(context.Background(), applicant, ApplyInput{JobID: j.ID}); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	_, err := uc.Apply(context.Background(), applicant, ApplyInput{JobID: j.ID})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApply_InactiveOrExpiredJob(t *testing.T) {
	inactive := testJob("Closed Role", 1)
	expired := activeJob()
	past := fixedNow().Add(-time.Hour)
	expired.ExpiresAt = &past

	jobs := newFakeJobRepo(inactive, expired)
	uc := NewApplicationUsecase(newFakeApplicationRepo(), jobs, nil, nil)
	uc.now = fixedNow

	for _, id := range []uuid.UUID{inactive.ID, expired.ID} {
		_, err := uc.Apply(context.Background(), uuid.New(), ApplyInput{JobID: id})
		if !errors.Is(err, ErrJobInactive) {
			t.Fatalf("expected ErrJobInactive for %s, got %v", id, err)
		}
	}
}

func TestUpdateStatus_RecruiterOwnsJob(t *testing.T) {
	recruiter := uuid.New()
	j := activeJob()
	j.PostedBy = &recruiter
	jobs := newFakeJobRepo(j)

	a := application.Application{
		ID:          uuid.New(),
		JobID:       j.ID,
		ApplicantID: uuid.New(),
		Status:      application.StatusPending,
		Timeline:    []application.TimelineEntry{{Status: application.StatusPending, Timestamp: fixedNow()}},
	}
	apps := newFakeApplicationRepo(a)
	notifier := &fakeNotifier{}
	uc := NewApplicationUsecase(apps, jobs, notifier, nil)
	uc.now = fixedNow

	updated, err := uc.UpdateStatus(context.Background(), recruiter, user.RoleRecruiter, a.ID, application.StatusShortlisted, "strong resume")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusShortlisted {
		t.Fatalf("expected shortlisted, got %q", updated.Status)
	}
	if len(updated.Timeline) != 2 || updated.Timeline[1].Notes != "strong resume" {
		t.Fatalf("expected timeline appended with notes, got %+v", updated.Timeline)
	}
	if len(notifier.statusChanges) != 1 || notifier.statusChanges[0] != application.StatusShortlisted {
		t.Fatalf("expected status-change notification, got %v", notifier.statusChanges)
	}
}

func TestUpdateStatus_ForbiddenForStrangers(t *testing.T) {
	recruiter := uuid.New()
	j := activeJob()
	j.PostedBy = &recruiter
	a := application.Application{ID: uuid.New(), JobID: j.ID, ApplicantID: uuid.New(), Status: application.StatusPending}
	uc := NewApplicationUsecase(newFakeApplicationRepo(a), newFakeJobRepo(j), nil, nil)

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), user.RoleRecruiter, a.ID, application.StatusReviewing, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateStatus_RejectsWithdrawnAndUnknown(t *testing.T) {
	uc := NewApplicationUsecase(newFakeApplicationRepo(), newFakeJobRepo(), nil, nil)

	for _, status := range []string{application.StatusWithdrawn, "ghosted", ""} {
		_, err := uc.UpdateStatus(context.Background(), uuid.New(), user.RoleAdmin, uuid.New(), status, "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("status %q: expected ErrInvalidInput, got %v", status, err)
		}
	}
}

func TestWithdraw_OnlyByApplicant(t *testing.T) {
	j := activeJob()
	applicant := uuid.New()
	a := application.Application{ID: uuid.New(), JobID: j.ID, ApplicantID: applicant, Status: application.StatusPending}
	uc := NewApplicationUsecase(newFakeApplicationRepo(a), newFakeJobRepo(j), nil, nil)
	uc.now = fixedNow

	if _, err := uc.Withdraw(context.Background(), uuid.New(), a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	withdrawn, err := uc.Withdraw(context.Background(), applicant, a.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if withdrawn.Status != application.StatusWithdrawn {
		t.Fatalf("expected withdrawn, got %q", withdrawn.Status)
	}
}

func TestWithdraw_NotFound(t *testing.T) {
	uc := NewApplicationUsecase(newFakeApplicationRepo(), newFakeJobRepo(), nil, nil)
	_, err := uc.Withdraw(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
