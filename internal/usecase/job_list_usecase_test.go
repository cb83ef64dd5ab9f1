package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestListJobs_LimitValidation(t *testing.T) {
	repo := newFakeJobRepo()
	uc := NewJobListUsecase(repo, nil, time.Minute, nil)

	for _, limit := range []int{-1, 101} {
		_, err := uc.ListJobs(context.Background(), JobListParams{Limit: limit})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("limit %d: expected ErrInvalidInput, got %v", limit, err)
		}
	}
	if repo.queried {
		t.Fatalf("invalid limits must be rejected before hitting storage")
	}

	res, err := uc.ListJobs(context.Background(), JobListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Limit != 10 {
		t.Fatalf("expected default limit 10, got %d", res.Limit)
	}
}

func TestListJobs_RejectsBadEmploymentType(t *testing.T) {
	uc := NewJobListUsecase(newFakeJobRepo(), nil, time.Minute, nil)
	_, err := uc.ListJobs(context.Background(), JobListParams{EmploymentType: "freelance"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListJobs_NeverReturnsNilSlice(t *testing.T) {
	uc := NewJobListUsecase(newFakeJobRepo(), nil, time.Minute, nil)
	res, err := uc.ListJobs(context.Background(), JobListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Jobs == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestListJobs_DependencyFailure(t *testing.T) {
	repo := newFakeJobRepo()
	repo.err = errors.New("connection refused")
	uc := NewJobListUsecase(repo, nil, time.Minute, nil)

	_, err := uc.ListJobs(context.Background(), JobListParams{})
	if !errors.Is(err, ErrDependency) {
		t.Fatalf("expected ErrDependency, got %v", err)
	}
}

func TestListJobs_SecondCallServedFromCache(t *testing.T) {
	repo := newFakeJobRepo(testJob("Backend Engineer", 1))
	cache := newFakeCache()
	uc := NewJobListUsecase(repo, cache, time.Minute, nil)

	first, err := uc.ListJobs(context.Background(), JobListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	repo.queried = false
	second, err := uc.ListJobs(context.Background(), JobListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.queried {
		t.Fatalf("second call must come from cache")
	}
	if second.Total != first.Total || len(second.Jobs) != len(first.Jobs) {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestListJobs_DistinctFiltersDistinctEntries(t *testing.T) {
	repo := newFakeJobRepo(testJob("Backend Engineer", 1))
	cache := newFakeCache()
	uc := NewJobListUsecase(repo, cache, time.Minute, nil)

	if _, err := uc.ListJobs(context.Background(), JobListParams{Location: "berlin"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	repo.queried = false
	if _, err := uc.ListJobs(context.Background(), JobListParams{Location: "amsterdam"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !repo.queried {
		t.Fatalf("a different filter set must not share a cache entry")
	}
}
