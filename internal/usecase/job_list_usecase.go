package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"jobsync/internal/domain/job"
	"jobsync/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

type JobListParams struct {
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

type JobListResult struct {
	Jobs   []job.Job `json:"jobs"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) (JobListResult, error)
}

type JobList struct {
	jobs   repository.JobRepository
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
}

func NewJobListUsecase(jobs repository.JobRepository, cache Cache, ttl time.Duration, logger *log.Logger) *JobList {
	return &JobList{jobs: jobs, cache: cache, ttl: ttl, logger: logger}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) (JobListResult, error) {
	limit := params.Limit
	if limit == 0 {
		limit = 10
	}
	if limit < 0 || limit > 100 {
		return JobListResult{}, ErrInvalidInput
	}
	offset := params.Offset
	if offset < 0 {
		return JobListResult{}, ErrInvalidInput
	}
	if params.EmploymentType != "" && !job.IsValidEmploymentType(params.EmploymentType) {
		return JobListResult{}, ErrInvalidInput
	}

	params.Limit = limit
	params.Offset = offset

	cacheKey := ""
	lockKey := ""
	if u.cache != nil {
		cacheKey = JobListCacheKey(params)
		lockKey = CacheLockKey(cacheKey)

		var cached JobListResult
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logf("[Jobs] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logf("[Jobs] Cache MISS: %s", cacheKey)
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil && !ok {
			// Another request is filling this entry; give it a moment.
			jitterMs := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			time.Sleep(300*time.Millisecond + jitterMs)

			var cached JobListResult
			hit, err2 := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err2 == nil && hit {
				u.logf("[Jobs] Cache HIT: %s", cacheKey)
				return cached, nil
			}
			u.logf("[Jobs] Lock wait fallback: %s", lockKey)
		}
	}

	jobs, total, err := u.jobs.List(ctx, repository.ListFilter{
		Location:       params.Location,
		EmploymentType: params.EmploymentType,
		IsRemote:       params.IsRemote,
		SalaryMin:      params.SalaryMin,
		Search:         params.Search,
		SortBy:         params.SortBy,
		SortDesc:       params.SortDesc,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return JobListResult{}, ErrDependency
	}
	if jobs == nil {
		jobs = []job.Job{}
	}

	out := JobListResult{Jobs: jobs, Total: total, Limit: limit, Offset: offset}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.ttl); err == nil {
			u.logf("[Jobs] Cache SET: %s", cacheKey)
		}
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}

	return out, nil
}

func (u *JobList) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
