package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"jobsync/internal/domain/application"
	"jobsync/internal/domain/job"
	"jobsync/internal/domain/user"
	"jobsync/internal/repository"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	mu sync.Mutex

	jobs    []job.Job
	err     error
	queried bool

	recommendations map[uuid.UUID]job.Recommendation
	created         []job.Job
	updated         []job.Job
	viewCounts      map[uuid.UUID]int
	appCounts       map[uuid.UUID]int
	deactivated     []uuid.UUID
}

func newFakeJobRepo(jobs ...job.Job) *fakeJobRepo {
	return &fakeJobRepo{
		jobs:            jobs,
		recommendations: make(map[uuid.UUID]job.Recommendation),
		viewCounts:      make(map[uuid.UUID]int),
		appCounts:       make(map[uuid.UUID]int),
	}
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, j)
	f.jobs = append(f.jobs, j)
	return nil
}

func (f *fakeJobRepo) Update(_ context.Context, j job.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, j)
	for i := range f.jobs {
		if f.jobs[i].ID == j.ID {
			f.jobs[i] = j
		}
	}
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return job.Job{}, f.err
	}
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (f *fakeJobRepo) GetByExternalID(_ context.Context, externalID string) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return job.Job{}, f.err
	}
	for _, j := range f.jobs {
		if j.ExternalJobID == externalID {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (f *fakeJobRepo) List(_ context.Context, _ repository.ListFilter) ([]job.Job, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = true
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.jobs, len(f.jobs), nil
}

func (f *fakeJobRepo) FindByKeywords(_ context.Context, _ repository.KeywordFilter) ([]job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = true
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

func (f *fakeJobRepo) Featured(_ context.Context, _ int) ([]job.Job, error) { return f.jobs, f.err }
func (f *fakeJobRepo) Trending(_ context.Context, _ int) ([]job.Job, error) { return f.jobs, f.err }
func (f *fakeJobRepo) Recent(_ context.Context, _, _ int) ([]job.Job, error) {
	return f.jobs, f.err
}

func (f *fakeJobRepo) Stats(_ context.Context) (repository.JobStats, error) {
	return repository.JobStats{TotalJobs: len(f.jobs)}, f.err
}

func (f *fakeJobRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeJobRepo) DeactivateExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, f.err
}

func (f *fakeJobRepo) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.viewCounts[id]++
	return nil
}

func (f *fakeJobRepo) IncrementApplicationCount(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appCounts[id]++
	return nil
}

func (f *fakeJobRepo) UpdateRecommendation(_ context.Context, id uuid.UUID, rec job.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recommendations[id] = rec
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]user.User
	err   error

	jobsPosted map[uuid.UUID]int
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	m := make(map[uuid.UUID]user.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m, jobsPosted: make(map[uuid.UUID]int)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u user.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, err := f.GetUserByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) UpdateSeekerProfile(_ context.Context, id uuid.UUID, p user.SeekerProfile) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.SeekerProfile = p
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) IncrementJobsPosted(_ context.Context, id uuid.UUID) error {
	f.jobsPosted[id]++
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID) error { return nil }

type fakeApplicationRepo struct {
	apps map[uuid.UUID]application.Application
	err  error
}

func newFakeApplicationRepo(apps ...application.Application) *fakeApplicationRepo {
	m := make(map[uuid.UUID]application.Application, len(apps))
	for _, a := range apps {
		m[a.ID] = a
	}
	return &fakeApplicationRepo{apps: m}
}

func (f *fakeApplicationRepo) Create(_ context.Context, a application.Application) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return repository.ErrAlreadyApplied
		}
	}
	f.apps[a.ID] = a
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	if f.err != nil {
		return application.Application{}, f.err
	}
	a, ok := f.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID, _, _ int) ([]application.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []application.Application
	for _, a := range f.apps {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID, _, _ int) ([]application.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []application.Application
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ExistsByJobAndApplicant(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, a := range f.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, entry application.TimelineEntry) error {
	if f.err != nil {
		return f.err
	}
	a, ok := f.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	a.Timeline = append(a.Timeline, entry)
	f.apps[id] = a
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	sets  int
	gets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	b, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, key)
	return nil
}

func (f *fakeCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.store[key]; ok {
		return false, nil
	}
	f.store[key] = []byte(value)
	return true, nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	posted        []job.Job
	statusChanges []string
}

func (f *fakeNotifier) JobPosted(j job.Job) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, j)
}

func (f *fakeNotifier) ApplicationStatusChanged(_, _ uuid.UUID, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusChanges = append(f.statusChanges, status)
}
