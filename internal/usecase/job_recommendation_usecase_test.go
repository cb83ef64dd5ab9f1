package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobsync/internal/domain/job"
	"jobsync/internal/domain/matching"

	"github.com/google/uuid"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func testJob(title string, postedDaysAgo int) job.Job {
	return job.Job{
		ID:       uuid.New(),
		Title:    title,
		PostedAt: fixedNow().Add(-time.Duration(postedDaysAgo) * 24 * time.Hour),
	}
}

func newRecommendationUsecase(repo *fakeJobRepo, cache Cache) *JobRecommendation {
	uc := NewJobRecommendationUsecase(repo, cache, 5*time.Minute, nil)
	uc.now = fixedNow
	return uc
}

func TestRecommend_EmptyKeywordsRejectedBeforeQuery(t *testing.T) {
	repo := newFakeJobRepo()
	uc := newRecommendationUsecase(repo, nil)

	for _, keywords := range [][]string{nil, {}, {"", "   "}} {
		_, err := uc.Recommend(context.Background(), RecommendationParams{Keywords: keywords})
		if !errors.Is(err, ErrNoKeywords) {
			t.Fatalf("keywords %v: expected ErrNoKeywords, got %v", keywords, err)
		}
	}
	if repo.queried {
		t.Fatalf("job store must not be queried when no keywords survive normalization")
	}
}

func TestRecommend_DependencyFailure(t *testing.T) {
	repo := newFakeJobRepo()
	repo.err = errors.New("connection refused")
	uc := newRecommendationUsecase(repo, nil)

	_, err := uc.Recommend(context.Background(), RecommendationParams{Keywords: []string{"go"}})
	if !errors.Is(err, ErrDependency) {
		t.Fatalf("expected ErrDependency, got %v", err)
	}
}

func TestRecommend_SortsByScoreDescending(t *testing.T) {
	strong := testJob("Senior Go Engineer", 30)
	weak := testJob("Engineer", 30)
	weak.Description = "some go experience useful"

	repo := newFakeJobRepo(weak, strong)
	uc := newRecommendationUsecase(repo, nil)

	res, err := uc.Recommend(context.Background(), RecommendationParams{Keywords: []string{"go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	if res.Items[0].Job.ID != strong.ID {
		t.Fatalf("expected title match ranked first")
	}
	if res.Items[0].Score <= res.Items[1].Score {
		t.Fatalf("expected strictly descending scores, got %d then %d", res.Items[0].Score, res.Items[1].Score)
	}
}

func TestRecommend_TieKeepsRepositoryOrder(t *testing.T) {
	first := testJob("Go Developer", 30)
	second := testJob("Go Developer", 30)

	repo := newFakeJobRepo(first, second)
	uc := newRecommendationUsecase(repo, nil)

	res, err := uc.Recommend(context.Background(), RecommendationParams{Keywords: []string{"go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Items[0].Job.ID != first.ID || res.Items[1].Job.ID != second.ID {
		t.Fatalf("equal scores must keep the repository ordering")
	}
}

func TestRecommend_SkipsTitlelessRecords(t *testing.T) {
	broken := testJob("", 5)
	ok := testJob("Go Engineer", 5)

	repo := newFakeJobRepo(broken, ok)
	uc := newRecommendationUsecase(repo, nil)

	res, err := uc.Recommend(context.Background(), RecommendationParams{Keywords: []string{"go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
	if res.Items[0].Job.ID != ok.ID {
		t.Fatalf("titleless record must be skipped, not scored")
	}
}

func TestRecommend_WritesScoreBack(t *testing.T) {
	j := testJob("Go Engineer", 5)
	repo := newFakeJobRepo(j)
	uc := newRecommendationUsecase(repo, nil)

	res, err := uc.Recommend(context.Background(), RecommendationParams{Keywords: []string{"go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	rec, ok := repo.recommendations[j.ID]
	if !ok {
		t.Fatalf("expected score write-back for %s", j.ID)
	}
	if rec.Score != res.Items[0].Score {
		t.Fatalf("stored score %d != returned score %d", rec.Score, res.Items[0].Score)
	}
	if rec.LastCalculated != fixedNow() {
		t.Fatalf("unexpected last_calculated: %v", rec.LastCalculated)
	}
	if _, ok := rec.Factors[matching.FactorTitleMatch]; !ok {
		t.Fatalf("expected factor breakdown in write-back")
	}
}

func TestRecommend_WriteBackKeepsUnknownFactors(t *testing.T) {
	j := testJob("Go Engineer", 5)
	j.Recommendation.Factors = map[string]float64{
		"legacy_factor":           2,
		matching.FactorTitleMatch: 1,
	}
	repo := newFakeJobRepo(j)
	uc := newRecommendationUsecase(repo, nil)

	if _, err := uc.Recommend(context.Background(), RecommendationParams{Keywords: []string{"go"}}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	rec := repo.recommendations[j.ID]
	if rec.Factors["legacy_factor"] != 2 {
		t.Fatalf("factors from prior scoring calls must survive: %+v", rec.Factors)
	}
	if rec.Factors[matching.FactorTitleMatch] != 40 {
		t.Fatalf("recomputed factors must overwrite stale values: %+v", rec.Factors)
	}
}

func TestRecommend_MinScoreFilters(t *testing.T) {
	strong := testJob("Go Engineer", 30)
	weak := testJob("Engineer", 2)

	repo := newFakeJobRepo(strong, weak)
	uc := newRecommendationUsecase(repo, nil)

	res, err := uc.Recommend(context.Background(), RecommendationParams{
		Keywords: []string{"go"},
		MinScore: 10,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected only the strong match, got %d items", len(res.Items))
	}
	if res.TotalMatched != 1 {
		t.Fatalf("total_matched should count post-filter records, got %d", res.TotalMatched)
	}
}

func TestRecommend_Pagination(t *testing.T) {
	jobs := make([]job.Job, 0, 5)
	for i := 0; i < 5; i++ {
		jobs = append(jobs, testJob("Go Engineer", 30))
	}
	repo := newFakeJobRepo(jobs...)
	uc := newRecommendationUsecase(repo, nil)

	res, err := uc.Recommend(context.Background(), RecommendationParams{
		Keywords: []string{"go"},
		Limit:    2,
		Offset:   4,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item on the last page, got %d", len(res.Items))
	}
	if res.TotalMatched != 5 {
		t.Fatalf("expected total 5, got %d", res.TotalMatched)
	}

	res, err = uc.Recommend(context.Background(), RecommendationParams{
		Keywords: []string{"go"},
		Limit:    2,
		Offset:   10,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 0 {
		t.Fatalf("offset past the end must return an empty page, got %d items", len(res.Items))
	}
}

func TestRecommend_KeywordsNormalizedInResult(t *testing.T) {
	repo := newFakeJobRepo(testJob("Go Engineer", 5))
	uc := newRecommendationUsecase(repo, nil)

	res, err := uc.Recommend(context.Background(), RecommendationParams{
		Keywords: []string{" Go ", "GO", "react"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.KeywordsUsed) != 2 || res.KeywordsUsed[0] != "go" || res.KeywordsUsed[1] != "react" {
		t.Fatalf("expected deduplicated lowercase keywords, got %v", res.KeywordsUsed)
	}
}

func TestRecommend_CacheHitSkipsStore(t *testing.T) {
	repo := newFakeJobRepo(testJob("Go Engineer", 5))
	cache := newFakeCache()
	uc := newRecommendationUsecase(repo, cache)

	params := RecommendationParams{Keywords: []string{"go"}}

	first, err := uc.Recommend(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	repo.queried = false
	second, err := uc.Recommend(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.queried {
		t.Fatalf("cache hit must not reach the job store")
	}
	if len(second.Items) != len(first.Items) || second.Items[0].Score != first.Items[0].Score {
		t.Fatalf("cached result differs from original")
	}
}
