package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"jobsync/internal/domain/job"
	"jobsync/internal/domain/matching"
	"jobsync/internal/repository"
)

var (
	// ErrNoKeywords means no usable keyword survived normalization; the
	// caller never reached the job store.
	ErrNoKeywords = errors.New("no keywords provided")

	// ErrDependency means a collaborator (job store, cache) failed after
	// input validation passed.
	ErrDependency = errors.New("dependency failure")
)

// candidateCap bounds how many records the coarse keyword pre-filter may
// hand to the scorer per request.
const candidateCap = 200

type RecommendationParams struct {
	Keywords       []string
	Location       string
	EmploymentType string
	IsRemote       *bool
	SalaryMin      int
	MinScore       int
	Limit          int
	Offset         int
}

type RecommendationItem struct {
	Job          job.Job            `json:"job"`
	Score        int                `json:"score"`
	Factors      map[string]float64 `json:"factors"`
	CalculatedAt time.Time          `json:"calculated_at"`
}

type RecommendationResult struct {
	Items        []RecommendationItem `json:"items"`
	KeywordsUsed []string             `json:"keywords_used"`
	TotalMatched int                  `json:"total_matched"`
}

type JobRecommendationUsecase interface {
	Recommend(ctx context.Context, params RecommendationParams) (RecommendationResult, error)
}

type JobRecommendation struct {
	jobs   repository.JobRepository
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

func NewJobRecommendationUsecase(jobs repository.JobRepository, cache Cache, ttl time.Duration, logger *log.Logger) *JobRecommendation {
	return &JobRecommendation{jobs: jobs, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

func (u *JobRecommendation) Recommend(ctx context.Context, params RecommendationParams) (RecommendationResult, error) {
	keywords := matching.NormalizeKeywords(params.Keywords)
	if len(keywords) == 0 {
		return RecommendationResult{}, ErrNoKeywords
	}
	params.Keywords = keywords

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	minScore := params.MinScore
	if minScore < 0 {
		minScore = 0
	}
	params.Limit = limit
	params.Offset = offset
	params.MinScore = minScore

	cacheKey := ""
	if u.cache != nil {
		cacheKey = RecommendationCacheKey(params)
		var cached RecommendationResult
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logf("[Recommendations] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logf("[Recommendations] Cache MISS: %s", cacheKey)
	}

	candidates, err := u.jobs.FindByKeywords(ctx, repository.KeywordFilter{
		Keywords:       keywords,
		Location:       params.Location,
		EmploymentType: params.EmploymentType,
		IsRemote:       params.IsRemote,
		SalaryMin:      params.SalaryMin,
		Limit:          candidateCap,
	})
	if err != nil {
		u.logf("[Recommendations] Job store query failed: %v", err)
		return RecommendationResult{}, ErrDependency
	}

	now := u.now()

	scored := make([]RecommendationItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Title == "" {
			continue
		}

		b := matching.Score(keywords, c, now)
		if b.Total < minScore {
			continue
		}

		// New factor values overwrite old ones of the same name; factors
		// from prior scoring calls that this call did not produce survive.
		factors := b.Factors()
		for k, v := range c.Recommendation.Factors {
			if _, ok := factors[k]; !ok {
				factors[k] = v
			}
		}

		rec := job.Recommendation{
			Score:          b.Total,
			LastCalculated: now,
			Factors:        factors,
		}
		if err := u.jobs.UpdateRecommendation(ctx, c.ID, rec); err != nil {
			u.logf("[Recommendations] Score write-back failed for %s: %v", c.ID, err)
		}
		c.Recommendation = rec

		scored = append(scored, RecommendationItem{
			Job:          c,
			Score:        b.Total,
			Factors:      b.Factors(),
			CalculatedAt: now,
		})
	}

	// Stable sort keeps the repository's posted_at ordering for ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	total := len(scored)
	if offset >= total {
		scored = nil
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		scored = scored[offset:end]
	}

	out := RecommendationResult{
		Items:        scored,
		KeywordsUsed: keywords,
		TotalMatched: total,
	}
	if out.Items == nil {
		out.Items = []RecommendationItem{}
	}

	if u.cache != nil && cacheKey != "" {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.ttl); err == nil {
			u.logf("[Recommendations] Cache SET: %s", cacheKey)
		}
	}

	return out, nil
}

func (u *JobRecommendation) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
