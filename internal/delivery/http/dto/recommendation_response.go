package dto

import (
	"time"

	"jobsync/internal/usecase"
)

type RecommendationData struct {
	Score        int                `json:"score"`
	Factors      map[string]float64 `json:"factors"`
	CalculatedAt time.Time          `json:"calculated_at"`
}

type RecommendedJobResponse struct {
	JobResponse
	Recommendation RecommendationData `json:"recommendation_data"`
}

type RecommendationListResponse struct {
	Jobs         []RecommendedJobResponse `json:"jobs"`
	KeywordsUsed []string                 `json:"keywords_used"`
	TotalMatched int                      `json:"total_matched"`
}

func NewRecommendationListResponse(res usecase.RecommendationResult) RecommendationListResponse {
	jobs := make([]RecommendedJobResponse, 0, len(res.Items))
	for _, it := range res.Items {
		jobs = append(jobs, RecommendedJobResponse{
			JobResponse: NewJobResponse(it.Job),
			Recommendation: RecommendationData{
				Score:        it.Score,
				Factors:      it.Factors,
				CalculatedAt: it.CalculatedAt,
			},
		})
	}
	return RecommendationListResponse{
		Jobs:         jobs,
		KeywordsUsed: res.KeywordsUsed,
		TotalMatched: res.TotalMatched,
	}
}
