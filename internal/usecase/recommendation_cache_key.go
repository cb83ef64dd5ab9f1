package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type recommendationCacheKeyInput struct {
	Keywords       []string `json:"keywords"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	IsRemote       *bool    `json:"is_remote"`
	SalaryMin      int      `json:"salary_min"`
	MinScore       int      `json:"min_score"`
	Limit          int      `json:"limit"`
	Offset         int      `json:"offset"`
}

func normalizeCacheValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// RecommendationCacheKey is derived from the normalized keyword set and
// filters only, never from the requesting user, so two seekers asking for
// the same thing share an entry.
func RecommendationCacheKey(params RecommendationParams) string {
	in := recommendationCacheKeyInput{
		Keywords:       params.Keywords,
		Location:       normalizeCacheValue(params.Location),
		EmploymentType: normalizeCacheValue(params.EmploymentType),
		IsRemote:       params.IsRemote,
		SalaryMin:      params.SalaryMin,
		MinScore:       params.MinScore,
		Limit:          params.Limit,
		Offset:         params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	h := hex.EncodeToString(sum[:])
	return "jobs:rec:" + h
}

func JobListCacheKey(params JobListParams) string {
	in := struct {
		Location       string `json:"location"`
		EmploymentType string `json:"employment_type"`
		IsRemote       *bool  `json:"is_remote"`
		SalaryMin      int    `json:"salary_min"`
		Search         string `json:"search"`
		SortBy         string `json:"sort_by"`
		SortDesc       bool   `json:"sort_desc"`
		Limit          int    `json:"limit"`
		Offset         int    `json:"offset"`
	}{
		Location:       normalizeCacheValue(params.Location),
		EmploymentType: normalizeCacheValue(params.EmploymentType),
		IsRemote:       params.IsRemote,
		SalaryMin:      params.SalaryMin,
		Search:         normalizeCacheValue(params.Search),
		SortBy:         normalizeCacheValue(params.SortBy),
		SortDesc:       params.SortDesc,
		Limit:          params.Limit,
		Offset:         params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	h := hex.EncodeToString(sum[:])
	return "jobs:list:" + h
}

func CacheLockKey(cacheKey string) string {
	cacheKey = strings.TrimSpace(cacheKey)
	if i := strings.LastIndex(cacheKey, ":"); i >= 0 {
		return "jobs:lock:" + cacheKey[i+1:]
	}
	return "jobs:lock:" + cacheKey
}
