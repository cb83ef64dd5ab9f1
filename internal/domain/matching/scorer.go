// Package matching implements the keyword-to-job relevance scoring engine.
//
// Given a set of keywords (from an explicit query, parsed résumé skills, or
// desired positions) and a job posting, Score computes a 0-100 relevance
// score from five independently weighted, independently capped factors:
// title match (40), AI-extracted keyword match (30), required-skill match
// (20), description match (5), and a recency/popularity bonus (5). The final
// sum is rounded and clamped to 100.
package matching

import (
	"math"
	"strings"
	"time"

	"jobsync/internal/domain/job"
)

const (
	WeightTitle       = 40.0
	WeightAIKeywords  = 30.0
	WeightSkills      = 20.0
	WeightDescription = 5.0

	// Points per AI-keyword hit at relevance 1.0.
	aiPointsPerMatch = 5.0

	MaxScore = 100
)

// Factor names as persisted in recommendation_data.factors.
const (
	FactorTitleMatch       = "title_match"
	FactorAIKeywordMatch   = "ai_keyword_match"
	FactorSkillMatch       = "skill_match"
	FactorDescriptionMatch = "description_match"
	FactorRecencyBonus     = "recency_bonus"
	FactorPopularityBonus  = "popularity_bonus"
)

// Breakdown carries the per-factor sub-scores alongside the rounded total.
type Breakdown struct {
	TitleMatch       float64
	AIKeywordMatch   float64
	SkillMatch       float64
	DescriptionMatch float64
	RecencyBonus     float64
	PopularityBonus  float64

	Total int
}

// Factors returns the breakdown as the factor map stored on the job record.
func (b Breakdown) Factors() map[string]float64 {
	return map[string]float64{
		FactorTitleMatch:       b.TitleMatch,
		FactorAIKeywordMatch:   b.AIKeywordMatch,
		FactorSkillMatch:       b.SkillMatch,
		FactorDescriptionMatch: b.DescriptionMatch,
		FactorRecencyBonus:     b.RecencyBonus,
		FactorPopularityBonus:  b.PopularityBonus,
	}
}

// NormalizeKeywords trims, lowercases, and de-duplicates the input,
// dropping entries that are empty after trimming. Order of first
// occurrence is preserved.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Score computes the relevance score of j against keywords as of now.
// Keywords must be non-empty and normalized (NormalizeKeywords); an empty
// set is the caller's error and yields a zero Breakdown. Absent job fields
// (description, skills, AI keywords) contribute zero to their factors.
func Score(keywords []string, j job.Job, now time.Time) Breakdown {
	if len(keywords) == 0 {
		return Breakdown{}
	}

	title := strings.ToLower(j.Title)
	desc := strings.ToLower(j.Description)
	total := float64(len(keywords))

	var b Breakdown

	titleMatches := 0
	for _, k := range keywords {
		if strings.Contains(title, k) {
			titleMatches++
		}
	}
	b.TitleMatch = math.Min(float64(titleMatches)/total*WeightTitle, WeightTitle)

	aiByKeyword := make(map[string]float64, len(j.AIKeywords))
	for _, ai := range j.AIKeywords {
		aiByKeyword[strings.ToLower(strings.TrimSpace(ai.Keyword))] = ai.RelevanceScore
	}
	aiScore := 0.0
	for _, k := range keywords {
		if rel, ok := aiByKeyword[k]; ok {
			aiScore += rel * aiPointsPerMatch
		}
	}
	b.AIKeywordMatch = math.Min(aiScore, WeightAIKeywords)

	skillMatches := 0
	for _, k := range keywords {
		for _, skill := range j.RequiredSkills {
			if strings.Contains(strings.ToLower(skill), k) {
				skillMatches++
				break
			}
		}
	}
	b.SkillMatch = math.Min(float64(skillMatches)/total*WeightSkills, WeightSkills)

	descMatches := 0
	for _, k := range keywords {
		if desc != "" && strings.Contains(desc, k) {
			descMatches++
		}
	}
	b.DescriptionMatch = math.Min(float64(descMatches)/total*WeightDescription, WeightDescription)

	// Recency tiers are mutually exclusive, first match wins.
	switch days := j.DaysSincePosted(now); {
	case days <= 3:
		b.RecencyBonus = 3
	case days <= 7:
		b.RecencyBonus = 2
	case days <= 14:
		b.RecencyBonus = 1
	}

	// Popularity is capped low to avoid bias toward old popular jobs.
	switch views := j.Engagement.ViewCount; {
	case views > 100:
		b.PopularityBonus = 1
	case views > 50:
		b.PopularityBonus = 0.5
	}

	sum := b.TitleMatch + b.AIKeywordMatch + b.SkillMatch + b.DescriptionMatch +
		b.RecencyBonus + b.PopularityBonus
	b.Total = int(math.Round(math.Min(sum, MaxScore)))

	return b
}
