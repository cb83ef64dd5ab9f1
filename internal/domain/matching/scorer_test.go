package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsync/internal/domain/job"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func postedDaysAgo(days int) time.Time {
	// Back off an hour so ceil lands exactly on the requested day count.
	return now.Add(-time.Duration(days-1)*24*time.Hour - time.Hour)
}

func TestNormalizeKeywords(t *testing.T) {
	got := NormalizeKeywords([]string{" React ", "react", "", "  ", "Go", "SQL", "go"})
	assert.Equal(t, []string{"react", "go", "sql"}, got)
}

func TestScore_EmptyKeywords(t *testing.T) {
	b := Score(nil, job.Job{Title: "Engineer"}, now)
	assert.Equal(t, 0, b.Total)
}

func TestScore_PerfectMatchClampsAt100(t *testing.T) {
	// Title 40 + AI 4 + skills 20 + description 5 + recency 3 + popularity 1
	// sums to 103 raw; the final score is clamped to 100.
	j := job.Job{
		Title:          "Senior React Developer",
		Description:    "We are looking for a react specialist",
		RequiredSkills: []string{"React", "CSS"},
		AIKeywords:     []job.AIKeyword{{Keyword: "react", RelevanceScore: 0.8}},
		PostedAt:       postedDaysAgo(2),
		Engagement:     job.Engagement{ViewCount: 150},
	}

	b := Score([]string{"react"}, j, now)

	assert.InDelta(t, 40.0, b.TitleMatch, 1e-9)
	assert.InDelta(t, 4.0, b.AIKeywordMatch, 1e-9)
	assert.InDelta(t, 20.0, b.SkillMatch, 1e-9)
	assert.InDelta(t, 5.0, b.DescriptionMatch, 1e-9)
	assert.InDelta(t, 3.0, b.RecencyBonus, 1e-9)
	assert.InDelta(t, 1.0, b.PopularityBonus, 1e-9)
	assert.Equal(t, 100, b.Total, "raw 103 must clamp to 100")
}

func TestScore_ZeroWhenNothingMatches(t *testing.T) {
	j := job.Job{
		Title:          "Plumber",
		Description:    "fix pipes",
		RequiredSkills: []string{"Wrench"},
		AIKeywords:     []job.AIKeyword{{Keyword: "plumbing", RelevanceScore: 0.9}},
		PostedAt:       postedDaysAgo(20),
		Engagement:     job.Engagement{ViewCount: 10},
	}
	b := Score([]string{"react", "golang"}, j, now)
	assert.Equal(t, 0, b.Total)
}

func TestScore_TitleMatchMonotonic(t *testing.T) {
	keywords := []string{"go", "sql", "docker", "kafka"}
	titles := []string{
		"Barista",
		"Go Engineer",
		"Go Engineer (SQL)",
		"Go Engineer (SQL, Docker)",
		"Go Engineer (SQL, Docker, Kafka)",
	}
	prev := -1.0
	for _, title := range titles {
		b := Score(keywords, job.Job{Title: title, PostedAt: postedDaysAgo(30)}, now)
		require.GreaterOrEqual(t, b.TitleMatch, prev, "title %q", title)
		prev = b.TitleMatch
	}
}

func TestScore_TitleFactorCappedAtWeight(t *testing.T) {
	// Single keyword fully matched: ratio is 1.0, factor is exactly 40.
	b := Score([]string{"go"}, job.Job{Title: "go go go", PostedAt: postedDaysAgo(30)}, now)
	assert.InDelta(t, WeightTitle, b.TitleMatch, 1e-9)
}

func TestScore_AIKeywordExactMatchOnly(t *testing.T) {
	j := job.Job{
		Title:    "Engineer",
		PostedAt: postedDaysAgo(30),
		AIKeywords: []job.AIKeyword{
			{Keyword: "reactjs", RelevanceScore: 1.0},
			{Keyword: "React", RelevanceScore: 0.6},
		},
	}
	// "react" must not match "reactjs" in the AI factor, only the exact
	// (case-insensitive) "React" entry.
	b := Score([]string{"react"}, j, now)
	assert.InDelta(t, 3.0, b.AIKeywordMatch, 1e-9)
}

func TestScore_AIKeywordCapAt30(t *testing.T) {
	kws := make([]string, 0, 10)
	ai := make([]job.AIKeyword, 0, 10)
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for _, n := range names {
		kws = append(kws, n)
		ai = append(ai, job.AIKeyword{Keyword: n, RelevanceScore: 1.0})
	}
	b := Score(kws, job.Job{Title: "x", PostedAt: postedDaysAgo(30), AIKeywords: ai}, now)
	// 10 matches at 5 points each would be 50; the factor caps at 30.
	assert.InDelta(t, WeightAIKeywords, b.AIKeywordMatch, 1e-9)
}

func TestScore_SkillSubstringMatch(t *testing.T) {
	j := job.Job{
		Title:          "Engineer",
		PostedAt:       postedDaysAgo(30),
		RequiredSkills: []string{"React Native", "PostgreSQL"},
	}
	b := Score([]string{"react", "sql"}, j, now)
	// Both keywords are substrings of some required skill: full 20.
	assert.InDelta(t, WeightSkills, b.SkillMatch, 1e-9)
}

func TestScore_RecencyBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want float64
	}{
		{3, 3}, {4, 2}, {7, 2}, {8, 1}, {14, 1}, {15, 0},
	}
	for _, tc := range cases {
		j := job.Job{Title: "x", PostedAt: postedDaysAgo(tc.days)}
		b := Score([]string{"zzz"}, j, now)
		assert.InDelta(t, tc.want, b.RecencyBonus, 1e-9, "days=%d", tc.days)
	}
}

func TestScore_PopularityBoundaries(t *testing.T) {
	cases := []struct {
		views int
		want  float64
	}{
		{0, 0}, {50, 0}, {51, 0.5}, {100, 0.5}, {101, 1},
	}
	for _, tc := range cases {
		j := job.Job{
			Title:      "x",
			PostedAt:   postedDaysAgo(30),
			Engagement: job.Engagement{ViewCount: tc.views},
		}
		b := Score([]string{"zzz"}, j, now)
		assert.InDelta(t, tc.want, b.PopularityBonus, 1e-9, "views=%d", tc.views)
	}
}

func TestScore_StaleMatchBeatsFreshNonMatch(t *testing.T) {
	match := job.Job{
		Title:      "React Developer",
		PostedAt:   postedDaysAgo(20),
		Engagement: job.Engagement{ViewCount: 10},
	}
	fresh := job.Job{
		Title:      "Plumber",
		PostedAt:   postedDaysAgo(1),
		Engagement: job.Engagement{ViewCount: 200},
	}

	bMatch := Score([]string{"react"}, match, now)
	bFresh := Score([]string{"react"}, fresh, now)

	assert.Equal(t, 40, bMatch.Total)
	assert.Equal(t, 4, bFresh.Total)
	assert.Greater(t, bMatch.Total, bFresh.Total)
}

func TestScore_AlwaysInRange(t *testing.T) {
	jobs := []job.Job{
		{Title: "go developer", Description: "go go go", RequiredSkills: []string{"go"},
			AIKeywords: []job.AIKeyword{{Keyword: "go", RelevanceScore: 1}},
			PostedAt:   postedDaysAgo(1), Engagement: job.Engagement{ViewCount: 500}},
		{Title: "x"},
		{Title: "partial go", PostedAt: postedDaysAgo(10)},
	}
	keywordSets := [][]string{{"go"}, {"go", "sql"}, {"nothing", "matches", "here"}}
	for _, j := range jobs {
		for _, kws := range keywordSets {
			b := Score(kws, j, now)
			assert.GreaterOrEqual(t, b.Total, 0)
			assert.LessOrEqual(t, b.Total, MaxScore)
		}
	}
}

func TestBreakdown_Factors(t *testing.T) {
	b := Breakdown{TitleMatch: 40, AIKeywordMatch: 4, SkillMatch: 20, DescriptionMatch: 5, RecencyBonus: 3, PopularityBonus: 1}
	f := b.Factors()
	assert.InDelta(t, 40.0, f[FactorTitleMatch], 1e-9)
	assert.InDelta(t, 4.0, f[FactorAIKeywordMatch], 1e-9)
	assert.InDelta(t, 1.0, f[FactorPopularityBonus], 1e-9)
	assert.Len(t, f, 6)
}
