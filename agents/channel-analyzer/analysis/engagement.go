package analysis

import (
	"fmt"
	"math"
	"sort"

	"channelscope/internal/models"
	"channelscope/shared/stats"
)

// TrendDelta describes how one metric moved between the older and the
// newer half of the upload history.
type TrendDelta struct {
	IsImproving      bool    `json:"isImproving"`
	ChangePercentage float64 `json:"changePercentage"`
	TrendDescription string  `json:"trendDescription"`
}

// EngagementComparison contrasts the channel growth that follows high
// engagement videos against the growth that follows low engagement
// ones.
type EngagementComparison struct {
	HighEngagementGrowth float64 `json:"highEngagementGrowth"`
	LowEngagementGrowth  float64 `json:"lowEngagementGrowth"`
	DifferencePercentage float64 `json:"differencePercentage"`
}

// EngagementGrowthAnalysis correlates per-video engagement with the
// view growth of the following upload.
type EngagementGrowthAnalysis struct {
	HasEnoughData          bool                 `json:"hasEnoughData"`
	CorrelationScore       float64              `json:"correlationScore"`
	IsStrongCorrelation    bool                 `json:"isStrongCorrelation"`
	Insight                string               `json:"insight"`
	EngagementTrend        TrendDelta           `json:"engagementTrend"`
	GrowthRateTrend        TrendDelta           `json:"growthRateTrend"`
	Comparison             EngagementComparison `json:"engagementComparisonData"`
	HighEngagementFeatures []string             `json:"highEngagementFeatures"`
	LowEngagementFeatures  []string             `json:"lowEngagementFeatures"`
	Recommendations        []string             `json:"recommendationsBasedOnCorrelation"`
}

// minGrowthVideos is the minimum history before any correlation claim.
const minGrowthVideos = 5

// strongCorrelation is the |r| cutoff for calling the engagement to
// growth relationship strong.
const strongCorrelation = 0.5

func analyzeEngagementGrowth(videos []models.Video) EngagementGrowthAnalysis {
	if len(videos) < minGrowthVideos {
		return EngagementGrowthAnalysis{
			Insight:                "Not enough upload history to relate engagement to growth yet.",
			HighEngagementFeatures: []string{},
			LowEngagementFeatures:  []string{},
			Recommendations:        []string{},
		}
	}

	byDate := sortedByDate(videos)

	engagement := make([]float64, len(byDate))
	growth := make([]float64, len(byDate))
	for i, v := range byDate {
		engagement[i] = v.Engagement
		if i == 0 {
			continue
		}
		prev := float64(byDate[i-1].Views)
		if prev != 0 {
			growth[i] = (float64(v.Views) - prev) / prev * 100
		}
	}

	// Lag by one: a video's engagement is paired with the growth of the
	// upload that follows it.
	r := stats.Pearson(engagement[:len(engagement)-1], growth[1:])

	mid := len(byDate) / 2
	engagementTrend := deltaBetweenHalves(engagement[:mid], engagement[mid:], "engagement")
	growthTrend := deltaBetweenHalves(growth[:mid], growth[mid:], "growth rate")

	comparison := compareCohorts(byDate, engagement, growth)
	high, low := cohortFeatures(byDate)

	return EngagementGrowthAnalysis{
		HasEnoughData:          true,
		CorrelationScore:       r,
		IsStrongCorrelation:    math.Abs(r) > strongCorrelation,
		Insight:                correlationInsight(r),
		EngagementTrend:        engagementTrend,
		GrowthRateTrend:        growthTrend,
		Comparison:             comparison,
		HighEngagementFeatures: high,
		LowEngagementFeatures:  low,
		Recommendations:        correlationRecommendations(r),
	}
}

func deltaBetweenHalves(older, newer []float64, metric string) TrendDelta {
	oldAvg := stats.Mean(older)
	newAvg := stats.Mean(newer)

	var change float64
	if oldAvg != 0 {
		change = (newAvg - oldAvg) / math.Abs(oldAvg) * 100
	}

	improving := newAvg > oldAvg
	abs := math.Abs(change)
	var desc string
	switch {
	case abs < 5:
		desc = fmt.Sprintf("Your %s has held steady recently.", metric)
	case abs < 20 && improving:
		desc = fmt.Sprintf("Your %s is improving mildly.", metric)
	case improving:
		desc = fmt.Sprintf("Your %s is improving strongly.", metric)
	case abs < 20:
		desc = fmt.Sprintf("Your %s is declining mildly.", metric)
	default:
		desc = fmt.Sprintf("Your %s is declining strongly.", metric)
	}

	return TrendDelta{
		IsImproving:      improving,
		ChangePercentage: change,
		TrendDescription: desc,
	}
}

// compareCohorts splits videos at mean engagement and averages the
// following-video growth for each cohort.
func compareCohorts(byDate []models.Video, engagement, growth []float64) EngagementComparison {
	meanEng := stats.Mean(engagement)

	var highGrowth, lowGrowth []float64
	for i := 0; i < len(byDate)-1; i++ {
		if engagement[i] >= meanEng {
			highGrowth = append(highGrowth, growth[i+1])
		} else {
			lowGrowth = append(lowGrowth, growth[i+1])
		}
	}

	high := stats.Mean(highGrowth)
	low := stats.Mean(lowGrowth)
	return EngagementComparison{
		HighEngagementGrowth: high,
		LowEngagementGrowth:  low,
		DifferencePercentage: high - low,
	}
}

// cohortFeatures extracts shared traits of the three most and three
// least engaging videos.
func cohortFeatures(videos []models.Video) (high, low []string) {
	byEngagement := make([]models.Video, len(videos))
	copy(byEngagement, videos)
	sort.SliceStable(byEngagement, func(i, j int) bool {
		return byEngagement[i].Engagement > byEngagement[j].Engagement
	})

	n := 3
	if n > len(byEngagement) {
		n = len(byEngagement)
	}
	return extractFeatures(byEngagement[:n]), extractFeatures(byEngagement[len(byEngagement)-n:])
}

func correlationInsight(r float64) string {
	switch {
	case r > strongCorrelation:
		return "Videos with strong audience engagement are reliably followed by view growth on the next upload. Engagement is driving your channel's momentum."
	case r < -strongCorrelation:
		return "Unusually, your highest-engagement videos precede slower growth. Your core fans may engage most with content that reaches fewer new viewers."
	default:
		return "Engagement and next-video growth show no strong relationship on this channel; growth is likely driven more by topic and discovery than by engagement."
	}
}

func correlationRecommendations(r float64) []string {
	switch {
	case r > 0.3:
		return []string{
			"Prompt comments with a direct question in the video and description.",
			"Reply to early comments; threads formed in the first hours compound reach.",
			"Study your most-engaged videos and carry their format forward.",
		}
	case r < -0.3:
		return []string{
			"Balance fan-focused videos with broader, search-friendly topics.",
			"Check whether highly engaged videos are niche; pair them with accessible follow-ups.",
			"Track which uploads bring in new subscribers, not just comments.",
		}
	default:
		return []string{
			"Focus on topic selection and titles; they move the needle more than engagement here.",
			"Keep engagement habits (questions, replies) as groundwork for when the channel grows.",
			"Revisit this correlation after another batch of uploads.",
		}
	}
}
