package analysis

import (
	"fmt"

	"channelscope/internal/models"
	"channelscope/shared/stats"
)

// Ratio and length cutoffs for the trait detectors below.
const (
	participatoryRatio = 0.1
	conciseTitleRunes  = 30
	detailedTitleRunes = 50
)

// extractFeatures names the observable traits a small cohort of videos
// has in common: comment-heavy audiences, title length habits and
// repeated publish slots.
func extractFeatures(videos []models.Video) []string {
	if len(videos) == 0 {
		return []string{}
	}

	features := []string{}

	ratios := make([]float64, 0, len(videos))
	for _, v := range videos {
		if v.Likes > 0 {
			ratios = append(ratios, float64(v.Comments)/float64(v.Likes))
		}
	}
	if len(ratios) > 0 && stats.Mean(ratios) > participatoryRatio {
		features = append(features, "participatory content that draws comment conversations")
	}

	lengths := make([]float64, len(videos))
	for i, v := range videos {
		lengths[i] = float64(len([]rune(v.Title)))
	}
	switch avg := stats.Mean(lengths); {
	case avg < conciseTitleRunes:
		features = append(features, "concise titles")
	case avg > detailedTitleRunes:
		features = append(features, "detailed, descriptive titles")
	}

	if hour, ok := repeatedValue(videos, func(v models.Video) int { return v.PublishedAt.Hour() }); ok {
		features = append(features, fmt.Sprintf("consistent publish time around %02d:00", hour))
	}
	if day, ok := repeatedValue(videos, func(v models.Video) int { return int(v.PublishedAt.Weekday()) }); ok {
		features = append(features, fmt.Sprintf("consistent publishing on %ss", weekdayName(day)))
	}

	return features
}

// repeatedValue reports a value shared by more than half the cohort.
func repeatedValue(videos []models.Video, extract func(models.Video) int) (int, bool) {
	counts := make(map[int]int)
	for _, v := range videos {
		counts[extract(v)]++
	}
	for value, count := range counts {
		if count*2 > len(videos) {
			return value, true
		}
	}
	return 0, false
}

func weekdayName(day int) string {
	if day >= 0 && day < len(weekdayNames) {
		return weekdayNames[day]
	}
	return "unknown day"
}
