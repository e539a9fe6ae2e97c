package analysis

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"channelscope/internal/models"
)

var (
	isoHoursRe   = regexp.MustCompile(`(\d+)H`)
	isoMinutesRe = regexp.MustCompile(`(\d+)M`)
	isoSecondsRe = regexp.MustCompile(`(\d+)S`)
)

// ParseISOMinutes converts a YouTube ISO-8601 duration such as
// "PT1H2M3S" into fractional minutes. Missing components count as
// zero, so malformed or empty input yields 0.
func ParseISOMinutes(iso string) float64 {
	var minutes float64
	if m := isoHoursRe.FindStringSubmatch(iso); m != nil {
		h, _ := strconv.Atoi(m[1])
		minutes += float64(h) * 60
	}
	if m := isoMinutesRe.FindStringSubmatch(iso); m != nil {
		mm, _ := strconv.Atoi(m[1])
		minutes += float64(mm)
	}
	if m := isoSecondsRe.FindStringSubmatch(iso); m != nil {
		s, _ := strconv.Atoi(m[1])
		minutes += float64(s) / 60
	}
	return minutes
}

// DurationBucket aggregates videos falling into one length range.
type DurationBucket struct {
	Label         string         `json:"label"`
	Count         int            `json:"count"`
	AvgViews      float64        `json:"avgViews"`
	AvgEngagement float64        `json:"avgEngagement"`
	Best          []models.Video `json:"best"`
}

// GenreRecommendation suggests a duration range for the channel's
// dominant content category.
type GenreRecommendation struct {
	MainGenreName  string `json:"mainGenreName"`
	Recommendation string `json:"recommendation"`
	GeneralRange   string `json:"generalRange"`
}

// GrowthOpportunity flags a duration range that outperforms the one
// the channel produces most.
type GrowthOpportunity struct {
	CurrentFocus      string `json:"currentFocus"`
	CurrentFocusCount int    `json:"currentFocusCount"`
	Recommendation    string `json:"recommendation"`
	ReasonViews       string `json:"reasonViews"`
	ReasonEngagement  string `json:"reasonEngagement"`
}

// DurationAnalysis is the video-length optimization result.
type DurationAnalysis struct {
	AvgMinutes           float64             `json:"avgMinutes"`
	Buckets              []DurationBucket    `json:"buckets"`
	OptimalForViews      string              `json:"optimalForViews"`
	OptimalForEngagement string              `json:"optimalForEngagement"`
	Genre                GenreRecommendation `json:"genreRecommendation"`
	Growth               *GrowthOpportunity  `json:"growthOpportunity,omitempty"`
}

type bucketRange struct {
	label string
	min   float64
	max   float64 // exclusive; math.Inf(1) for the open-ended last bucket
}

var bucketRanges = []bucketRange{
	{"0-3 min", 0, 3},
	{"3-5 min", 3, 5},
	{"5-10 min", 5, 10},
	{"10-15 min", 10, 15},
	{"15-20 min", 15, 20},
	{"20+ min", 20, math.Inf(1)},
}

// minBucketSample is the minimum bucket population before it can be
// named optimal.
const minBucketSample = 2

// maxBucketBest bounds the per-bucket representative video list.
const maxBucketBest = 5

func analyzeDurations(videos []models.Video, cfg Config) DurationAnalysis {
	var sum float64
	var timed int
	for _, v := range videos {
		if v.Minutes > 0 {
			sum += v.Minutes
			timed++
		}
	}
	var avgMinutes float64
	if timed > 0 {
		avgMinutes = sum / float64(timed)
	}

	buckets := bucketize(videos)

	return DurationAnalysis{
		AvgMinutes:           avgMinutes,
		Buckets:              buckets,
		OptimalForViews:      optimalBucket(buckets, func(b DurationBucket) float64 { return b.AvgViews }),
		OptimalForEngagement: optimalBucket(buckets, func(b DurationBucket) float64 { return b.AvgEngagement }),
		Genre:                recommendGenreDuration(videos, avgMinutes),
		Growth:               findGrowthOpportunity(buckets),
	}
}

func bucketize(videos []models.Video) []DurationBucket {
	type acc struct {
		count      int
		views      int64
		engagement float64
		best       []models.Video
	}
	accs := make([]acc, len(bucketRanges))

	for _, v := range videos {
		for i, r := range bucketRanges {
			if v.Minutes < r.min || v.Minutes >= r.max {
				continue
			}
			a := &accs[i]
			a.count++
			a.views += v.Views
			a.engagement += v.Engagement
			if len(a.best) < maxBucketBest {
				a.best = append(a.best, v)
			} else {
				// Replace the weakest representative when a stronger one shows up.
				weakest := 0
				for j := 1; j < len(a.best); j++ {
					if a.best[j].Views < a.best[weakest].Views {
						weakest = j
					}
				}
				if v.Views > a.best[weakest].Views {
					a.best[weakest] = v
				}
			}
			break
		}
	}

	buckets := make([]DurationBucket, len(bucketRanges))
	for i, r := range bucketRanges {
		a := accs[i]
		b := DurationBucket{Label: r.label, Count: a.count, Best: a.best}
		if a.count > 0 {
			b.AvgViews = float64(a.views) / float64(a.count)
			b.AvgEngagement = a.engagement / float64(a.count)
		}
		sort.SliceStable(b.Best, func(x, y int) bool {
			return b.Best[x].Views > b.Best[y].Views
		})
		buckets[i] = b
	}
	return buckets
}

func optimalBucket(buckets []DurationBucket, metric func(DurationBucket) float64) string {
	best := ""
	var bestVal float64
	for _, b := range buckets {
		if b.Count < minBucketSample {
			continue
		}
		if v := metric(b); best == "" || v > bestVal {
			best = b.Label
			bestVal = v
		}
	}
	return best
}

// generalGenreRanges are the broadly observed duration sweet spots per
// content category, independent of this channel's own data.
var generalGenreRanges = map[string]string{
	"review":     "8-15 min",
	"howto":      "5-12 min",
	"vlog":       "8-20 min",
	"ranking":    "8-15 min",
	"discussion": "10-25 min",
	"reaction":   "5-15 min",
	"other":      "5-15 min",
}

func recommendGenreDuration(videos []models.Video, avgMinutes float64) GenreRecommendation {
	counts := make(map[string]int)
	sums := make(map[string]float64)
	timed := make(map[string]int)
	for _, v := range videos {
		genre := Classify(v.Title, v.Tags)
		counts[genre]++
		if v.Minutes > 0 {
			sums[genre] += v.Minutes
			timed[genre]++
		}
	}

	main := "other"
	for _, rule := range categoryRules {
		if counts[rule.Name] > counts[main] {
			main = rule.Name
		}
	}

	genreMean := avgMinutes
	if timed[main] > 0 {
		genreMean = sums[main] / float64(timed[main])
	}

	low := math.Max(1, genreMean*0.8)
	high := genreMean * 1.2
	rec := fmt.Sprintf("Videos in your main genre perform around %.0f minutes; aim for %.0f-%.0f minutes.",
		genreMean, low, high)
	if genreMean == 0 {
		rec = "No duration data available yet for your main genre."
	}

	return GenreRecommendation{
		MainGenreName:  CategoryLabel(main),
		Recommendation: rec,
		GeneralRange:   generalGenreRanges[main],
	}
}

// minFocusCount is how many videos the dominant bucket needs before a
// shift away from it is worth recommending.
const minFocusCount = 3

// findGrowthOpportunity compares the most-produced duration range with
// the best-scoring one. Score blends views and engagement so a bucket
// cannot win on raw views while its audience is checked out.
func findGrowthOpportunity(buckets []DurationBucket) *GrowthOpportunity {
	mostProduced := -1
	bestScoring := -1
	var bestScore float64
	for i, b := range buckets {
		if b.Count == 0 {
			continue
		}
		if mostProduced == -1 || b.Count > buckets[mostProduced].Count {
			mostProduced = i
		}
		score := b.AvgViews * (1 + b.AvgEngagement/100)
		if bestScoring == -1 || score > bestScore {
			bestScoring = i
			bestScore = score
		}
	}

	if mostProduced == -1 || bestScoring == mostProduced {
		return nil
	}
	if buckets[mostProduced].Count < minFocusCount {
		return nil
	}

	focus := buckets[mostProduced]
	target := buckets[bestScoring]
	return &GrowthOpportunity{
		CurrentFocus:      focus.Label,
		CurrentFocusCount: focus.Count,
		Recommendation: fmt.Sprintf("Most of your uploads are %s, but %s videos score better; try producing more in that range.",
			focus.Label, target.Label),
		ReasonViews: fmt.Sprintf("%s averages %.0f views vs %.0f for %s.",
			target.Label, target.AvgViews, focus.AvgViews, focus.Label),
		ReasonEngagement: fmt.Sprintf("%s averages %.2f%% engagement vs %.2f%% for %s.",
			target.Label, target.AvgEngagement, focus.AvgEngagement, focus.Label),
	}
}
