package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"channelscope/internal/models"
	"channelscope/shared/stats"
)

// DayStats aggregates upload performance for one weekday.
type DayStats struct {
	Count         int     `json:"count"`
	Views         int64   `json:"views"`
	Engagement    float64 `json:"engagement"`
	AvgViews      float64 `json:"avgViews"`
	AvgEngagement float64 `json:"avgEngagement"`
}

// PostingAnalysis maps weekday names to their upload stats and names
// the day with the highest average views.
type PostingAnalysis struct {
	Days            map[string]DayStats `json:"days"`
	BestDay         string              `json:"bestDay"`
	BestDayAvgViews float64             `json:"bestDayAvgViews"`
}

// HourStats is view performance for uploads published in one hour slot.
type HourStats struct {
	Hour     int     `json:"hour"`
	Count    int     `json:"count"`
	AvgViews float64 `json:"avgViews"`
}

// ScheduleRecommendation is the cadence optimizer output.
type ScheduleRecommendation struct {
	Recommendation string `json:"recommendation"`
	Sustainability int    `json:"sustainability"`
}

// FrequencyAnalysis describes the channel's upload cadence.
type FrequencyAnalysis struct {
	DaysBetweenPosts float64                `json:"daysBetweenPosts"`
	IsConsistent     bool                   `json:"isConsistent"`
	Pattern          string                 `json:"pattern"`
	PostsPerMonth    float64                `json:"postsPerMonth"`
	PreferredDays    []string               `json:"preferredDays"`
	DisciplineScore  int                    `json:"disciplineScore"`
	BestHours        []HourStats            `json:"bestHours"`
	Schedule         ScheduleRecommendation `json:"schedule"`
}

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func analyzePosting(videos []models.Video) PostingAnalysis {
	days := make(map[string]DayStats, len(weekdayNames))
	for _, name := range weekdayNames {
		days[name] = DayStats{}
	}

	for _, v := range videos {
		name := v.PublishedAt.Weekday().String()
		d := days[name]
		d.Count++
		d.Views += v.Views
		d.Engagement += v.Engagement
		days[name] = d
	}

	var bestDay string
	var bestAvg float64
	for _, name := range weekdayNames {
		d := days[name]
		if d.Count > 0 {
			d.AvgViews = float64(d.Views) / float64(d.Count)
			d.AvgEngagement = d.Engagement / float64(d.Count)
			days[name] = d
		}
		if d.Count > 0 && (bestDay == "" || d.AvgViews > bestAvg) {
			bestDay = name
			bestAvg = d.AvgViews
		}
	}

	return PostingAnalysis{Days: days, BestDay: bestDay, BestDayAvgViews: bestAvg}
}

// minFrequencyVideos is the minimum sample for cadence analysis; below
// it the gaps between uploads are just noise.
const minFrequencyVideos = 3

func analyzeFrequency(videos []models.Video) FrequencyAnalysis {
	if len(videos) < minFrequencyVideos {
		return FrequencyAnalysis{
			Pattern: "unknown",
			Schedule: ScheduleRecommendation{
				Recommendation: "Not enough uploads yet to recommend a schedule. Keep publishing and check back.",
			},
		}
	}

	byDate := sortedByDate(videos)

	gaps := make([]float64, 0, len(byDate)-1)
	for i := 1; i < len(byDate); i++ {
		diff := byDate[i].PublishedAt.Sub(byDate[i-1].PublishedAt)
		gaps = append(gaps, math.Ceil(diff.Hours()/24))
	}

	meanGap := stats.Mean(gaps)
	gapStdDev := stats.StdDev(gaps)
	consistent := gapStdDev < 0.5*meanGap

	discipline := 0
	if meanGap != 0 {
		raw := 100 - 100*gapStdDev/meanGap
		discipline = int(math.Round(math.Max(0, math.Min(100, raw))))
	}

	postsPerMonth := 30 / math.Max(1, meanGap)

	analysis := FrequencyAnalysis{
		DaysBetweenPosts: math.Round(meanGap*10) / 10,
		IsConsistent:     consistent,
		Pattern:          cadencePattern(meanGap, consistent),
		PostsPerMonth:    math.Round(postsPerMonth*10) / 10,
		PreferredDays:    preferredDays(videos),
		DisciplineScore:  discipline,
		BestHours:        bestHours(videos),
	}
	analysis.Schedule = recommendSchedule(videos, analysis, meanGap)
	return analysis
}

func cadencePattern(meanGap float64, consistent bool) string {
	if !consistent {
		return "irregular"
	}
	switch {
	case meanGap <= 1.5:
		return "daily"
	case meanGap <= 3.5:
		return "every 2-3 days"
	case meanGap <= 7.5:
		return "weekly"
	case meanGap <= 14.5:
		return "biweekly"
	case meanGap <= 31:
		return "monthly"
	default:
		return "less than monthly"
	}
}

// preferredDays returns up to three weekday names ranked by upload
// count, skipping days with no uploads.
func preferredDays(videos []models.Video) []string {
	counts := make(map[string]int)
	for _, v := range videos {
		counts[v.PublishedAt.Weekday().String()]++
	}

	ranked := make([]string, 0, len(counts))
	for _, name := range weekdayNames {
		if counts[name] > 0 {
			ranked = append(ranked, name)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

// minHourSample is the minimum uploads in one hour slot before the
// slot's average is trustworthy enough to rank.
const minHourSample = 3

func bestHours(videos []models.Video) []HourStats {
	counts := make(map[int]int)
	views := make(map[int]int64)
	for _, v := range videos {
		h := v.PublishedAt.Hour()
		counts[h]++
		views[h] += v.Views
	}

	ranked := make([]HourStats, 0, len(counts))
	for h := 0; h < 24; h++ {
		if counts[h] < minHourSample {
			continue
		}
		ranked = append(ranked, HourStats{
			Hour:     h,
			Count:    counts[h],
			AvgViews: float64(views[h]) / float64(counts[h]),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgViews > ranked[j].AvgViews
	})

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

// recommendSchedule turns the observed cadence into an actionable
// posting plan with a sustainability score: how likely the creator is
// to actually keep the recommended pace, judged from their history.
func recommendSchedule(videos []models.Video, freq FrequencyAnalysis, meanGap float64) ScheduleRecommendation {
	posting := analyzePosting(videos)
	rankedDays := daysRankedByAvgViews(posting)

	if len(videos) < 5 || len(rankedDays) < 2 {
		return ScheduleRecommendation{
			Recommendation: "Not enough uploads yet to recommend a schedule. Keep publishing and check back.",
		}
	}

	var plan string
	var sustainability int
	switch {
	case meanGap <= 3.5 && freq.DisciplineScore >= 70:
		plan = fmt.Sprintf("Your current pace of a video every %.1f days is working. Keep it.", meanGap)
		sustainability = 90
	case meanGap <= 3.5:
		plan = "Aim for 3-4 posts per week on fixed days rather than bursts."
		sustainability = 75
	case meanGap <= 9 && freq.DisciplineScore >= 70:
		plan = fmt.Sprintf("Your roughly weekly rhythm (every %.1f days) is steady. Keep it.", meanGap)
		sustainability = 85
	case meanGap <= 9:
		plan = "Settle on one fixed upload day per week; a reliable weekly slot beats sporadic extras."
		sustainability = 70
	default:
		target := math.Max(5, meanGap*0.8)
		switch {
		case target <= 9:
			plan = "Tighten the gap toward a weekly upload; your audience loses the habit at the current pace."
		case target <= 16:
			plan = "Work toward a biweekly schedule as a sustainable next step."
		default:
			plan = "Commit to at least one upload per month on a fixed date before increasing further."
		}
		sustainability = 60
	}

	topDays := rankedDays
	if len(topDays) > 3 {
		topDays = topDays[:3]
	}

	notes := []string{
		fmt.Sprintf("Your strongest upload days by average views are %s.", joinDayNames(topDays)),
	}
	if len(freq.BestHours) > 0 {
		notes = append(notes, fmt.Sprintf("Publishing around %02d:00 has drawn your best views.", freq.BestHours[0].Hour))
	}
	if mismatch := dayMismatch(videos, rankedDays); mismatch != "" {
		notes = append(notes, mismatch)
	}
	if !freq.IsConsistent {
		notes = append(notes, "Upload gaps vary a lot; a predictable rhythm usually lifts returning viewership.")
	}

	rec := plan + " " + strings.Join(notes, " ")
	rec += fmt.Sprintf(" (sustainability: %d/100)", sustainability)
	return ScheduleRecommendation{Recommendation: rec, Sustainability: sustainability}
}

// joinDayNames renders a short weekday list as prose.
func joinDayNames(days []string) string {
	switch len(days) {
	case 0:
		return ""
	case 1:
		return days[0]
	case 2:
		return days[0] + " and " + days[1]
	default:
		return strings.Join(days[:len(days)-1], ", ") + " and " + days[len(days)-1]
	}
}

func daysRankedByAvgViews(posting PostingAnalysis) []string {
	ranked := make([]string, 0, len(weekdayNames))
	for _, name := range weekdayNames {
		if posting.Days[name].Count > 0 {
			ranked = append(ranked, name)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return posting.Days[ranked[i]].AvgViews > posting.Days[ranked[j]].AvgViews
	})
	return ranked
}

// dayMismatch reports when the two most-posted days and the two
// best-viewed days do not overlap at all.
func dayMismatch(videos []models.Video, rankedByViews []string) string {
	counts := make(map[string]int)
	for _, v := range videos {
		counts[v.PublishedAt.Weekday().String()]++
	}
	mostPosted := make([]string, 0, len(counts))
	for _, name := range weekdayNames {
		if counts[name] > 0 {
			mostPosted = append(mostPosted, name)
		}
	}
	sort.SliceStable(mostPosted, func(i, j int) bool {
		return counts[mostPosted[i]] > counts[mostPosted[j]]
	})

	if len(mostPosted) < 2 || len(rankedByViews) < 2 {
		return ""
	}
	postedSet := map[string]bool{mostPosted[0]: true, mostPosted[1]: true}
	if postedSet[rankedByViews[0]] || postedSet[rankedByViews[1]] {
		return ""
	}
	return fmt.Sprintf("You mostly post on %s and %s, but %s and %s draw more views; try shifting uploads there.",
		mostPosted[0], mostPosted[1], rankedByViews[0], rankedByViews[1])
}
