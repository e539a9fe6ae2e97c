// Package analysis turns a channel's fetched video metadata into a
// multi-faceted statistical report: tag performance, title and keyword
// mining, posting cadence, duration optimization, content category
// classification and engagement/growth correlation.
//
// Every analyzer in the package is a pure, synchronous function over
// the immutable video and channel input. Insufficient data never
// produces an error; it degrades to explicit zero/empty/"unknown"
// result shapes so callers never special-case this layer.
package analysis

import (
	"sort"

	"channelscope/internal/models"
	"channelscope/shared/stats"
)

// SummaryStats are the channel-wide aggregates the per-component
// analyzers compare against.
type SummaryStats struct {
	AvgViews      float64 `json:"avgViews"`
	MedianViews   float64 `json:"medianViews"`
	ViewsStdDev   float64 `json:"viewsStdDev"`
	AvgLikes      float64 `json:"avgLikes"`
	AvgComments   float64 `json:"avgComments"`
	AvgEngagement float64 `json:"avgEngagement"`
}

// TrendAnalysis compares the oldest ten uploads against the newest ten.
// All zeros when fewer than ten videos are available.
type TrendAnalysis struct {
	OldAvg float64 `json:"oldAvg"`
	NewAvg float64 `json:"newAvg"`
	Change float64 `json:"change"` // percent
}

// Report is the aggregate analysis output. Built once by Analyze and
// persisted verbatim as the analysis artifact.
type Report struct {
	Channel          models.Channel           `json:"channel"`
	Count            int                      `json:"count"`
	Stats            SummaryStats             `json:"stats"`
	Top              []models.Video           `json:"top"`
	TopEngagement    []models.Video           `json:"topEngagement"`
	Tags             []TagStat                `json:"tags"`
	Titles           TitleAnalysis            `json:"titles"`
	Posting          PostingAnalysis          `json:"posting"`
	Frequency        FrequencyAnalysis        `json:"frequency"`
	Duration         DurationAnalysis         `json:"duration"`
	Trend            TrendAnalysis            `json:"trend"`
	Categories       CategoryAnalysis         `json:"categories"`
	EngagementGrowth EngagementGrowthAnalysis `json:"engagementGrowth"`
}

// Analyze runs every analyzer over the video set and assembles the
// aggregate report. It is total: any video list, including an empty
// one, yields a well-formed report.
func Analyze(videos []models.Video, channel models.Channel, cfg Config) *Report {
	cfg = cfg.withDefaults()

	enhanced := enhance(videos)

	byViews := make([]models.Video, len(enhanced))
	copy(byViews, enhanced)
	sort.SliceStable(byViews, func(i, j int) bool {
		return byViews[i].Views > byViews[j].Views
	})
	top := firstN(byViews, cfg.TopResults)
	bottom := lastN(byViews, cfg.TopResults)

	byEngagement := make([]models.Video, len(enhanced))
	copy(byEngagement, enhanced)
	sort.SliceStable(byEngagement, func(i, j int) bool {
		return byEngagement[i].Engagement > byEngagement[j].Engagement
	})
	topEngagement := firstN(byEngagement, cfg.TopResults)

	summary := summarize(enhanced)

	return &Report{
		Channel:          channel,
		Count:            len(videos),
		Stats:            summary,
		Top:              top,
		TopEngagement:    topEngagement,
		Tags:             analyzeTags(videos),
		Titles:           analyzeTitles(enhanced, top, bottom, cfg),
		Posting:          analyzePosting(enhanced),
		Frequency:        analyzeFrequency(enhanced),
		Duration:         analyzeDurations(enhanced, cfg),
		Trend:            analyzeTrend(enhanced),
		Categories:       analyzeCategories(enhanced, summary, cfg),
		EngagementGrowth: analyzeEngagementGrowth(enhanced),
	}
}

// enhance returns augmented copies of the videos with the derived
// minutes and engagement-rate fields filled in. The input is never
// mutated.
func enhance(videos []models.Video) []models.Video {
	out := make([]models.Video, len(videos))
	for i, v := range videos {
		v.Minutes = ParseISOMinutes(v.Duration)
		v.Engagement = v.EngagementRate()
		out[i] = v
	}
	return out
}

func summarize(videos []models.Video) SummaryStats {
	views := make([]float64, len(videos))
	likes := make([]float64, len(videos))
	comments := make([]float64, len(videos))
	engagement := make([]float64, len(videos))
	for i, v := range videos {
		views[i] = float64(v.Views)
		likes[i] = float64(v.Likes)
		comments[i] = float64(v.Comments)
		engagement[i] = v.Engagement
	}

	return SummaryStats{
		AvgViews:      stats.Mean(views),
		MedianViews:   stats.Median(views),
		ViewsStdDev:   stats.StdDev(views),
		AvgLikes:      stats.Mean(likes),
		AvgComments:   stats.Mean(comments),
		AvgEngagement: stats.Mean(engagement),
	}
}

// trendWindow is how many videos each end of the chronological
// sequence contributes to the old/new comparison.
const trendWindow = 10

func analyzeTrend(videos []models.Video) TrendAnalysis {
	if len(videos) < trendWindow {
		return TrendAnalysis{}
	}

	byDate := sortedByDate(videos)

	oldViews := make([]float64, 0, trendWindow)
	newViews := make([]float64, 0, trendWindow)
	for _, v := range byDate[:trendWindow] {
		oldViews = append(oldViews, float64(v.Views))
	}
	for _, v := range byDate[len(byDate)-trendWindow:] {
		newViews = append(newViews, float64(v.Views))
	}

	oldAvg := stats.Mean(oldViews)
	newAvg := stats.Mean(newViews)

	var change float64
	if oldAvg != 0 {
		change = (newAvg - oldAvg) / oldAvg * 100
	}
	return TrendAnalysis{OldAvg: oldAvg, NewAvg: newAvg, Change: change}
}

func sortedByDate(videos []models.Video) []models.Video {
	byDate := make([]models.Video, len(videos))
	copy(byDate, videos)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].PublishedAt.Before(byDate[j].PublishedAt)
	})
	return byDate
}

func firstN(videos []models.Video, n int) []models.Video {
	if n > len(videos) {
		n = len(videos)
	}
	out := make([]models.Video, n)
	copy(out, videos[:n])
	return out
}

func lastN(videos []models.Video, n int) []models.Video {
	if n > len(videos) {
		n = len(videos)
	}
	out := make([]models.Video, n)
	copy(out, videos[len(videos)-n:])
	return out
}
