package analysis

import (
	"math"
	"testing"
	"time"

	"channelscope/internal/models"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	base := time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC)
	videos := make([]models.Video, 5)
	for i := range videos {
		videos[i] = models.Video{
			ID:          string(rune('a' + i)),
			Title:       "ガジェット レビュー",
			PublishedAt: base.AddDate(0, 0, 7*i),
			Duration:    "PT10M",
			Views:       1000,
			Likes:       50,
			Comments:    10,
			Tags:        []string{"gadget"},
		}
	}
	channel := models.Channel{ID: "UC123", Title: "Test Channel"}

	report := Analyze(videos, channel, DefaultConfig())

	if report.Count != 5 {
		t.Errorf("Count = %d, want 5", report.Count)
	}
	if report.Channel.ID != "UC123" {
		t.Errorf("Channel.ID = %q, want UC123", report.Channel.ID)
	}
	if math.Abs(report.Stats.AvgEngagement-5.0) > 1e-9 {
		t.Errorf("AvgEngagement = %v, want 5.0", report.Stats.AvgEngagement)
	}
	if report.Stats.AvgViews != 1000 || report.Stats.MedianViews != 1000 {
		t.Errorf("view stats = %v/%v, want 1000/1000", report.Stats.AvgViews, report.Stats.MedianViews)
	}
	if len(report.Top) != 5 {
		t.Errorf("Top length = %d, want 5 (bounded by data)", len(report.Top))
	}
	if report.Frequency.Pattern != "weekly" {
		t.Errorf("Frequency.Pattern = %q, want weekly", report.Frequency.Pattern)
	}
	if len(report.Categories.TypePerformance) != 1 || report.Categories.TypePerformance[0].Name != "review" {
		t.Errorf("categories = %+v, want a single review entry", report.Categories.TypePerformance)
	}
	if len(report.Tags) != 1 || report.Tags[0].Tag != "gadget" {
		t.Errorf("tags = %+v, want the shared gadget tag", report.Tags)
	}
	if report.Top[0].Minutes != 10 {
		t.Errorf("Top video minutes = %v, want 10 (derived from PT10M)", report.Top[0].Minutes)
	}
	if report.Top[0].Engagement != 5 {
		t.Errorf("Top video engagement = %v, want 5", report.Top[0].Engagement)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	report := Analyze(nil, models.Channel{}, DefaultConfig())
	if report == nil {
		t.Fatal("expected a report for empty input")
	}
	if report.Count != 0 {
		t.Errorf("Count = %d, want 0", report.Count)
	}
	if len(report.Top) != 0 || len(report.Tags) != 0 {
		t.Errorf("expected empty result slices, got top=%v tags=%v", report.Top, report.Tags)
	}
	if report.Stats.AvgViews != 0 {
		t.Errorf("AvgViews = %v, want 0", report.Stats.AvgViews)
	}
	if report.Posting.BestDay != "" {
		t.Errorf("BestDay = %q, want empty", report.Posting.BestDay)
	}
}

func TestAnalyzeTopBoundedByTopResults(t *testing.T) {
	videos := make([]models.Video, 8)
	for i := range videos {
		videos[i] = models.Video{Views: int64(i * 100), PublishedAt: time.Now()}
	}
	report := Analyze(videos, models.Channel{}, Config{TopResults: 3})
	if len(report.Top) != 3 {
		t.Errorf("Top length = %d, want 3", len(report.Top))
	}
	if report.Top[0].Views != 700 {
		t.Errorf("Top[0].Views = %d, want 700", report.Top[0].Views)
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	videos := []models.Video{
		{Views: 10, Duration: "PT5M"},
		{Views: 20, Duration: "PT6M"},
	}
	Analyze(videos, models.Channel{}, DefaultConfig())
	if videos[0].Minutes != 0 || videos[0].Engagement != 0 {
		t.Errorf("input videos were mutated: %+v", videos[0])
	}
	if videos[0].Views != 10 || videos[1].Views != 20 {
		t.Error("input order or values changed")
	}
}

func TestAnalyzeTrend(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := make([]models.Video, 20)
	for i := range videos {
		views := int64(100)
		if i >= 10 {
			views = 200
		}
		videos[i] = models.Video{PublishedAt: base.AddDate(0, 0, i), Views: views}
	}

	trend := analyzeTrend(videos)
	if trend.OldAvg != 100 || trend.NewAvg != 200 {
		t.Errorf("trend averages = %v/%v, want 100/200", trend.OldAvg, trend.NewAvg)
	}
	if trend.Change != 100 {
		t.Errorf("Change = %v, want 100", trend.Change)
	}
}

func TestAnalyzeTrendTooFewVideos(t *testing.T) {
	videos := make([]models.Video, 9)
	trend := analyzeTrend(videos)
	if trend != (TrendAnalysis{}) {
		t.Errorf("expected zeroed trend for under 10 videos, got %+v", trend)
	}
}
