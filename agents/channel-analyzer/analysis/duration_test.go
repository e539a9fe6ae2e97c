package analysis

import (
	"math"
	"testing"

	"channelscope/internal/models"
)

func TestParseISOMinutes(t *testing.T) {
	tests := []struct {
		name     string
		iso      string
		expected float64
	}{
		{"HoursMinutesSeconds", "PT1H2M3S", 62.05},
		{"SecondsOnly", "PT45S", 0.75},
		{"MinutesOnly", "PT10M", 10},
		{"Empty", "", 0},
		{"NoComponents", "PT", 0},
		{"Garbage", "not a duration", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseISOMinutes(tt.iso)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ParseISOMinutes(%q) = %v, want %v", tt.iso, got, tt.expected)
			}
		})
	}
}

func TestBucketizePlacement(t *testing.T) {
	videos := []models.Video{
		{Minutes: 2, Views: 100},
		{Minutes: 4, Views: 200},
		{Minutes: 4.5, Views: 400},
		{Minutes: 12, Views: 50},
	}

	buckets := bucketize(videos)
	if len(buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(buckets))
	}

	byLabel := make(map[string]DurationBucket)
	for _, b := range buckets {
		byLabel[b.Label] = b
	}

	if got := byLabel["3-5 min"]; got.Count != 2 || got.AvgViews != 300 {
		t.Errorf("3-5 min bucket = count %d avg %v, want count 2 avg 300", got.Count, got.AvgViews)
	}
	if got := byLabel["10-15 min"]; got.Count != 1 {
		t.Errorf("10-15 min bucket count = %d, want 1", got.Count)
	}
	if got := byLabel["20+ min"]; got.Count != 0 {
		t.Errorf("20+ min bucket count = %d, want 0", got.Count)
	}
}

func TestOptimalBucketNeedsTwoVideos(t *testing.T) {
	videos := []models.Video{
		{Minutes: 4, Views: 100},
		{Minutes: 4, Views: 200},
		{Minutes: 12, Views: 9999}, // single sample, never optimal
	}

	analysis := analyzeDurations(videos, DefaultConfig())
	if analysis.OptimalForViews != "3-5 min" {
		t.Errorf("OptimalForViews = %q, want %q", analysis.OptimalForViews, "3-5 min")
	}
}

func TestAvgMinutesExcludesUntimedVideos(t *testing.T) {
	videos := []models.Video{
		{Minutes: 10},
		{Minutes: 0},
		{Minutes: 20},
	}
	analysis := analyzeDurations(videos, DefaultConfig())
	if analysis.AvgMinutes != 15 {
		t.Errorf("AvgMinutes = %v, want 15", analysis.AvgMinutes)
	}
}

func TestGrowthOpportunityDetected(t *testing.T) {
	// Three short videos dominate production while a pair of longer
	// ones clearly outperforms them.
	videos := []models.Video{
		{Minutes: 2, Views: 100, Engagement: 1},
		{Minutes: 2, Views: 110, Engagement: 1},
		{Minutes: 2, Views: 120, Engagement: 1},
		{Minutes: 12, Views: 1000, Engagement: 5},
		{Minutes: 13, Views: 1200, Engagement: 5},
	}

	analysis := analyzeDurations(videos, DefaultConfig())
	if analysis.Growth == nil {
		t.Fatal("expected a growth opportunity, got nil")
	}
	if analysis.Growth.CurrentFocus != "0-3 min" {
		t.Errorf("CurrentFocus = %q, want %q", analysis.Growth.CurrentFocus, "0-3 min")
	}
	if analysis.Growth.CurrentFocusCount != 3 {
		t.Errorf("CurrentFocusCount = %d, want 3", analysis.Growth.CurrentFocusCount)
	}
}

func TestGrowthOpportunityAbsentWhenFocusWins(t *testing.T) {
	videos := []models.Video{
		{Minutes: 4, Views: 1000, Engagement: 5},
		{Minutes: 4, Views: 1100, Engagement: 5},
		{Minutes: 4, Views: 1200, Engagement: 5},
	}
	analysis := analyzeDurations(videos, DefaultConfig())
	if analysis.Growth != nil {
		t.Errorf("expected no growth opportunity, got %+v", analysis.Growth)
	}
}
