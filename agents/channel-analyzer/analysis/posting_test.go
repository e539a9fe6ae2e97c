package analysis

import (
	"strings"
	"testing"
	"time"

	"channelscope/internal/models"
)

// mondayAt returns a Monday publish time offset by whole weeks.
func mondayAt(week int, hour int) time.Time {
	base := time.Date(2025, 1, 6, hour, 0, 0, 0, time.UTC) // a Monday
	return base.AddDate(0, 0, 7*week)
}

func TestAnalyzeFrequencyWeeklyPattern(t *testing.T) {
	videos := make([]models.Video, 5)
	for i := range videos {
		videos[i] = models.Video{
			PublishedAt: mondayAt(i, 18),
			Views:       int64(100 * (i + 1)),
		}
	}

	freq := analyzeFrequency(videos)

	if freq.DaysBetweenPosts != 7.0 {
		t.Errorf("DaysBetweenPosts = %v, want 7.0", freq.DaysBetweenPosts)
	}
	if !freq.IsConsistent {
		t.Error("expected a perfectly regular schedule to be consistent")
	}
	if freq.Pattern != "weekly" {
		t.Errorf("Pattern = %q, want %q", freq.Pattern, "weekly")
	}
	if freq.DisciplineScore != 100 {
		t.Errorf("DisciplineScore = %d, want 100", freq.DisciplineScore)
	}
	if len(freq.PreferredDays) != 1 || freq.PreferredDays[0] != "Monday" {
		t.Errorf("PreferredDays = %v, want [Monday]", freq.PreferredDays)
	}
}

func TestAnalyzeFrequencyTooFewVideos(t *testing.T) {
	videos := []models.Video{
		{PublishedAt: mondayAt(0, 12)},
		{PublishedAt: mondayAt(1, 12)},
	}

	freq := analyzeFrequency(videos)
	if freq.Pattern != "unknown" {
		t.Errorf("Pattern = %q, want %q", freq.Pattern, "unknown")
	}
	if freq.DaysBetweenPosts != 0 || freq.DisciplineScore != 0 {
		t.Errorf("expected zeroed cadence stats, got %+v", freq)
	}
}

func TestCadencePattern(t *testing.T) {
	tests := []struct {
		name       string
		meanGap    float64
		consistent bool
		expected   string
	}{
		{"Daily", 1.0, true, "daily"},
		{"EveryFewDays", 3.0, true, "every 2-3 days"},
		{"Weekly", 7.0, true, "weekly"},
		{"Biweekly", 14.0, true, "biweekly"},
		{"Monthly", 28.0, true, "monthly"},
		{"Sparse", 45.0, true, "less than monthly"},
		{"Irregular", 7.0, false, "irregular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cadencePattern(tt.meanGap, tt.consistent); got != tt.expected {
				t.Errorf("cadencePattern(%v, %v) = %q, want %q", tt.meanGap, tt.consistent, got, tt.expected)
			}
		})
	}
}

func TestRecommendScheduleNamesTopDaysAndScore(t *testing.T) {
	// Saturdays clearly outperform Mondays, so the recommendation must
	// name the best days by average views and carry the score.
	videos := make([]models.Video, 0, 6)
	for week := 0; week < 3; week++ {
		monday := mondayAt(week, 12)
		videos = append(videos,
			models.Video{PublishedAt: monday, Views: 100},
			models.Video{PublishedAt: monday.AddDate(0, 0, 5), Views: 1000 + int64(100*week)},
		)
	}

	freq := analyzeFrequency(videos)
	rec := freq.Schedule.Recommendation

	if !strings.Contains(rec, "Saturday and Monday") {
		t.Errorf("recommendation does not rank the best days by views: %q", rec)
	}
	if freq.Schedule.Sustainability != 70 {
		t.Errorf("Sustainability = %d, want 70", freq.Schedule.Sustainability)
	}
	if !strings.Contains(rec, "(sustainability: 70/100)") {
		t.Errorf("recommendation does not embed the sustainability score: %q", rec)
	}
}

func TestJoinDayNames(t *testing.T) {
	tests := []struct {
		name     string
		days     []string
		expected string
	}{
		{"Empty", nil, ""},
		{"One", []string{"Friday"}, "Friday"},
		{"Two", []string{"Friday", "Sunday"}, "Friday and Sunday"},
		{"Three", []string{"Friday", "Sunday", "Monday"}, "Friday, Sunday and Monday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinDayNames(tt.days); got != tt.expected {
				t.Errorf("joinDayNames(%v) = %q, want %q", tt.days, got, tt.expected)
			}
		})
	}
}

func TestAnalyzePostingBestDay(t *testing.T) {
	monday := mondayAt(0, 10)
	tuesday := monday.AddDate(0, 0, 1)

	videos := []models.Video{
		{PublishedAt: monday, Views: 100},
		{PublishedAt: monday.AddDate(0, 0, 7), Views: 200},
		{PublishedAt: tuesday, Views: 1000},
	}

	posting := analyzePosting(videos)
	if posting.BestDay != "Tuesday" {
		t.Errorf("BestDay = %q, want Tuesday", posting.BestDay)
	}
	if posting.BestDayAvgViews != 1000 {
		t.Errorf("BestDayAvgViews = %v, want 1000", posting.BestDayAvgViews)
	}
	if got := posting.Days["Monday"]; got.Count != 2 || got.AvgViews != 150 {
		t.Errorf("Monday stats = %+v, want count 2 avg 150", got)
	}
	if len(posting.Days) != 7 {
		t.Errorf("expected all 7 weekdays present, got %d", len(posting.Days))
	}
}

func TestAnalyzePostingEmpty(t *testing.T) {
	posting := analyzePosting(nil)
	if posting.BestDay != "" {
		t.Errorf("BestDay = %q, want empty", posting.BestDay)
	}
	if len(posting.Days) != 7 {
		t.Errorf("expected all 7 weekdays present, got %d", len(posting.Days))
	}
}

func TestBestHoursRequireSample(t *testing.T) {
	videos := []models.Video{
		{PublishedAt: mondayAt(0, 18), Views: 100},
		{PublishedAt: mondayAt(1, 18), Views: 200},
		{PublishedAt: mondayAt(2, 18), Views: 300},
		{PublishedAt: mondayAt(3, 9), Views: 9999}, // single upload at 9:00
	}

	hours := bestHours(videos)
	if len(hours) != 1 {
		t.Fatalf("expected one qualifying hour, got %v", hours)
	}
	if hours[0].Hour != 18 || hours[0].Count != 3 || hours[0].AvgViews != 200 {
		t.Errorf("best hour = %+v, want hour 18 count 3 avg 200", hours[0])
	}
}
