package analysis

import (
	"testing"

	"channelscope/internal/models"
)

func TestDetectTitlePatterns(t *testing.T) {
	cohort := []models.Video{
		{Title: "5 tips for better sleep?"},
		{Title: "【保存版】How to focus: a guide"},
		{Title: "my morning routine"},
		{Title: "10 things I wish I knew"},
	}

	p := detectTitlePatterns(cohort)
	if p.NumberInBeginning != 50 {
		t.Errorf("NumberInBeginning = %d, want 50", p.NumberInBeginning)
	}
	if p.QuestionUsage != 25 {
		t.Errorf("QuestionUsage = %d, want 25", p.QuestionUsage)
	}
	if p.BracketUsage != 25 {
		t.Errorf("BracketUsage = %d, want 25", p.BracketUsage)
	}
	if p.ColonUsage != 25 {
		t.Errorf("ColonUsage = %d, want 25", p.ColonUsage)
	}
	if p.TypicalLength == 0 {
		t.Error("TypicalLength should reflect the cohort's mean title length")
	}
}

func TestDetectTitlePatternsEmpty(t *testing.T) {
	if got := detectTitlePatterns(nil); got != (TitlePatterns{}) {
		t.Errorf("expected zero patterns for empty cohort, got %+v", got)
	}
}

func TestAnalyzeTitlesFallsBackToAllVideos(t *testing.T) {
	// The top cohort's only title yields no countable words (a single
	// one-rune token), so high-frequency words must come from the full
	// video list instead.
	videos := []models.Video{
		{Title: "の"},
		{Title: "camera review camera"},
	}
	top := videos[:1]

	got := analyzeTitles(videos, top, nil, DefaultConfig())
	if len(got.HighWords) == 0 {
		t.Fatal("expected fallback to all-video titles")
	}
	if got.HighWords[0].Word != "camera" {
		t.Errorf("HighWords[0] = %+v, want camera", got.HighWords[0])
	}
}

func TestAnalyzeTitlesSuggestions(t *testing.T) {
	videos := []models.Video{
		{Title: "camera settings explained"},
		{Title: "camera lenses compared"},
	}

	got := analyzeTitles(videos, videos, videos, DefaultConfig())
	if len(got.Suggestions) != 4 {
		t.Fatalf("expected 4 suggestions, got %d", len(got.Suggestions))
	}
	for _, s := range got.Suggestions {
		if s.Pattern == "" || s.Description == "" || s.Example == "" {
			t.Errorf("incomplete suggestion: %+v", s)
		}
	}
	if len(got.Thumbnails.Recommendations) == 0 {
		t.Error("expected thumbnail recommendations")
	}
}

func TestAnalyzeTitlesWordListsCapped(t *testing.T) {
	titles := []string{
		"alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima",
	}
	videos := make([]models.Video, len(titles))
	for i, title := range titles {
		videos[i] = models.Video{Title: title}
	}

	got := analyzeTitles(videos, videos, videos, DefaultConfig())
	if len(got.HighWords) > 10 {
		t.Errorf("HighWords length = %d, want at most 10", len(got.HighWords))
	}
	if len(got.LowWords) > 10 {
		t.Errorf("LowWords length = %d, want at most 10", len(got.LowWords))
	}
}
