package email

import (
	"strings"
	"testing"
	"time"

	"channelscope/agents/channel-analyzer/analysis"
	"channelscope/internal/models"
	"channelscope/shared/config"
)

func TestGenerateEmailBody(t *testing.T) {
	sender := NewSender(&config.EmailConfig{})

	report := &AnalysisReport{
		Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Analysis: &analysis.Report{
			Channel: models.Channel{Title: "Maker Channel"},
			Count:   25,
			Stats: analysis.SummaryStats{
				AvgViews:      5000,
				MedianViews:   4000,
				AvgEngagement: 4.5,
			},
			Posting:   analysis.PostingAnalysis{BestDay: "Saturday"},
			Frequency: analysis.FrequencyAnalysis{Pattern: "weekly"},
			Top: []models.Video{
				{Title: "Workshop tour", Views: 20000},
			},
		},
		Advice: &models.Advice{Sections: []models.AdviceSection{
			{
				Title:   "Content Strategy",
				Content: []string{"Double down on reviews."},
				Subsections: []models.AdviceSubsection{
					{Title: "Length", Content: []string{"Aim for 10 minutes."}},
				},
			},
		}},
	}

	body, err := sender.generateEmailBody(report)
	if err != nil {
		t.Fatalf("generateEmailBody: %v", err)
	}

	for _, want := range []string{
		"Maker Channel",
		"Aug 1, 2025",
		"Saturday",
		"weekly",
		"Workshop tour",
		"Content Strategy",
		"Aim for 10 minutes.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("email body missing %q", want)
		}
	}
}

func TestGenerateEmailBodyWithoutAdvice(t *testing.T) {
	sender := NewSender(&config.EmailConfig{})
	report := &AnalysisReport{
		Date:     time.Now(),
		Analysis: &analysis.Report{Channel: models.Channel{Title: "T"}},
	}

	body, err := sender.generateEmailBody(report)
	if err != nil {
		t.Fatalf("generateEmailBody: %v", err)
	}
	if strings.Contains(body, "<h2>Advice</h2>") {
		t.Error("advice section should be omitted when no advice present")
	}
}

func TestSendReportNilReport(t *testing.T) {
	sender := NewSender(&config.EmailConfig{})
	if err := sender.SendReport(nil); err == nil {
		t.Error("expected error for nil report")
	}
}
