// Package channelanalyzer ties the fetch, analysis, advice and
// delivery stages together into a runnable agent.
package channelanalyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"channelscope/agents/channel-analyzer/advice"
	"channelscope/agents/channel-analyzer/analysis"
	"channelscope/agents/channel-analyzer/youtube"
	"channelscope/internal/models"
	"channelscope/shared/ai"
	"channelscope/shared/config"
	"channelscope/shared/email"
	"channelscope/shared/scheduler"
	"channelscope/shared/storage"
)

// ChannelAgent implements the scheduler.Agent interface. Each run
// walks the configured watchlist and produces a fresh report for
// every channel whose stored report has gone stale.
type ChannelAgent struct {
	config      *config.Config
	client      *youtube.Client
	advisor     *ai.Advisor
	emailSender *email.Sender
	store       *storage.ReportStore
}

// Result pairs the statistical report with its structured advice.
type Result struct {
	Analysis *analysis.Report `json:"analysis"`
	Advice   *models.Advice   `json:"advice"`
}

// RunMetrics summarizes one watchlist pass.
type RunMetrics struct {
	Checked   int
	Analyzed  int
	Skipped   int
	Fallbacks int
}

func (m RunMetrics) GetSummary() string {
	return fmt.Sprintf("%d channels checked, %d analyzed, %d fresh (skipped), %d advice fallbacks",
		m.Checked, m.Analyzed, m.Skipped, m.Fallbacks)
}

func NewChannelAgent(cfg *config.Config) *ChannelAgent {
	return &ChannelAgent{
		config: cfg,
	}
}

func (a *ChannelAgent) Name() string {
	return "Channel Analyzer"
}

func (a *ChannelAgent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.client == nil {
		client, err := youtube.NewClient(&a.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		a.client = client
		log.Println("YouTube client initialized")
	}

	if a.advisor == nil && a.config.AI.GeminiAPIKey != "" {
		advisor, err := ai.NewAdvisor(a.config)
		if err != nil {
			return fmt.Errorf("failed to create AI advisor: %w", err)
		}
		a.advisor = advisor
		log.Println("AI advisor initialized")
	}
	if a.advisor == nil {
		log.Println("No Gemini API key configured; advice will use the built-in fallback")
	}

	if a.emailSender == nil && a.config.Email.Enabled {
		a.emailSender = email.NewSender(&a.config.Email)
		log.Println("Email sender initialized")
	}

	if a.store == nil {
		freshFor := time.Duration(a.config.Storage.FreshnessDays) * 24 * time.Hour
		store, err := storage.NewReportStore(a.config.Storage.DataDir, freshFor)
		if err != nil {
			return fmt.Errorf("failed to create report store: %w", err)
		}
		a.store = store
		log.Printf("Report store initialized (%d channels on record)", store.AnalyzedCount())
	}

	return nil
}

func (a *ChannelAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()

	if len(a.config.Watchlist) == 0 {
		return fmt.Errorf("watchlist is empty; add channel IDs to the config")
	}

	var metrics RunMetrics
	var failures []error

	for _, channelID := range a.config.Watchlist {
		metrics.Checked++

		if a.store.IsFresh(channelID) {
			log.Printf("Skipping %s: report still fresh", channelID)
			metrics.Skipped++
			continue
		}

		result, usedFallback, err := a.analyzeAndAdvise(ctx, channelID)
		if err != nil {
			log.Printf("Warning: failed to analyze channel %s: %v", channelID, err)
			failures = append(failures, fmt.Errorf("channel %s: %w", channelID, err))
			continue
		}
		if usedFallback {
			metrics.Fallbacks++
		}

		stored := &storage.StoredReport{
			GeneratedAt: time.Now(),
			Analysis:    result.Analysis,
			Advice:      result.Advice,
		}
		if err := a.store.SaveReport(channelID, stored); err != nil {
			log.Printf("Warning: failed to save report for %s: %v", channelID, err)
			failures = append(failures, fmt.Errorf("save %s: %w", channelID, err))
			continue
		}
		metrics.Analyzed++

		if a.emailSender != nil {
			report := &email.AnalysisReport{
				Date:     time.Now(),
				Analysis: result.Analysis,
				Advice:   result.Advice,
			}
			if err := a.emailSender.SendReport(report); err != nil {
				log.Printf("Warning: failed to email report for %s: %v", channelID, err)
				failures = append(failures, fmt.Errorf("email %s: %w", channelID, err))
			}
		}
	}

	duration := time.Since(startTime)

	if metrics.Analyzed == 0 && len(failures) > 0 {
		err := errors.Join(failures...)
		if events != nil && events.OnCriticalFailure != nil {
			events.OnCriticalFailure(err, duration)
		}
		return fmt.Errorf("all channel analyses failed: %w", err)
	}
	if len(failures) > 0 {
		if events != nil && events.OnPartialFailure != nil {
			events.OnPartialFailure(errors.Join(failures...), duration)
		}
	} else if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	log.Printf("Run complete: %s", metrics.GetSummary())
	return nil
}

// AnalyzeChannel runs the full pipeline for one channel regardless of
// freshness. It is the one-shot CLI entry point.
func (a *ChannelAgent) AnalyzeChannel(ctx context.Context, channelID string) (*Result, error) {
	result, _, err := a.analyzeAndAdvise(ctx, channelID)
	return result, err
}

func (a *ChannelAgent) analyzeAndAdvise(ctx context.Context, channelID string) (*Result, bool, error) {
	channel, err := a.client.FetchChannel(ctx, channelID)
	if err != nil {
		return nil, false, err
	}

	videos, err := a.client.FetchVideos(ctx, channel.UploadsPlaylistID, a.config.Analysis.VideoCount)
	if err != nil {
		return nil, false, err
	}

	log.Printf("Analyzing %d videos for channel %s", len(videos), channel.Title)
	report := analysis.Analyze(videos, *channel, a.analysisConfig())

	adviceTree, usedFallback := a.generateAdvice(ctx, report)
	return &Result{Analysis: report, Advice: adviceTree}, usedFallback, nil
}

// generateAdvice asks the model for advice and structures its answer.
// Any failure, including an unparseable response, ends in the
// deterministic fallback so a run never dies on the advice stage.
func (a *ChannelAgent) generateAdvice(ctx context.Context, report *analysis.Report) (*models.Advice, bool) {
	if a.advisor == nil {
		return advice.Fallback(report), true
	}

	raw, err := a.advisor.GenerateAdvice(ctx, report)
	if err != nil {
		log.Printf("Warning: advice generation failed, using fallback: %v", err)
		return advice.Fallback(report), true
	}

	structured, usedFallback := advice.Structure(raw, report)
	return structured, usedFallback
}

func (a *ChannelAgent) analysisConfig() analysis.Config {
	cfg := analysis.DefaultConfig()
	if a.config.Analysis.TopResults > 0 {
		cfg.TopResults = a.config.Analysis.TopResults
	}
	if len(a.config.Analysis.StopWords) > 0 {
		cfg.StopWords = a.config.Analysis.StopWords
	}
	return cfg
}
