package ai

import (
	"context"
	"fmt"
	"strings"

	"channelscope/agents/channel-analyzer/analysis"
	"channelscope/shared/config"
	"channelscope/shared/textmine"

	"google.golang.org/genai"
)

// Advisor generates channel growth advice from an analysis report via
// the Gemini API. The response is free text in the ## / ### layout the
// prompt requests; structuring it is the caller's job.
type Advisor struct {
	client *genai.Client
	model  string
}

func NewAdvisor(cfg *config.Config) (*Advisor, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Advisor{
		client: client,
		model:  cfg.AI.Model,
	}, nil
}

func (a *Advisor) GenerateAdvice(ctx context.Context, report *analysis.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}

	prompt := BuildAdvicePrompt(report)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate advice for channel %s: %w", report.Channel.ID, err)
	}

	responseText := result.Text()
	if responseText == "" {
		return "", fmt.Errorf("no advice response received for channel %s", report.Channel.ID)
	}

	return responseText, nil
}

// Engagement tier cutoffs on the average comment-to-like ratio.
const (
	midEngagementRatio  = 0.05
	highEngagementRatio = 0.1
)

// BuildAdvicePrompt condenses the report into the advice request sent
// to the model. Exported so the one-shot CLI path can show the prompt
// without an API key.
func BuildAdvicePrompt(report *analysis.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a YouTube channel growth consultant. Based on the analysis below, give concrete, prioritized advice for this channel.

CHANNEL:
Name: %s
Subscribers: %d
Videos analyzed: %d
Average views: %.0f (median %.0f)
Average engagement rate: %.2f%%
Audience engagement level: %s
`,
		report.Channel.Title,
		report.Channel.Subscribers,
		report.Count,
		report.Stats.AvgViews,
		report.Stats.MedianViews,
		report.Stats.AvgEngagement,
		engagementTier(report),
	)

	if report.Trend.OldAvg != 0 || report.Trend.NewAvg != 0 {
		fmt.Fprintf(&b, "View trend: %+.1f%% (older uploads avg %.0f, recent avg %.0f)\n",
			report.Trend.Change, report.Trend.OldAvg, report.Trend.NewAvg)
	}

	fmt.Fprintf(&b, "\nPOSTING:\nPattern: %s\n", report.Frequency.Pattern)
	if len(report.Frequency.PreferredDays) > 0 {
		fmt.Fprintf(&b, "Usual days: %s\n", strings.Join(report.Frequency.PreferredDays, ", "))
	}
	if report.Posting.BestDay != "" {
		fmt.Fprintf(&b, "Best day by views: %s (%.0f avg views)\n", report.Posting.BestDay, report.Posting.BestDayAvgViews)
	}

	if len(report.Top) > 0 {
		b.WriteString("\nTOP VIDEOS:\n")
		for i, v := range report.Top {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %s (%d views, %.2f%% engagement)\n", v.Title, v.Views, v.Engagement)
		}
	}

	if len(report.Titles.HighWords) > 0 {
		words := make([]string, 0, 5)
		for i, w := range report.Titles.HighWords {
			if i == 5 {
				break
			}
			words = append(words, w.Word)
		}
		fmt.Fprintf(&b, "\nKEYWORDS in high-performing titles: %s\n", strings.Join(words, ", "))
	}
	if len(report.Tags) > 0 {
		tags := make([]string, 0, 5)
		for i, tag := range report.Tags {
			if i == 5 {
				break
			}
			tags = append(tags, tag.Tag)
		}
		fmt.Fprintf(&b, "Best-performing tags: %s\n", strings.Join(tags, ", "))
	}

	if optimal := optimalMinutes(report); optimal > 0 {
		fmt.Fprintf(&b, "Best-performing video length: around %.0f minutes\n", optimal)
	}

	if len(report.Categories.TypePerformance) > 0 {
		top := report.Categories.TypePerformance[0]
		fmt.Fprintf(&b, "Strongest content type: %s (%.0f%% of channel-average views)\n",
			top.NameJapanese, top.RelativeViewsPerformance)
	}

	if keywords := descriptionKeywords(report.Channel.Description); len(keywords) > 0 {
		fmt.Fprintf(&b, "Channel description keywords: %s\n", strings.Join(keywords, ", "))
	}

	b.WriteString(`
FORMAT:
Respond with 3-5 sections. Start each section title with "## " and each subsection title with "### ". Under every heading write 1-3 short paragraphs of specific, actionable advice grounded in the numbers above. Do not use any other markdown.`)

	return b.String()
}

func engagementTier(report *analysis.Report) string {
	if report.Stats.AvgLikes == 0 {
		return "low"
	}
	ratio := report.Stats.AvgComments / report.Stats.AvgLikes
	switch {
	case ratio >= highEngagementRatio:
		return "high"
	case ratio >= midEngagementRatio:
		return "mid"
	default:
		return "low"
	}
}

// optimalMinutes averages the lengths of the best videos in the
// best-viewed duration bucket, falling back to the channel-wide
// average length.
func optimalMinutes(report *analysis.Report) float64 {
	for _, bucket := range report.Duration.Buckets {
		if bucket.Label != report.Duration.OptimalForViews || len(bucket.Best) == 0 {
			continue
		}
		var sum float64
		n := 0
		for i, v := range bucket.Best {
			if i == 3 {
				break
			}
			sum += v.Minutes
			n++
		}
		return sum / float64(n)
	}
	return report.Duration.AvgMinutes
}

// descriptionKeywords pulls up to eight meaningful words from the
// channel description for topical grounding.
func descriptionKeywords(description string) []string {
	if description == "" {
		return nil
	}

	words := textmine.CountWords([]string{description}, analysis.DefaultStopWords)
	keywords := make([]string, 0, 8)
	for _, w := range words {
		if len([]rune(w.Word)) < 3 {
			continue
		}
		keywords = append(keywords, w.Word)
		if len(keywords) == 8 {
			break
		}
	}
	return keywords
}
