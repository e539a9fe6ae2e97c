package advice

import (
	"fmt"
	"strings"

	"channelscope/agents/channel-analyzer/analysis"
	"channelscope/internal/models"
)

// Fallback builds a deterministic advice tree straight from the
// analysis report. It is used when the model response is empty or
// unparseable, so the structure mirrors what a good model answer would
// contain.
func Fallback(report *analysis.Report) *models.Advice {
	return &models.Advice{
		Sections: []models.AdviceSection{
			contentStrategySection(report),
			optimizationSection(report),
			audienceGrowthSection(report),
		},
	}
}

func contentStrategySection(report *analysis.Report) models.AdviceSection {
	section := models.AdviceSection{
		Title:   "Content Strategy",
		Content: []string{"Double down on the formats your audience already rewards."},
	}

	if len(report.Categories.TypePerformance) > 0 {
		top := report.Categories.TypePerformance[0]
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title: "Lean into your strongest format",
			Content: []string{fmt.Sprintf(
				"%s videos are your best performers (%.0f%% of channel-average views). Plan your next uploads around this format.",
				top.NameJapanese, top.RelativeViewsPerformance)},
		})
	}
	if report.Duration.OptimalForViews != "" {
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title: "Target the proven video length",
			Content: []string{fmt.Sprintf(
				"Videos in the %s range draw your highest view counts. Edit toward that length unless the topic demands more.",
				report.Duration.OptimalForViews)},
		})
	}
	if report.Categories.Niche != nil {
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title:   "Test your emerging niche",
			Content: []string{report.Categories.Niche.Recommendation},
		})
	}

	return section
}

func optimizationSection(report *analysis.Report) models.AdviceSection {
	section := models.AdviceSection{
		Title:   "Title and Tag Optimization",
		Content: []string{"Small metadata changes compound across every upload."},
	}

	if len(report.Titles.HighWords) > 0 {
		words := make([]string, 0, 3)
		for i, w := range report.Titles.HighWords {
			if i == 3 {
				break
			}
			words = append(words, w.Word)
		}
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title: "Reuse your winning keywords",
			Content: []string{fmt.Sprintf(
				"Keywords like %s appear across your most-viewed titles. Put one near the front of each new title.",
				strings.Join(words, ", "))},
		})
	}
	if len(report.Tags) > 0 {
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title: "Standardize high-performing tags",
			Content: []string{fmt.Sprintf(
				"The tag %q averages %.0f views per video. Apply your proven tags consistently instead of inventing new ones per upload.",
				report.Tags[0].Tag, report.Tags[0].AvgViews)},
		})
	}

	return section
}

func audienceGrowthSection(report *analysis.Report) models.AdviceSection {
	section := models.AdviceSection{
		Title:   "Audience Growth",
		Content: []string{"Consistency and timing grow returning viewers faster than any single video."},
	}

	if report.Posting.BestDay != "" {
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title: "Publish on your best day",
			Content: []string{fmt.Sprintf(
				"Uploads on %s average %.0f views, your strongest day. Anchor your schedule there.",
				report.Posting.BestDay, report.Posting.BestDayAvgViews)},
		})
	}
	if report.Frequency.Pattern != "" && report.Frequency.Pattern != "unknown" {
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title: "Keep a predictable rhythm",
			Content: []string{fmt.Sprintf(
				"Your current cadence reads as %s. Announce it to viewers and hold it; predictability turns casual viewers into subscribers.",
				report.Frequency.Pattern)},
		})
	}
	if report.EngagementGrowth.HasEnoughData {
		section.Subsections = append(section.Subsections, models.AdviceSubsection{
			Title:   "Act on your engagement signal",
			Content: []string{report.EngagementGrowth.Insight},
		})
	}

	return section
}
