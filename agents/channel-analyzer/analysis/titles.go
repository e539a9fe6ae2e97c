package analysis

import (
	"fmt"
	"math"
	"regexp"

	"channelscope/internal/models"
	"channelscope/shared/stats"
	"channelscope/shared/textmine"
)

// TitlePatterns holds the incidence rate (percent of the top cohort)
// of each stylistic title pattern, plus the rounded typical length.
type TitlePatterns struct {
	TypicalLength     int `json:"typicalLength"`
	NumberInBeginning int `json:"numberInBeginning"`
	QuestionUsage     int `json:"questionUsage"`
	BracketUsage      int `json:"bracketUsage"`
	ColonUsage        int `json:"colonUsage"`
	EmojiUsage        int `json:"emojiUsage"`
}

// TitleSuggestion is one canned title template parameterized by the
// channel's own frequent keywords.
type TitleSuggestion struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// ThumbnailFeatures carries the static thumbnail heuristics. No image
// analysis is performed; these are fixed advisory recommendations.
type ThumbnailFeatures struct {
	Recommendations []string `json:"recommendations"`
}

// TitleAnalysis is the title/keyword mining result.
type TitleAnalysis struct {
	AvgLength   float64              `json:"avgLength"`
	HighWords   []textmine.WordCount `json:"highWords"`
	LowWords    []textmine.WordCount `json:"lowWords"`
	Patterns    TitlePatterns        `json:"patterns"`
	Suggestions []TitleSuggestion    `json:"titleSuggestions"`
	Thumbnails  ThumbnailFeatures    `json:"thumbnailFeatures"`
}

var (
	numberPrefixRe = regexp.MustCompile(`^\d+`)
	questionRe     = regexp.MustCompile(`\?`)
	bracketsRe     = regexp.MustCompile(`[\[({【].*[\])}】]`)
	colonRe        = regexp.MustCompile(`[:：]`)
	emojiRe        = regexp.MustCompile(`[\x{1F300}-\x{1F6FF}\x{2600}-\x{26FF}]`)
)

// wordListCap bounds the high/low frequent-word lists.
const wordListCap = 10

func analyzeTitles(videos, top, bottom []models.Video, cfg Config) TitleAnalysis {
	lengths := make([]float64, len(videos))
	for i, v := range videos {
		lengths[i] = float64(len([]rune(v.Title)))
	}

	highWords := textmine.CountWords(titlesOf(top), cfg.StopWords)
	if len(highWords) == 0 && len(videos) > 0 {
		highWords = textmine.CountWords(titlesOf(videos), cfg.StopWords)
	}
	highWords = capWords(highWords, wordListCap)
	lowWords := capWords(textmine.CountWords(titlesOf(bottom), cfg.StopWords), wordListCap)

	patterns := detectTitlePatterns(top)

	return TitleAnalysis{
		AvgLength:   stats.Mean(lengths),
		HighWords:   highWords,
		LowWords:    lowWords,
		Patterns:    patterns,
		Suggestions: titleSuggestions(highWords, patterns),
		Thumbnails:  thumbnailRecommendations(),
	}
}

// detectTitlePatterns measures how often each stylistic pattern shows
// up in the cohort, as a percentage of its size.
func detectTitlePatterns(cohort []models.Video) TitlePatterns {
	if len(cohort) == 0 {
		return TitlePatterns{}
	}

	var number, question, brackets, colon, emoji int
	lengths := make([]float64, len(cohort))
	for i, v := range cohort {
		lengths[i] = float64(len([]rune(v.Title)))
		if numberPrefixRe.MatchString(v.Title) {
			number++
		}
		if questionRe.MatchString(v.Title) {
			question++
		}
		if bracketsRe.MatchString(v.Title) {
			brackets++
		}
		if colonRe.MatchString(v.Title) {
			colon++
		}
		if emojiRe.MatchString(v.Title) {
			emoji++
		}
	}

	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(len(cohort)) * 100))
	}
	return TitlePatterns{
		TypicalLength:     int(math.Round(stats.Mean(lengths))),
		NumberInBeginning: pct(number),
		QuestionUsage:     pct(question),
		BracketUsage:      pct(brackets),
		ColonUsage:        pct(colon),
		EmojiUsage:        pct(emoji),
	}
}

// dominantPattern picks the pattern with the highest incidence rate.
// Brackets and emoji share one combined template, so they compete as a
// single candidate.
func dominantPattern(p TitlePatterns) string {
	best := "question"
	bestRate := p.QuestionUsage
	if p.NumberInBeginning > bestRate {
		best, bestRate = "numbered", p.NumberInBeginning
	}
	if p.ColonUsage > bestRate {
		best, bestRate = "colon", p.ColonUsage
	}
	if combo := maxInt(p.BracketUsage, p.EmojiUsage); combo > bestRate {
		best = "emoji-bracket"
	}
	return best
}

func titleSuggestions(words []textmine.WordCount, patterns TitlePatterns) []TitleSuggestion {
	keyword := func(i int) string {
		if i < len(words) && i < 5 {
			return words[i].Word
		}
		return "your topic"
	}
	w0, w1 := keyword(0), keyword(1)

	var dominant TitleSuggestion
	switch dominantPattern(patterns) {
	case "numbered":
		dominant = TitleSuggestion{
			Pattern:     "numbered-bracket",
			Description: "Open with a concrete number and bracket the hook; specificity draws clicks",
			Example:     fmt.Sprintf("5 %s techniques【%s edition】", w0, w1),
		}
	case "colon":
		dominant = TitleSuggestion{
			Pattern:     "colon",
			Description: "Split the topic and the payoff with a colon so both read at a glance",
			Example:     fmt.Sprintf("%s basics: a practical %s walkthrough", w0, w1),
		}
	case "emoji-bracket":
		dominant = TitleSuggestion{
			Pattern:     "emoji-bracket-combo",
			Description: "Brackets and an emoji accent make the title stand out in search results",
			Example:     fmt.Sprintf("【%s】the complete %s playbook ✨", w0, w1),
		}
	default:
		dominant = TitleSuggestion{
			Pattern:     "question",
			Description: "A question in the title primes curiosity and lifts click-through",
			Example:     fmt.Sprintf("Why does %s change everything about %s?", w0, w1),
		}
	}

	return []TitleSuggestion{
		{
			Pattern:     "keyword-lead",
			Description: "Put the channel's strongest keyword at the very front of the title",
			Example:     fmt.Sprintf("%s: what nobody tells you about %s", w0, w1),
		},
		dominant,
		{
			Pattern:     "how-to",
			Description: "Promise a concrete skill; how-to framings perform steadily across niches",
			Example:     fmt.Sprintf("How to master %s (%s included)", w0, w1),
		},
		{
			Pattern:     "list",
			Description: "List framings set clear expectations for length and payoff",
			Example:     fmt.Sprintf("7 %s ideas your viewers will love (%s inside)", w0, w1),
		},
	}
}

// thumbnailRecommendations returns the fixed advisory set. Thumbnail
// image analysis is out of scope, so the same text is returned
// regardless of input.
func thumbnailRecommendations() ThumbnailFeatures {
	return ThumbnailFeatures{
		Recommendations: []string{
			"Use a close-up face or a single clear subject; busy thumbnails lose at small sizes",
			"Overlay at most 3-4 large words that complement, not repeat, the title",
			"Pick 2-3 high-contrast brand colors and keep them consistent across uploads",
			"Check legibility at 120px wide - that is how most viewers first see it",
		},
	}
}

func titlesOf(videos []models.Video) []string {
	titles := make([]string, len(videos))
	for i, v := range videos {
		titles[i] = v.Title
	}
	return titles
}

func capWords(words []textmine.WordCount, n int) []textmine.WordCount {
	if len(words) > n {
		return words[:n]
	}
	return words
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
