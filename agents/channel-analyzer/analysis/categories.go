package analysis

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"channelscope/internal/models"
	"channelscope/shared/stats"
	"channelscope/shared/textmine"
)

// categoryRule matches one content category against the combined
// title and tag text. Rules are checked in order; the first match
// wins, so more specific categories come first.
type categoryRule struct {
	Name     string
	Japanese string
	Patterns []*regexp.Regexp
}

var categoryRules = []categoryRule{
	{
		Name:     "discussion",
		Japanese: "考察/分析",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`考察|分析|解説|まとめ|理由|なぜ|真相|解明`),
			regexp.MustCompile(`(?i)analysis|explained|theory|deep dive|breakdown`),
		},
	},
	{
		Name:     "howto",
		Japanese: "ハウツー/解説",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`方法|やり方|作り方|手順|入門|初心者|講座|チュートリアル|コツ`),
			regexp.MustCompile(`(?i)how to|tutorial|guide|tips|beginner`),
		},
	},
	{
		Name:     "ranking",
		Japanese: "ランキング/おすすめ",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`ランキング|おすすめ|選|トップ|ベスト|TOP\d+`),
			regexp.MustCompile(`(?i)ranking|top \d+|best of|must have`),
		},
	},
	{
		Name:     "reaction",
		Japanese: "リアクション",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`リアクション|初見|見てみた|聞いてみた|反応`),
			regexp.MustCompile(`(?i)reaction|reacts? to|first time (watching|hearing)`),
		},
	},
	{
		Name:     "review",
		Japanese: "レビュー/紹介",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`レビュー|感想|使ってみた|試してみた|紹介|インプレ|購入品|開封|比較|評価`),
			regexp.MustCompile(`(?i)review|unboxing|versus|comparison`),
		},
	},
	{
		Name:     "vlog",
		Japanese: "Vlog/日常",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`vlog|ブログ|日常|ルーティン|密着|一日|暮らし`),
			regexp.MustCompile(`(?i)vlog|day in|routine|my life`),
		},
	},
}

const otherCategory = "other"

var categoryJapanese = func() map[string]string {
	m := map[string]string{otherCategory: "オリジナルコンテンツ"}
	for _, rule := range categoryRules {
		m[rule.Name] = rule.Japanese
	}
	return m
}()

// Classify assigns a video to a content category from its title and
// tags. Videos matching no rule fall into "other".
func Classify(title string, tags []string) string {
	text := title
	if len(tags) > 0 {
		text += " " + strings.Join(tags, " ")
	}
	for _, rule := range categoryRules {
		for _, p := range rule.Patterns {
			if p.MatchString(text) {
				return rule.Name
			}
		}
	}
	return otherCategory
}

// CategoryLabel returns the Japanese display label for a category name.
func CategoryLabel(name string) string {
	if label, ok := categoryJapanese[name]; ok {
		return label
	}
	return name
}

// SuccessFactors are the phrases and tags shared across a category's
// top videos.
type SuccessFactors struct {
	CommonPhrases  []string `json:"commonPhrases"`
	TagSuggestions []string `json:"tagSuggestions"`
}

// TypePerformance summarizes one content category's results relative
// to the channel as a whole. Relative values are percentages where 100
// means channel-average.
type TypePerformance struct {
	Name                     string         `json:"name"`
	NameJapanese             string         `json:"nameJapanese"`
	Count                    int            `json:"count"`
	Percentage               float64        `json:"percentage"`
	AvgViews                 float64        `json:"avgViews"`
	AvgEngagement            float64        `json:"avgEngagement"`
	RelativeViewsPerformance float64        `json:"relativeViewsPerformance"`
	RelativeEngagement       float64        `json:"relativeEngagement"`
	CombinedPerformance      float64        `json:"combinedPerformance"`
	TopPerformer             *models.Video  `json:"topPerformer,omitempty"`
	SuccessFactors           SuccessFactors `json:"successFactors"`
}

// NichePotential flags an under-produced category that punches above
// the channel average.
type NichePotential struct {
	Name            string  `json:"name"`
	NameJapanese    string  `json:"nameJapanese"`
	Count           int     `json:"count"`
	PotentialGrowth float64 `json:"potentialGrowth"`
	Recommendation  string  `json:"recommendation"`
}

// ContentDistribution measures how evenly output spreads across
// categories.
type ContentDistribution struct {
	DiversificationScore float64 `json:"diversificationScore"`
	IsBalanced           bool    `json:"isBalanced"`
	DominantType         string  `json:"dominantType,omitempty"`
	Recommendation       string  `json:"recommendation"`
}

// CategoryAnalysis is the content-type performance result.
type CategoryAnalysis struct {
	TypePerformance    []TypePerformance   `json:"typePerformance"`
	MostEffectiveType  string              `json:"mostEffectiveType"`
	LeastEffectiveType string              `json:"leastEffectiveType"`
	Niche              *NichePotential     `json:"nichePotential,omitempty"`
	Distribution       ContentDistribution `json:"contentDistribution"`
}

func analyzeCategories(videos []models.Video, summary SummaryStats, cfg Config) CategoryAnalysis {
	groups := make(map[string][]models.Video)
	var order []string
	for _, v := range videos {
		name := Classify(v.Title, v.Tags)
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], v)
	}

	perf := make([]TypePerformance, 0, len(order))
	for _, name := range order {
		perf = append(perf, categoryPerformance(name, groups[name], len(videos), summary, cfg))
	}
	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].CombinedPerformance > perf[j].CombinedPerformance
	})

	analysis := CategoryAnalysis{
		TypePerformance: perf,
		Distribution:    contentDistribution(perf),
	}
	if len(perf) >= 2 {
		analysis.MostEffectiveType = perf[0].Name
		analysis.LeastEffectiveType = perf[len(perf)-1].Name
	}
	analysis.Niche = findNiche(perf)
	return analysis
}

func categoryPerformance(name string, group []models.Video, total int, summary SummaryStats, cfg Config) TypePerformance {
	views := make([]float64, len(group))
	engagement := make([]float64, len(group))
	for i, v := range group {
		views[i] = float64(v.Views)
		engagement[i] = v.Engagement
	}
	avgViews := stats.Mean(views)
	avgEngagement := stats.Mean(engagement)

	// A zero channel denominator reports as channel-average (100).
	relViews := 100.0
	if summary.AvgViews != 0 {
		relViews = avgViews / summary.AvgViews * 100
	}
	relEngagement := 100.0
	if summary.AvgEngagement != 0 {
		relEngagement = avgEngagement / summary.AvgEngagement * 100
	}

	byViews := make([]models.Video, len(group))
	copy(byViews, group)
	sort.SliceStable(byViews, func(i, j int) bool {
		return byViews[i].Views > byViews[j].Views
	})

	var topPerformer *models.Video
	if len(byViews) > 0 {
		top := byViews[0]
		topPerformer = &top
	}

	var percentage float64
	if total > 0 {
		percentage = float64(len(group)) / float64(total) * 100
	}

	return TypePerformance{
		Name:                     name,
		NameJapanese:             CategoryLabel(name),
		Count:                    len(group),
		Percentage:               percentage,
		AvgViews:                 avgViews,
		AvgEngagement:            avgEngagement,
		RelativeViewsPerformance: relViews,
		RelativeEngagement:       relEngagement,
		CombinedPerformance:      (relViews + relEngagement) / 2,
		TopPerformer:             topPerformer,
		SuccessFactors:           successFactors(byViews, cfg),
	}
}

// successFactors mines the words and tags shared by a category's top
// three videos. A feature counts as shared when it shows up in at
// least half of them (minimum two).
func successFactors(byViews []models.Video, cfg Config) SuccessFactors {
	top := byViews
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) < 2 {
		return SuccessFactors{CommonPhrases: []string{}, TagSuggestions: []string{}}
	}
	threshold := int(math.Max(2, math.Ceil(float64(len(top))*0.5)))

	phrases := sharedAcross(top, threshold, func(v models.Video) []string {
		words := textmine.CountWords([]string{v.Title}, cfg.StopWords)
		out := make([]string, 0, len(words))
		for _, w := range words {
			out = append(out, w.Word)
		}
		return out
	})
	tags := sharedAcross(top, threshold, func(v models.Video) []string {
		return v.Tags
	})

	if len(phrases) > 5 {
		phrases = phrases[:5]
	}
	if len(tags) > 5 {
		tags = tags[:5]
	}
	return SuccessFactors{CommonPhrases: phrases, TagSuggestions: tags}
}

// sharedAcross counts, per feature, how many videos carry it and
// returns the features at or above threshold in first-seen order.
func sharedAcross(videos []models.Video, threshold int, extract func(models.Video) []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, v := range videos {
		seen := make(map[string]bool)
		for _, f := range extract(v) {
			if seen[f] {
				continue
			}
			seen[f] = true
			if counts[f] == 0 {
				order = append(order, f)
			}
			counts[f]++
		}
	}

	shared := make([]string, 0, len(order))
	for _, f := range order {
		if counts[f] >= threshold {
			shared = append(shared, f)
		}
	}
	return shared
}

// Niche thresholds: small sample, clearly above-average views and a
// strong combined score.
const (
	nicheMaxCount    = 5
	nicheMinRelViews = 120
	nicheMinCombined = 110
)

func findNiche(perf []TypePerformance) *NichePotential {
	var best *TypePerformance
	for i := range perf {
		p := &perf[i]
		if p.Count >= nicheMaxCount || p.RelativeViewsPerformance <= nicheMinRelViews || p.CombinedPerformance <= nicheMinCombined {
			continue
		}
		if best == nil || p.CombinedPerformance > best.CombinedPerformance {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	return &NichePotential{
		Name:            best.Name,
		NameJapanese:    best.NameJapanese,
		Count:           best.Count,
		PotentialGrowth: (best.RelativeViewsPerformance - 100) / 10,
		Recommendation: fmt.Sprintf("%s videos outperform your channel average with only %d uploads; producing more could unlock growth.",
			best.NameJapanese, best.Count),
	}
}

func contentDistribution(perf []TypePerformance) ContentDistribution {
	if len(perf) == 0 {
		return ContentDistribution{Recommendation: "No videos to analyze yet."}
	}

	var total int
	for _, p := range perf {
		total += p.Count
	}

	// Normalized Shannon entropy as a 0-100 diversity score. A single
	// category has zero diversity by definition.
	var score float64
	if len(perf) > 1 && total > 0 {
		var entropy float64
		for _, p := range perf {
			share := float64(p.Count) / float64(total)
			if share > 0 {
				entropy -= share * math.Log2(share)
			}
		}
		score = entropy / math.Log2(float64(len(perf))) * 100
	}

	dominant := ""
	for _, p := range perf {
		if total > 0 && float64(p.Count)/float64(total) > 0.6 {
			dominant = p.Name
			break
		}
	}

	var rec string
	switch {
	case score < 30:
		rec = "Output is concentrated in one content type. Experimenting with a second format could reach new viewers."
	case score > 80:
		rec = "Output is spread thin across many content types. Consolidating around your best performers would sharpen the channel's identity."
	default:
		rec = "Your mix of content types is healthy. Keep iterating on what performs."
	}

	return ContentDistribution{
		DiversificationScore: score,
		IsBalanced:           score >= 40 && score <= 70,
		DominantType:         dominant,
		Recommendation:       rec,
	}
}
