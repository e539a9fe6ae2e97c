package textmine

import (
	"reflect"
	"testing"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name      string
		titles    []string
		stopWords []string
		expected  []WordCount
	}{
		{
			name:   "BasicFrequency",
			titles: []string{"Go tutorial for beginners", "Go tips and tricks", "Go tutorial advanced"},
			expected: []WordCount{
				{Word: "Go", Count: 3},
				{Word: "tutorial", Count: 2},
				{Word: "for", Count: 1},
				{Word: "beginners", Count: 1},
				{Word: "tips", Count: 1},
				{Word: "and", Count: 1},
				{Word: "tricks", Count: 1},
				{Word: "advanced", Count: 1},
			},
		},
		{
			name:      "StopWordsDropped",
			titles:    []string{"the quick fox", "the slow fox"},
			stopWords: []string{"the"},
			expected: []WordCount{
				{Word: "fox", Count: 2},
				{Word: "quick", Count: 1},
				{Word: "slow", Count: 1},
			},
		},
		{
			name:   "NumericAndShortTokensDropped",
			titles: []string{"5 tips 2024 x go"},
			expected: []WordCount{
				{Word: "tips", Count: 1},
				{Word: "go", Count: 1},
			},
		},
		{
			name:   "JapanesePunctuationSplits",
			titles: []string{"初心者向け【完全版】ガイド、解説"},
			expected: []WordCount{
				{Word: "初心者向け", Count: 1},
				{Word: "完全版", Count: 1},
				{Word: "ガイド", Count: 1},
				{Word: "解説", Count: 1},
			},
		},
		{
			name:     "EmptyInput",
			titles:   nil,
			expected: []WordCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountWords(tt.titles, tt.stopWords)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("CountWords() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCountWordsTieBreakIsFirstSeen(t *testing.T) {
	got := CountWords([]string{"alpha beta", "beta alpha"}, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 words, got %v", got)
	}
	if got[0].Word != "alpha" || got[1].Word != "beta" {
		t.Errorf("tie-break order = [%s %s], want [alpha beta]", got[0].Word, got[1].Word)
	}
}

func TestCountWordsBigramFallback(t *testing.T) {
	// A single glued-together token of stop words only: the word pass
	// yields nothing, so the bigram fallback kicks in.
	got := CountWords([]string{"あいう"}, []string{"あいう"})
	if len(got) == 0 {
		t.Fatal("expected bigram fallback results, got none")
	}
	expected := []WordCount{
		{Word: "あい", Count: 1},
		{Word: "いう", Count: 1},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("bigram fallback = %v, want %v", got, expected)
	}
}

func TestCountWordsBigramFallbackCap(t *testing.T) {
	// 14 runes produce 13 distinct bigrams; the fallback caps at 10.
	got := CountWords([]string{"あいうえおかきくけこさしすせ"}, []string{"あいうえおかきくけこさしすせ"})
	if len(got) != 10 {
		t.Errorf("expected fallback capped at 10 entries, got %d", len(got))
	}
}
