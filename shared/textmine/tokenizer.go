// Package textmine tokenizes video titles and counts word frequency.
// Titles on Japanese channels often have no spaces at all, so the
// splitter recognizes Japanese punctuation alongside the usual ASCII
// separators, and a character-bigram fallback covers titles that yield
// no segmentable words.
package textmine

import (
	"sort"
	"strings"
	"unicode"
)

// WordCount is one (word, count) frequency entry.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// minWordLength is the minimum rune length for a counted word.
const minWordLength = 2

const separators = " \t\n\r,.!?;:'\"()/-_&+[]{}【】「」『』、。"

func isSeparator(r rune) bool {
	return strings.ContainsRune(separators, r) || unicode.IsSpace(r)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CountWords splits each title on punctuation and whitespace, drops
// stop words, purely numeric tokens and single-character tokens, and
// returns frequencies sorted by count descending. Ties keep the order
// in which words were first seen.
//
// When the titles are non-empty but produce no countable words (for
// example titles made entirely of glued-together kana), it falls back
// to counting overlapping two-character substrings and returns at most
// the 10 most frequent.
func CountWords(titles []string, stopWords []string) []WordCount {
	stop := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stop[w] = true
	}

	counts := make(map[string]int)
	var order []string

	for _, title := range titles {
		for _, word := range strings.FieldsFunc(title, isSeparator) {
			if len([]rune(word)) < minWordLength || stop[word] || isNumeric(word) {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	result := make([]WordCount, 0, len(order))
	for _, word := range order {
		result = append(result, WordCount{Word: word, Count: counts[word]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if len(result) == 0 && len(titles) > 0 {
		return countBigrams(titles)
	}
	return result
}

// countBigrams counts overlapping 2-rune substrings across the titles,
// skipping blank and purely numeric pairs, and returns the top 10.
func countBigrams(titles []string) []WordCount {
	counts := make(map[string]int)
	var order []string

	for _, title := range titles {
		runes := []rune(title)
		for i := 0; i+1 < len(runes); i++ {
			segment := string(runes[i : i+2])
			if strings.TrimSpace(segment) == "" || isNumeric(segment) {
				continue
			}
			if _, seen := counts[segment]; !seen {
				order = append(order, segment)
			}
			counts[segment]++
		}
	}

	result := make([]WordCount, 0, len(order))
	for _, segment := range order {
		result = append(result, WordCount{Word: segment, Count: counts[segment]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if len(result) > 10 {
		result = result[:10]
	}
	return result
}
