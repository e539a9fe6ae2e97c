// Package advice turns the raw markdown-ish text returned by the
// language model into a structured advice tree, falling back to a
// deterministic report-derived tree when the text yields nothing.
package advice

import (
	"bufio"
	"strings"

	"channelscope/agents/channel-analyzer/analysis"
	"channelscope/internal/models"
)

// Structure parses raw advice text into sections and subsections.
// Lines beginning "## " open a section and lines beginning "### " open
// a subsection within the current section; everything else is content
// attached to whichever block is open. When no sections can be parsed
// at all, a deterministic tree built from the report is returned so
// callers always get usable advice; the second return value reports
// whether that happened.
func Structure(raw string, report *analysis.Report) (*models.Advice, bool) {
	parsed := parse(raw)
	if len(parsed.Sections) == 0 {
		return Fallback(report), true
	}
	return parsed, false
}

type parserState int

const (
	stateNone parserState = iota
	stateSection
	stateSubsection
)

func parse(raw string) *models.Advice {
	advice := &models.Advice{Sections: []models.AdviceSection{}}

	state := stateNone
	var section *models.AdviceSection
	var subsection *models.AdviceSubsection
	var buf []string

	flushContent := func() {
		content := cleanContent(buf)
		buf = nil
		switch state {
		case stateSection:
			section.Content = content
		case stateSubsection:
			if subsection.Title != "" && len(content) > 0 {
				subsection.Content = content
				section.Subsections = append(section.Subsections, *subsection)
			}
			subsection = nil
		}
	}
	flushSection := func() {
		flushContent()
		if section != nil {
			advice.Sections = append(advice.Sections, *section)
			section = nil
		}
		state = stateNone
	}

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "## "):
			flushSection()
			section = &models.AdviceSection{
				Title:   strings.TrimSpace(strings.TrimPrefix(line, "## ")),
				Content: []string{},
			}
			state = stateSection
		case strings.HasPrefix(line, "### ") && section != nil:
			flushContent()
			subsection = &models.AdviceSubsection{
				Title: strings.TrimSpace(strings.TrimPrefix(line, "### ")),
			}
			state = stateSubsection
		case section != nil:
			buf = append(buf, line)
		}
	}
	flushSection()

	return advice
}

// cleanContent joins the buffered lines into one trimmed block and
// drops blocks that are empty or leftover markdown noise.
func cleanContent(lines []string) []string {
	block := strings.TrimSpace(strings.Join(lines, "\n"))
	block = strings.TrimSpace(strings.TrimLeft(block, "# "))
	if block == "" {
		return []string{}
	}
	return []string{block}
}
