// Package insight splits the AI report's free text into numbered points.
//
// The upstream text is an informal list: an intro sentence, then one entry per
// line, optionally numbered ("1. "), bulleted ("* "), emphasized ("**") or
// prefixed with "Suggestion:". Segment never fails; text it cannot read as a
// list is reported with SectionUnstructured instead of being dropped.
package insight

import (
	"regexp"
	"strings"

	"github.com/insightify/insightify-go/internal/domain"
)

const (
	emphasis         = "**"
	conclusionPhrase = "by addressing these points"
)

var (
	ordinalPattern    = regexp.MustCompile(`^\d+\.(\s+|$)`)
	bulletPattern     = regexp.MustCompile(`^\*\s+`)
	suggestionPattern = regexp.MustCompile(`(?i)^(?:\*\s*)?(suggestion):\s*`)
)

// line is one non-blank input line after cleanup, with the markers it carried.
type line struct {
	source     string
	text       string
	indented   bool
	ordinal    bool
	bullet     bool
	suggestion bool
}

func (l line) structured() bool {
	return l.ordinal || l.bullet || l.suggestion
}

// Segment parses one section of the AI report.
func Segment(raw string) domain.InsightSection {
	section := domain.InsightSection{Points: []domain.InsightPoint{}}

	var intro string
	var rest []line
	for _, rawLine := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(rawLine)
		if trimmed == "" {
			continue
		}
		if intro == "" {
			intro = trimmed
			continue
		}
		rest = append(rest, clean(rawLine, trimmed))
	}

	section.Intro = intro
	switch {
	case intro == "":
		section.Format = domain.SectionEmpty
		return section
	case len(rest) == 0:
		section.Format = domain.SectionIntroOnly
		return section
	case !anyStructured(rest):
		section.Format = domain.SectionUnstructured
		section.Unparsed = make([]string, 0, len(rest))
		for _, l := range rest {
			section.Unparsed = append(section.Unparsed, l.source)
		}
		return section
	}

	section.Format = domain.SectionStructured
	section.Points = points(rest)
	return section
}

func anyStructured(lines []line) bool {
	for _, l := range lines {
		if l.structured() {
			return true
		}
	}
	return false
}

// points classifies and numbers cleaned lines. The counter advances only on
// plain points; a suggestion shares the number of the point before it.
func points(lines []line) []domain.InsightPoint {
	out := make([]domain.InsightPoint, 0, len(lines))
	counter := 0
	for _, l := range lines {
		if l.text == "" {
			continue
		}

		kind := classify(l.text)
		if last := len(out) - 1; last >= 0 && out[last].Kind == domain.PointKindSuggestion && continues(l, kind) {
			if sub := subPoint(l.text); sub != "" {
				out[last].SubPoints = append(out[last].SubPoints, sub)
			}
			continue
		}

		point := domain.InsightPoint{Text: l.text, Kind: kind, SubPoints: []string{}}
		switch kind {
		case domain.PointKindPoint:
			counter++
			point.Number = counter
		case domain.PointKindSuggestion:
			point.Number = counter
		}
		out = append(out, point)
	}
	return out
}

// continues reports whether l belongs to the suggestion above it rather than
// starting a new entry.
func continues(l line, kind domain.PointKind) bool {
	if l.ordinal || kind == domain.PointKindConclusion {
		return false
	}
	return l.indented || (!l.bullet && !l.suggestion)
}

func classify(text string) domain.PointKind {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "suggestion:"):
		return domain.PointKindSuggestion
	case strings.Contains(lower, conclusionPhrase):
		return domain.PointKindConclusion
	default:
		return domain.PointKindPoint
	}
}

func clean(rawLine, trimmed string) line {
	l := line{
		source:   trimmed,
		indented: rawLine != "" && (rawLine[0] == ' ' || rawLine[0] == '\t'),
	}

	text := trimmed
	if loc := ordinalPattern.FindStringIndex(text); loc != nil {
		l.ordinal = true
		text = text[loc[1]:]
	}
	text = strings.ReplaceAll(text, emphasis, "")
	text = strings.TrimSpace(text)

	if m := suggestionPattern.FindStringSubmatchIndex(text); m != nil {
		l.suggestion = true
		l.bullet = strings.HasPrefix(text, "*")
		word := text[m[2]:m[3]]
		for m != nil {
			text = text[m[1]:]
			m = suggestionPattern.FindStringSubmatchIndex(text)
		}
		if text = strings.TrimSpace(text); text != "" {
			text = word + ": " + text
		}
	} else if loc := bulletPattern.FindStringIndex(text); loc != nil {
		l.bullet = true
		text = text[loc[1]:]
	}

	l.text = strings.TrimSpace(text)
	if classify(l.text) == domain.PointKindSuggestion {
		l.suggestion = true
	}
	return l
}

// subPoint drops the markers a continuation line may repeat.
func subPoint(text string) string {
	text = bulletPattern.ReplaceAllString(text, "")
	for m := suggestionPattern.FindStringIndex(text); m != nil; m = suggestionPattern.FindStringIndex(text) {
		text = text[m[1]:]
	}
	return strings.TrimSpace(strings.ReplaceAll(text, emphasis, ""))
}
