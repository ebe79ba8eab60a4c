package helpers

import (
	"strings"
	"unicode/utf8"
)

// HighlightSegment is a slice of text that either matched the search term or not.
type HighlightSegment struct {
	Text  string
	Match bool
}

// HighlightSegments splits text around case-insensitive occurrences of term.
func HighlightSegments(text, term string) []HighlightSegment {
	term = strings.TrimSpace(term)
	if text == "" {
		return nil
	}
	if term == "" {
		return []HighlightSegment{{Text: text}}
	}

	var segments []HighlightSegment
	termRunes := utf8.RuneCountInString(term)
	start := 0
	for i := 0; i < len(text); {
		end := advanceRunes(text, i, termRunes)
		if end > 0 && strings.EqualFold(text[i:end], term) {
			if i > start {
				segments = append(segments, HighlightSegment{Text: text[start:i]})
			}
			segments = append(segments, HighlightSegment{Text: text[i:end], Match: true})
			i, start = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if start < len(text) {
		segments = append(segments, HighlightSegment{Text: text[start:]})
	}
	return segments
}

// advanceRunes returns the byte offset n runes after from, or -1 if text is too short.
func advanceRunes(text string, from, n int) int {
	i := from
	for ; n > 0; n-- {
		if i >= len(text) {
			return -1
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return i
}
