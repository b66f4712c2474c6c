// Package parser extracts word/translation pairs from free-form user text.
package parser

import (
	"strings"

	"linguabird/internal/domain"
)

// Separators in priority order. The first one present in a line wins,
// regardless of where it occurs in the line.
var Separators = []string{" - ", " — ", " – ", ": ", " : ", " = ", " | "}

// Parse turns multi-line text into pairs, one per usable line, in input order.
// Lines without a separator or with an empty side are skipped.
func Parse(text string) []domain.WordPair {
	var pairs []domain.WordPair
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if pair, ok := parseLine(line); ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func parseLine(line string) (domain.WordPair, bool) {
	for _, sep := range Separators {
		if !strings.Contains(line, sep) {
			continue
		}
		parts := strings.SplitN(line, sep, 2)
		if len(parts) != 2 {
			return domain.WordPair{}, false
		}
		source := strings.TrimSpace(parts[0])
		target := strings.TrimSpace(parts[1])
		if source == "" || target == "" {
			return domain.WordPair{}, false
		}
		return domain.WordPair{Source: source, Target: target}, true
	}
	return domain.WordPair{}, false
}
