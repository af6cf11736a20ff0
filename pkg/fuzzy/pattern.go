// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fuzzy

import (
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lower-cases text and strips combining marks, so "Évocation" and
// "evocation" compare equal.
func fold(text string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// pattern is a folded query split into the tokens that survived the
// minimum-length filter.
type pattern struct {
	text   string
	tokens []string
}

func compilePattern(query string, minTokenLength int) pattern {
	var tokens []string
	for _, token := range strings.Fields(fold(query)) {
		if runeLen(token) >= minTokenLength {
			tokens = append(tokens, token)
		}
	}
	return pattern{text: strings.Join(tokens, " "), tokens: tokens}
}

func (p pattern) empty() bool {
	return len(p.tokens) == 0
}

// fieldScore is the best normalized edit distance between the pattern and
// any run of consecutive words in the field, clamped to [0, 1].
//
// A substring hit scores 0. Otherwise each window of len(tokens) words is
// compared whole and by every slice within one rune of the pattern length,
// so "firebal" still finds "fireball", "misile" finds "missile", and "bsll"
// finds the "ball" inside "fireball".
func (p pattern) fieldScore(words []string) float64 {
	if len(words) == 0 {
		return 1
	}

	if strings.Contains(strings.Join(words, " "), p.text) {
		return 0
	}

	size := len(p.tokens)
	if size > len(words) {
		size = len(words)
	}

	patternLength := runeLen(p.text)
	best := 1.0

	for start := 0; start+size <= len(words); start++ {
		window := strings.Join(words[start:start+size], " ")
		if distance := p.windowDistance(window, patternLength); distance < best {
			best = distance
			if best == 0 {
				break
			}
		}
	}
	return best
}

func (p pattern) windowDistance(window string, patternLength int) float64 {
	windowRunes := []rune(window)
	best := float64(smetrics.WagnerFischer(p.text, window, 1, 1, 1)) / float64(patternLength)

	for _, length := range [...]int{patternLength - 1, patternLength, patternLength + 1} {
		if length < 1 || length > len(windowRunes) {
			continue
		}

		for start := 0; start+length <= len(windowRunes); start++ {
			distance := smetrics.WagnerFischer(p.text, string(windowRunes[start:start+length]), 1, 1, 1)
			if normalized := float64(distance) / float64(patternLength); normalized < best {
				best = normalized
			}
		}
	}
	return min(best, 1)
}
