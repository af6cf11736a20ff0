// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fuzzy ranks documents against a free-text query using field-weighted
approximate matching.

# Scoring

Scores are distances: 0 is a perfect match, lower is better. Each field is
scored independently (see [fieldScore]); a field takes part when its score is
within the threshold. The document score combines the matched fields as

	Π max(s, ε) ^ (weight/Σweights · norm)

where norm = 1/√(words in the field), so a hit in a short, heavily weighted
field (a name) beats the same hit buried in a long description.

The package knows nothing about catalog entities: any type exposing its four
text fields through [Document] can be ranked.
*/
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/grimoire/pkg/pagination"
)

const (
	// DefaultThreshold is the largest field distance still considered a match.
	DefaultThreshold = 0.35

	// DefaultMinTokenLength drops query tokens shorter than this many runes.
	DefaultMinTokenLength = 2

	// epsilon stands in for a zero field score so exact hits still carry
	// their field weight into the product.
	epsilon = 2.220446049250313e-16
)

// Fields are the text fields a document exposes to the matcher. Empty fields
// are skipped. Name and Label are synonyms.
type Fields struct {
	Name        string
	Label       string
	Source      string
	Description string
}

// Document is anything that can be matched.
type Document interface {
	FuzzyFields() Fields
}

// Scorable is a document that can return a copy of itself carrying a score.
type Scorable[T any] interface {
	Document
	WithScore(score float64) T
}

// Weights are the relative importance of each field.
type Weights struct {
	Name        float64
	Label       float64
	Source      float64
	Description float64
}

// DefaultWeights favor names, then sources; descriptions only break ties.
var DefaultWeights = Weights{Name: 10, Label: 10, Source: 5, Description: 1}

func (w Weights) total() float64 {
	return w.Name + w.Label + w.Source + w.Description
}

// Options tune the matcher.
type Options struct {
	Threshold      float64
	MinTokenLength int
	Weights        Weights
}

// Option mutates [Options].
type Option func(*Options)

// WithThreshold overrides [DefaultThreshold].
func WithThreshold(threshold float64) Option {
	return func(o *Options) { o.Threshold = threshold }
}

// WithMinTokenLength overrides [DefaultMinTokenLength].
func WithMinTokenLength(n int) Option {
	return func(o *Options) { o.MinTokenLength = n }
}

// WithWeights overrides [DefaultWeights].
func WithWeights(weights Weights) Option {
	return func(o *Options) { o.Weights = weights }
}

func buildOptions(opts []Option) Options {
	options := Options{
		Threshold:      DefaultThreshold,
		MinTokenLength: DefaultMinTokenLength,
		Weights:        DefaultWeights,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Rank returns the items matching query, best first, windowed by page.
//
// A blank query disables matching: items are returned in their original order
// (windowed by page) without scores. Otherwise every returned element is a
// copy produced by WithScore, sorted by ascending score with ties kept in
// input order. A query whose tokens are all shorter than the minimum token
// length matches nothing.
func Rank[T Scorable[T]](query string, items []T, page pagination.Params, opts ...Option) []T {
	if strings.TrimSpace(query) == "" {
		return pagination.Slice(items, page)
	}

	options := buildOptions(opts)

	pattern := compilePattern(query, options.MinTokenLength)
	if pattern.empty() {
		return []T{}
	}

	type scored struct {
		item  T
		score float64
	}

	matches := make([]scored, 0)
	for _, item := range items {
		score, ok := pattern.scoreDocument(item.FuzzyFields(), options)
		if ok {
			matches = append(matches, scored{item: item, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	lo, hi := page.Bounds(len(matches))
	results := make([]T, 0, hi-lo)
	for _, match := range matches[lo:hi] {
		results = append(results, match.item.WithScore(match.score))
	}
	return results
}

// Score reports the distance between query and fields, and whether any
// field matched. It applies the same rules as [Rank].
func Score(query string, fields Fields, opts ...Option) (float64, bool) {
	options := buildOptions(opts)

	pattern := compilePattern(query, options.MinTokenLength)
	if pattern.empty() {
		return 1, false
	}
	return pattern.scoreDocument(fields, options)
}

type weightedField struct {
	text   string
	weight float64
}

func (p pattern) scoreDocument(fields Fields, options Options) (float64, bool) {
	totalWeight := options.Weights.total()
	if totalWeight <= 0 {
		return 1, false
	}

	candidates := [...]weightedField{
		{fields.Name, options.Weights.Name},
		{fields.Label, options.Weights.Label},
		{fields.Source, options.Weights.Source},
		{fields.Description, options.Weights.Description},
	}

	total := 1.0
	matched := false

	for _, candidate := range candidates {
		if candidate.weight <= 0 || strings.TrimSpace(candidate.text) == "" {
			continue
		}

		words := strings.Fields(fold(candidate.text))
		score := p.fieldScore(words)
		if score > options.Threshold {
			continue
		}

		matched = true
		exponent := candidate.weight / totalWeight * fieldNorm(len(words))
		total *= math.Pow(math.Max(score, epsilon), exponent)
	}

	if !matched {
		return 1, false
	}
	return total, true
}

// fieldNorm is 1/√n rounded to three decimals, n >= 1.
func fieldNorm(wordCount int) float64 {
	if wordCount < 1 {
		wordCount = 1
	}
	return math.Round(1000/math.Sqrt(float64(wordCount))) / 1000
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
