// Package vocabulary turns chapter text into word candidates: it builds the
// prompt, asks a Generator, and validates what comes back.
package vocabulary

import (
	"context"
	"math"
	"strings"
)

const (
	MinWordsToExtract = 1
	MaxWordsToExtract = 50

	minRecommendedWords = 5
	wordsPerTextWord    = 0.05
)

// Generator produces raw model text for a prompt.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Extractor runs the extraction pipeline. Its output is never persisted here.
type Extractor struct {
	generator Generator
}

// NewExtractor creates an Extractor backed by generator.
func NewExtractor(generator Generator) *Extractor {
	return &Extractor{generator: generator}
}

// Extract validates params before any upstream call, then returns the
// candidates parsed from the model's answer.
func (e *Extractor) Extract(ctx context.Context, params PromptParams) ([]Candidate, error) {
	prompt, err := BuildPrompt(params)
	if err != nil {
		return nil, err
	}

	raw, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseCandidates(raw)
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// RecommendWordsToExtract suggests about five words per hundred words of
// text, kept within [5, MaxWordsToExtract].
func RecommendWordsToExtract(wordCount int) int {
	n := int(math.RoundToEven(float64(wordCount) * wordsPerTextWord))
	if n < minRecommendedWords {
		return minRecommendedWords
	}
	if n > MaxWordsToExtract {
		return MaxWordsToExtract
	}
	return n
}
