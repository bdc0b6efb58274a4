// Package sentiment scores short texts with the VADER lexicon.
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"
)

// Scorer wraps one VADER analyzer. Building the analyzer loads the lexicon, so a
// Scorer is created once per batch and reused for every text in it.
// A Scorer is not safe for concurrent use.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer builds a Scorer with a fresh analyzer.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound polarity of text, in [-1, 1].
func (s *Scorer) Score(text string) float64 {
	return clamp(s.analyzer.PolarityScores(text).Compound)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}
