// Package gradient maps polarity scores onto a fixed red-to-green color scale.
package gradient

import (
	"math"
	"slices"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Steps is the number of colors in the palette.
const Steps = 100

// Endpoints of the scale: index 0 and index Steps-1.
const (
	From = "#ff0000"
	To   = "#008000"
)

// palette is built on first use and never modified afterwards, so concurrent
// readers need no locking.
var palette = sync.OnceValue(func() []string {
	return build(From, To, Steps)
})

// build interpolates n colors linearly in HSL space from one hex color to another.
func build(from, to string, n int) []string {
	a, err := colorful.Hex(from)
	if err != nil {
		panic("gradient: bad start color " + from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		panic("gradient: bad end color " + to)
	}
	h1, s1, l1 := a.Hsl()
	h2, s2, l2 := b.Hsl()

	out := make([]string, n)
	for i := range out {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		out[i] = colorful.Hsl(h1+(h2-h1)*f, s1+(s2-s1)*f, l1+(l2-l1)*f).Hex()
	}
	return out
}

// Index maps a score in [-1, 1] to a palette index: floor(Steps*(score+1)/2).
// A score of exactly 1 lands on the last index instead of one past it; scores
// outside the range are clamped and NaN maps to the middle.
func Index(score float64) int {
	if math.IsNaN(score) {
		score = 0
	}
	score = max(-1, min(1, score))
	i := int(math.Floor(Steps * (score + 1) / 2))
	return max(0, min(Steps-1, i))
}

// Color returns the hex color for a score.
func Color(score float64) string {
	return palette()[Index(score)]
}

// Palette returns a copy of the full scale, red first.
func Palette() []string {
	return slices.Clone(palette())
}
