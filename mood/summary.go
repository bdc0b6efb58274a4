package mood

import (
	"cmp"
	"errors"
	"slices"

	"github.com/anatolykoptev/go-tweetie/gradient"
)

// ErrNoScores is returned by Median for an empty input.
var ErrNoScores = errors.New("median of no scores")

// Median returns the middle score, or the mean of the two middle scores for an even count.
// The input is not modified.
func Median(scores []float64) (float64, error) {
	n := len(scores)
	if n == 0 {
		return 0, ErrNoScores
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// SortByFollowers returns the accounts ordered by follower count, highest first.
// Accounts with equal counts keep their input order.
func SortByFollowers(accounts []FollowedAccount) []FollowedAccount {
	sorted := slices.Clone(accounts)
	slices.SortStableFunc(sorted, func(a, b FollowedAccount) int {
		return cmp.Compare(b.Followers, a.Followers)
	})
	return sorted
}

// Colorize sets each post's Color from its Score.
func Colorize(posts []Post) {
	for i := range posts {
		posts[i].Color = gradient.Color(posts[i].Score)
	}
}

// Scores returns the posts' scores in order.
func Scores(posts []Post) []float64 {
	out := make([]float64, len(posts))
	for i, p := range posts {
		out[i] = p.Score
	}
	return out
}
