package mood

import (
	"context"
	"time"

	tweetie "github.com/anatolykoptev/go-tweetie"
)

// MaxPosts bounds how many posts FetchTweets consumes per account.
const MaxPosts = 100

// Platform is the subset of the Twitter client the pipeline reads from.
// *tweetie.Client implements it.
type Platform interface {
	LookupUser(ctx context.Context, handle string) (*tweetie.User, error)
	UserTimeline(ctx context.Context, handle string) *tweetie.Cursor[*tweetie.Tweet]
	Following(ctx context.Context, handle string) *tweetie.Cursor[*tweetie.User]
}

var _ Platform = (*tweetie.Client)(nil)

// Post is one scored timeline entry.
type Post struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created"`
	RepostCount int       `json:"retweeted"`
	Text        string    `json:"text"`
	Hashtags    []string  `json:"hashtags"`
	URLs        []string  `json:"urls"`
	Mentions    []string  `json:"mentions"`
	Score       float64   `json:"score"`
	Color       string    `json:"color,omitempty"`
}

// TweetBatch is the result of FetchTweets. Posts keep retrieval order, newest first.
type TweetBatch struct {
	Owner               string `json:"user"`
	HistoricalPostCount int    `json:"count"`
	Posts               []Post `json:"tweets"`
}

// FollowedAccount is one entry of an account's follow list.
type FollowedAccount struct {
	DisplayName string    `json:"name"`
	Handle      string    `json:"screen_name"`
	Followers   int       `json:"followers"`
	CreatedAt   time.Time `json:"created"` // date only, midnight UTC
	ImageURL    string    `json:"image"`
}

// TimelineReport is what the "posts for account" view shows.
type TimelineReport struct {
	TweetBatch
	MedianScore *float64 `json:"median_score"` // nil when the account has no posts
}

// FollowingReport is what the "followed accounts" view shows.
type FollowingReport struct {
	Owner    string            `json:"user"`
	Followed []FollowedAccount `json:"followed"`
}
