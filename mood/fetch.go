package mood

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-tweetie/sentiment"
)

// newScorer builds the analyzer shared by every post of one FetchTweets call.
var newScorer = sentiment.NewScorer

// FetchTweets reads up to MaxPosts of the account's most recent posts and scores each one.
// The account is resolved first so an unknown handle fails with tweetie.ErrUserNotFound
// before any timeline page is requested.
func FetchTweets(ctx context.Context, p Platform, handle string) (*TweetBatch, error) {
	owner, err := p.LookupUser(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("fetch tweets %s: %w", handle, err)
	}

	tweets, err := p.UserTimeline(ctx, handle).Take(MaxPosts)
	if err != nil {
		return nil, fmt.Errorf("fetch tweets %s: %w", handle, err)
	}

	scorer := newScorer()
	posts := make([]Post, 0, len(tweets))
	for _, t := range tweets {
		posts = append(posts, Post{
			ID:          t.ID,
			CreatedAt:   t.CreatedAt,
			RepostCount: t.Retweets,
			Text:        t.Text,
			Hashtags:    t.Hashtags,
			URLs:        t.URLs,
			Mentions:    t.Mentions,
			Score:       scorer.Score(t.Text),
		})
	}

	slog.Debug("tweets fetched", slog.String("user", handle), slog.Int("posts", len(posts)))
	return &TweetBatch{
		Owner:               handle,
		HistoricalPostCount: owner.TweetCount,
		Posts:               posts,
	}, nil
}

// FetchFollowing reads the account's whole follow list, in platform order.
func FetchFollowing(ctx context.Context, p Platform, handle string) ([]FollowedAccount, error) {
	users, err := p.Following(ctx, handle).Take(0)
	if err != nil {
		return nil, fmt.Errorf("fetch following %s: %w", handle, err)
	}

	accounts := make([]FollowedAccount, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, FollowedAccount{
			DisplayName: u.DisplayName,
			Handle:      u.Handle,
			Followers:   u.Followers,
			CreatedAt:   dateOnly(u.CreatedAt),
			ImageURL:    u.ImageURL,
		})
	}

	slog.Debug("following fetched", slog.String("user", handle), slog.Int("accounts", len(accounts)))
	return accounts, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
