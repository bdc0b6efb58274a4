package mood

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	tweetie "github.com/anatolykoptev/go-tweetie"
)

// fakePlatform serves canned pages and records how many pages each listing pulled.
type fakePlatform struct {
	users     map[string]*tweetie.User
	tweets    []*tweetie.Tweet
	following []*tweetie.User
	pageSize  int

	failTimelineAt  int // 1-based page that fails, 0 = never
	failFollowingAt int
	failErr         error

	timelinePages  int
	followingPages int
}

func (f *fakePlatform) LookupUser(_ context.Context, handle string) (*tweetie.User, error) {
	u, ok := f.users[handle]
	if !ok {
		return nil, fmt.Errorf("UsersShow: %w", tweetie.ErrUserNotFound)
	}
	return u, nil
}

func (f *fakePlatform) UserTimeline(ctx context.Context, _ string) *tweetie.Cursor[*tweetie.Tweet] {
	return tweetie.NewCursor(ctx, pager(f.tweets, f.size(), &f.timelinePages, f.failTimelineAt, f.failErr))
}

func (f *fakePlatform) Following(ctx context.Context, _ string) *tweetie.Cursor[*tweetie.User] {
	return tweetie.NewCursor(ctx, pager(f.following, f.size(), &f.followingPages, f.failFollowingAt, f.failErr))
}

func (f *fakePlatform) size() int {
	if f.pageSize == 0 {
		return 20
	}
	return f.pageSize
}

func pager[T any](items []T, size int, pages *int, failAt int, failErr error) tweetie.PageFunc[T] {
	return func(_ context.Context, cursor string) (tweetie.Page[T], error) {
		*pages++
		if failAt > 0 && *pages == failAt {
			return tweetie.Page[T]{}, failErr
		}
		start := 0
		if cursor != "" {
			start, _ = strconv.Atoi(cursor)
		}
		end := min(start+size, len(items))
		next := ""
		if end < len(items) {
			next = strconv.Itoa(end)
		}
		return tweetie.Page[T]{Items: slices.Clone(items[start:end]), Next: next}, nil
	}
}

func makeTweets(texts ...string) []*tweetie.Tweet {
	base := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*tweetie.Tweet, len(texts))
	for i, text := range texts {
		out[i] = &tweetie.Tweet{
			ID:        strconv.Itoa(1000 - i),
			Text:      text,
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
			Retweets:  i,
			Hashtags:  []string{"tag" + strconv.Itoa(i)},
			URLs:      []string{},
			Mentions:  []string{"friend"},
		}
	}
	return out
}

func manyTweets(n int) []*tweetie.Tweet {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = "post number " + strconv.Itoa(i)
	}
	return makeTweets(texts...)
}
