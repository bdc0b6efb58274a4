package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	tweetie "github.com/anatolykoptev/go-tweetie"
	"github.com/anatolykoptev/go-tweetie/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTweets(t *testing.T) {
	p := &fakePlatform{
		users:  map[string]*tweetie.User{"jack": {Handle: "jack", TweetCount: 29000}},
		tweets: makeTweets("I love this wonderful day!", "just setting up my twttr", "This is awful and I hate it."),
	}

	batch, err := FetchTweets(context.Background(), p, "jack")
	require.NoError(t, err)
	assert.Equal(t, "jack", batch.Owner)
	assert.Equal(t, 29000, batch.HistoricalPostCount)
	require.Len(t, batch.Posts, 3)

	first := batch.Posts[0]
	assert.Equal(t, "1000", first.ID)
	assert.Equal(t, 0, first.RepostCount)
	assert.Equal(t, []string{"tag0"}, first.Hashtags)
	assert.Equal(t, []string{"friend"}, first.Mentions)
	assert.Greater(t, first.Score, 0.0)
	assert.Less(t, batch.Posts[2].Score, 0.0)
	assert.Empty(t, first.Color, "color is assigned later")

	assert.True(t, batch.Posts[0].CreatedAt.After(batch.Posts[1].CreatedAt), "retrieval order is kept")
}

func TestFetchTweets_BoundedAt100(t *testing.T) {
	p := &fakePlatform{
		users:    map[string]*tweetie.User{"prolific": {Handle: "prolific", TweetCount: 50000}},
		tweets:   manyTweets(450),
		pageSize: 30,
	}

	batch, err := FetchTweets(context.Background(), p, "prolific")
	require.NoError(t, err)
	assert.Len(t, batch.Posts, MaxPosts)
	assert.Equal(t, 4, p.timelinePages, "no page past the one holding post 100")
	assert.Equal(t, "1000", batch.Posts[0].ID)
	assert.Equal(t, "901", batch.Posts[99].ID)
}

func TestFetchTweets_OneScorerPerCall(t *testing.T) {
	built := 0
	orig := newScorer
	newScorer = func() *sentiment.Scorer {
		built++
		return orig()
	}
	t.Cleanup(func() { newScorer = orig })

	p := &fakePlatform{
		users:    map[string]*tweetie.User{"prolific": {Handle: "prolific"}},
		tweets:   manyTweets(150),
		pageSize: 40,
	}

	batch, err := FetchTweets(context.Background(), p, "prolific")
	require.NoError(t, err)
	require.Len(t, batch.Posts, MaxPosts)
	assert.Equal(t, 1, built)

	_, err = FetchTweets(context.Background(), p, "prolific")
	require.NoError(t, err)
	assert.Equal(t, 2, built, "each call gets its own scorer")
}

func TestFetchTweets_FewerThanBound(t *testing.T) {
	p := &fakePlatform{
		users:  map[string]*tweetie.User{"quiet": {Handle: "quiet", TweetCount: 7}},
		tweets: manyTweets(7),
	}
	batch, err := FetchTweets(context.Background(), p, "quiet")
	require.NoError(t, err)
	assert.Len(t, batch.Posts, 7)
}

func TestFetchTweets_NoPosts(t *testing.T) {
	p := &fakePlatform{users: map[string]*tweetie.User{"new": {Handle: "new", TweetCount: 0}}}
	batch, err := FetchTweets(context.Background(), p, "new")
	require.NoError(t, err)
	assert.Empty(t, batch.Posts)
	assert.Equal(t, 0, batch.HistoricalPostCount)
}

func TestFetchTweets_UnknownUser(t *testing.T) {
	p := &fakePlatform{tweets: manyTweets(3)}
	batch, err := FetchTweets(context.Background(), p, "ghost")
	assert.Nil(t, batch)
	assert.ErrorIs(t, err, tweetie.ErrUserNotFound)
}

func TestFetchTweets_ErrorMidPagination(t *testing.T) {
	boom := &tweetie.APIError{Endpoint: "UserTimeline", Status: 429}
	p := &fakePlatform{
		users:          map[string]*tweetie.User{"jack": {Handle: "jack"}},
		tweets:         manyTweets(80),
		pageSize:       20,
		failTimelineAt: 3,
		failErr:        boom,
	}
	batch, err := FetchTweets(context.Background(), p, "jack")
	assert.Nil(t, batch, "partial batches are discarded")
	assert.True(t, errors.Is(err, boom))
}

func TestFetchFollowing(t *testing.T) {
	created := time.Date(2009, 6, 2, 20, 12, 29, 0, time.UTC)
	p := &fakePlatform{
		following: []*tweetie.User{
			{DisplayName: "A", Handle: "a", Followers: 10, CreatedAt: created, ImageURL: "https://img/a"},
			{DisplayName: "B", Handle: "b", Followers: 500},
			{DisplayName: "C", Handle: "c", Followers: 500},
		},
		pageSize: 2,
	}

	accounts, err := FetchFollowing(context.Background(), p, "jack")
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{accounts[0].Handle, accounts[1].Handle, accounts[2].Handle})
	assert.Equal(t, time.Date(2009, 6, 2, 0, 0, 0, 0, time.UTC), accounts[0].CreatedAt)
	assert.Equal(t, "https://img/a", accounts[0].ImageURL)
	assert.Equal(t, "A", accounts[0].DisplayName)
	assert.Equal(t, 2, p.followingPages)
}

func TestFetchFollowing_Unbounded(t *testing.T) {
	users := make([]*tweetie.User, 1234)
	for i := range users {
		users[i] = &tweetie.User{Handle: "u", Followers: i}
	}
	p := &fakePlatform{following: users, pageSize: 200}

	accounts, err := FetchFollowing(context.Background(), p, "hub")
	require.NoError(t, err)
	assert.Len(t, accounts, 1234)
}

func TestFetchFollowing_ErrorDiscardsPartial(t *testing.T) {
	boom := errors.New("connection reset")
	p := &fakePlatform{
		following:       []*tweetie.User{{Handle: "a"}, {Handle: "b"}, {Handle: "c"}},
		pageSize:        1,
		failFollowingAt: 2,
		failErr:         boom,
	}
	accounts, err := FetchFollowing(context.Background(), p, "jack")
	assert.Nil(t, accounts)
	assert.ErrorIs(t, err, boom)
}
