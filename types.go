package tweetie

import "time"

// User represents a Twitter/X account profile as returned by the v1.1 API.
type User struct {
	ID          string
	Handle      string
	DisplayName string
	Followers   int
	Following   int
	TweetCount  int
	CreatedAt   time.Time
	ImageURL    string
	Protected   bool
}

// Tweet represents a single status from a user timeline.
type Tweet struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
	Retweets  int
	Likes     int
	Hashtags  []string // entity text without the leading '#'
	URLs      []string // t.co links as they appear in the text
	Mentions  []string // screen names without the leading '@'
	Author    *User
}
