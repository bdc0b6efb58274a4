package tweetie

import (
	"encoding/json"
	"fmt"
	"time"
)

// createdAtLayout is the v1.1 timestamp format, e.g. "Wed Oct 10 20:19:24 +0000 2018".
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

type userJSON struct {
	IDStr                string `json:"id_str"`
	Name                 string `json:"name"`
	ScreenName           string `json:"screen_name"`
	FollowersCount       int    `json:"followers_count"`
	FriendsCount         int    `json:"friends_count"`
	StatusesCount        int    `json:"statuses_count"`
	CreatedAt            string `json:"created_at"`
	ProfileImageURL      string `json:"profile_image_url"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
	Protected            bool   `json:"protected"`
}

type tweetJSON struct {
	IDStr         string `json:"id_str"`
	CreatedAt     string `json:"created_at"`
	Text          string `json:"text"`
	FullText      string `json:"full_text"`
	RetweetCount  int    `json:"retweet_count"`
	FavoriteCount int    `json:"favorite_count"`
	Entities      struct {
		Hashtags []struct {
			Text string `json:"text"`
		} `json:"hashtags"`
		URLs []struct {
			URL string `json:"url"`
		} `json:"urls"`
		UserMentions []struct {
			ScreenName string `json:"screen_name"`
		} `json:"user_mentions"`
	} `json:"entities"`
	User *userJSON `json:"user"`
}

// parseUser parses a users/show response.
func parseUser(body []byte) (*User, error) {
	var raw userJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return convertUser(raw)
}

// parseTimeline parses a statuses/user_timeline response.
func parseTimeline(body []byte) ([]*Tweet, error) {
	var raw []tweetJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal timeline: %w", err)
	}
	tweets := make([]*Tweet, 0, len(raw))
	for _, r := range raw {
		t, err := convertTweet(r)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

// parseFriendsPage parses a friends/list response. The returned cursor is empty
// when the listing is exhausted (next_cursor_str "0").
func parseFriendsPage(body []byte) ([]*User, string, error) {
	var raw struct {
		Users         []userJSON `json:"users"`
		NextCursorStr string     `json:"next_cursor_str"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, "", fmt.Errorf("unmarshal friends list: %w", err)
	}
	users := make([]*User, 0, len(raw.Users))
	for _, r := range raw.Users {
		u, err := convertUser(r)
		if err != nil {
			return nil, "", err
		}
		users = append(users, u)
	}
	next := raw.NextCursorStr
	if next == "0" {
		next = ""
	}
	return users, next, nil
}

func convertUser(r userJSON) (*User, error) {
	if r.IDStr == "" {
		return nil, fmt.Errorf("empty user id_str (screen_name=%q)", r.ScreenName)
	}
	createdAt, err := parseCreatedAt(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", r.ScreenName, err)
	}
	image := r.ProfileImageURLHTTPS
	if image == "" {
		image = r.ProfileImageURL
	}
	return &User{
		ID:          r.IDStr,
		Handle:      r.ScreenName,
		DisplayName: r.Name,
		Followers:   r.FollowersCount,
		Following:   r.FriendsCount,
		TweetCount:  r.StatusesCount,
		CreatedAt:   createdAt,
		ImageURL:    image,
		Protected:   r.Protected,
	}, nil
}

func convertTweet(r tweetJSON) (*Tweet, error) {
	if r.IDStr == "" {
		return nil, fmt.Errorf("empty tweet id_str")
	}
	createdAt, err := parseCreatedAt(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("tweet %s: %w", r.IDStr, err)
	}

	text := r.FullText
	if text == "" {
		text = r.Text
	}

	t := &Tweet{
		ID:        r.IDStr,
		Text:      text,
		CreatedAt: createdAt,
		Retweets:  r.RetweetCount,
		Likes:     r.FavoriteCount,
		Hashtags:  make([]string, 0, len(r.Entities.Hashtags)),
		URLs:      make([]string, 0, len(r.Entities.URLs)),
		Mentions:  make([]string, 0, len(r.Entities.UserMentions)),
	}
	for _, h := range r.Entities.Hashtags {
		t.Hashtags = append(t.Hashtags, h.Text)
	}
	for _, u := range r.Entities.URLs {
		t.URLs = append(t.URLs, u.URL)
	}
	for _, m := range r.Entities.UserMentions {
		t.Mentions = append(t.Mentions, m.ScreenName)
	}
	if r.User != nil {
		author, err := convertUser(*r.User)
		if err == nil {
			t.Author = author
			t.AuthorID = author.ID
		}
	}
	return t, nil
}

func parseCreatedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(createdAtLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}
