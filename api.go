package tweetie

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// LookupUser fetches a user profile by handle. A handle that does not resolve
// returns an error matching ErrUserNotFound.
func (c *Client) LookupUser(ctx context.Context, handle string) (*User, error) {
	body, err := c.doGET(ctx, opUsersShow, url.Values{"screen_name": {handle}})
	if err != nil {
		return nil, fmt.Errorf("UsersShow %s: %w", handle, err)
	}
	u, err := parseUser(body)
	if err != nil {
		return nil, fmt.Errorf("parse UsersShow %s: %w", handle, err)
	}
	return u, nil
}

// UserTimeline returns a lazy cursor over a user's tweets, newest first.
// Pages are walked with max_id; an empty page ends the listing.
func (c *Client) UserTimeline(ctx context.Context, handle string) *Cursor[*Tweet] {
	return NewCursor(ctx, func(ctx context.Context, cursor string) (Page[*Tweet], error) {
		params := url.Values{"screen_name": {handle}}
		if cursor != "" {
			params.Set("max_id", cursor)
		}
		body, err := c.doGET(ctx, opUserTimeline, params)
		if err != nil {
			return Page[*Tweet]{}, fmt.Errorf("UserTimeline %s: %w", handle, err)
		}
		tweets, err := parseTimeline(body)
		if err != nil {
			return Page[*Tweet]{}, fmt.Errorf("parse UserTimeline %s: %w", handle, err)
		}
		return Page[*Tweet]{Items: tweets, Next: nextMaxID(tweets)}, nil
	})
}

// Following returns a lazy cursor over the accounts a user follows.
func (c *Client) Following(ctx context.Context, handle string) *Cursor[*User] {
	return NewCursor(ctx, func(ctx context.Context, cursor string) (Page[*User], error) {
		if cursor == "" {
			cursor = "-1"
		}
		params := url.Values{"screen_name": {handle}, "cursor": {cursor}}
		body, err := c.doGET(ctx, opFriendsList, params)
		if err != nil {
			return Page[*User]{}, fmt.Errorf("FriendsList %s: %w", handle, err)
		}
		users, next, err := parseFriendsPage(body)
		if err != nil {
			return Page[*User]{}, fmt.Errorf("parse FriendsList %s: %w", handle, err)
		}
		return Page[*User]{Items: users, Next: next}, nil
	})
}

// nextMaxID returns the max_id that continues below the oldest tweet in the page.
func nextMaxID(tweets []*Tweet) string {
	var lowest uint64
	for _, t := range tweets {
		id, err := strconv.ParseUint(t.ID, 10, 64)
		if err != nil {
			continue
		}
		if lowest == 0 || id < lowest {
			lowest = id
		}
	}
	if lowest <= 1 {
		return ""
	}
	return strconv.FormatUint(lowest-1, 10)
}
