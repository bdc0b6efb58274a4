package tweetie

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the v1.1 REST API host.
const DefaultBaseURL = "https://api.twitter.com"

// Endpoint names double as rate-limit buckets and metrics labels.
const (
	opUsersShow    = "UsersShow"
	opUserTimeline = "UserTimeline"
	opFriendsList  = "FriendsList"
)

// pageSize is the largest page each listing endpoint accepts.
const (
	timelinePageSize = 200
	friendsPageSize  = 200
)

// Endpoint holds the REST path and the fixed query parameters of an operation.
type Endpoint struct {
	Name   string
	Path   string
	Params map[string]string
}

// URL returns the full URL for this endpoint against base, without a query.
func (e Endpoint) URL(base string) string {
	return strings.TrimRight(base, "/") + e.Path
}

// query merges the fixed parameters with per-call ones.
func (e Endpoint) query(extra url.Values) url.Values {
	q := url.Values{}
	for k, v := range e.Params {
		q.Set(k, v)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return q
}

// lookupEndpoint returns the endpoint for a named operation, or an error if unknown.
func lookupEndpoint(operation string) (Endpoint, error) {
	ep, ok := Endpoints[operation]
	if !ok {
		return Endpoint{}, fmt.Errorf("unknown operation: %s", operation)
	}
	return ep, nil
}

// Endpoints maps operation names to their v1.1 paths and fixed parameters.
var Endpoints = map[string]Endpoint{
	opUsersShow: {
		Name: opUsersShow,
		Path: "/1.1/users/show.json",
		Params: map[string]string{
			"include_entities": "false",
		},
	},
	opUserTimeline: {
		Name: opUserTimeline,
		Path: "/1.1/statuses/user_timeline.json",
		Params: map[string]string{
			"count":       fmt.Sprint(timelinePageSize),
			"tweet_mode":  "extended",
			"include_rts": "true",
			"trim_user":   "false",
		},
	},
	opFriendsList: {
		Name: opFriendsList,
		Path: "/1.1/friends/list.json",
		Params: map[string]string{
			"count":                 fmt.Sprint(friendsPageSize),
			"skip_status":           "true",
			"include_user_entities": "false",
		},
	},
}
