package mood

import (
	"context"
	"log/slog"
	"time"
)

// Observer receives per-report measurements. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveReport(report string, d time.Duration, err error)
	PostsScored(n int)
}

// Service runs the two report operations against one shared platform client.
type Service struct {
	platform Platform
	observer Observer
}

// NewService creates a Service. observer may be nil.
func NewService(p Platform, observer Observer) *Service {
	return &Service{platform: p, observer: observer}
}

// Timeline fetches, scores and colors the account's recent posts and computes their median score.
func (s *Service) Timeline(ctx context.Context, handle string) (report *TimelineReport, err error) {
	defer s.observe("timeline", time.Now(), &err)

	batch, err := FetchTweets(ctx, s.platform, handle)
	if err != nil {
		return nil, err
	}
	Colorize(batch.Posts)

	report = &TimelineReport{TweetBatch: *batch}
	if median, err := Median(Scores(batch.Posts)); err == nil {
		report.MedianScore = &median
	}
	if s.observer != nil {
		s.observer.PostsScored(len(batch.Posts))
	}
	return report, nil
}

// Following fetches the account's follow list ranked by follower count.
func (s *Service) Following(ctx context.Context, handle string) (report *FollowingReport, err error) {
	defer s.observe("following", time.Now(), &err)

	accounts, err := FetchFollowing(ctx, s.platform, handle)
	if err != nil {
		return nil, err
	}
	return &FollowingReport{Owner: handle, Followed: SortByFollowers(accounts)}, nil
}

func (s *Service) observe(report string, start time.Time, err *error) {
	d := time.Since(start)
	if *err != nil {
		slog.Info("report failed", slog.String("report", report), slog.Duration("took", d), slog.Any("error", *err))
	}
	if s.observer != nil {
		s.observer.ObserveReport(report, d, *err)
	}
}
