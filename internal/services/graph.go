package services

//go:generate mockgen -source=graph.go -destination=mock_graph.go -package=services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// ErrCannotFollowSelf is returned when a user tries to follow or unfollow themselves.
var ErrCannotFollowSelf = errors.New("you cannot follow yourself")

// FollowWriter adds and removes follow edges. Both operations are idempotent.
type FollowWriter interface {
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
}

// FollowReader answers membership and cardinality questions about follow edges.
type FollowReader interface {
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	FollowersCount(ctx context.Context, userID int64) (int64, error)
	FollowingCount(ctx context.Context, userID int64) (int64, error)
}

// FollowCountCache caches follower and following counts.
type FollowCountCache interface {
	GetFollowersCount(ctx context.Context, userID int64) (int64, error)
	SetFollowersCount(ctx context.Context, userID, n int64) error
	GetFollowingCount(ctx context.Context, userID int64) (int64, error)
	SetFollowingCount(ctx context.Context, userID, n int64) error
	Invalidate(ctx context.Context, userIDs ...int64) error
}

// SocialGraphService owns the follower relation between users.
type SocialGraphService struct {
	writer   FollowWriter
	reader   FollowReader
	cache    FollowCountCache
	onCommit CommitHook
}

// NewSocialGraphService creates a SocialGraphService. cache and onCommit may
// be nil. Cached counts are dropped once the edge change is committed, so a
// read racing the transaction cannot pin a stale count.
func NewSocialGraphService(writer FollowWriter, reader FollowReader, cache FollowCountCache, onCommit CommitHook) *SocialGraphService {
	return &SocialGraphService{writer: writer, reader: reader, cache: cache, onCommit: onCommit}
}

// Follow makes followerID follow followedID.
func (s *SocialGraphService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrCannotFollowSelf
	}
	if err := s.writer.Follow(ctx, followerID, followedID); err != nil {
		logger.Log.Errorw("failed to follow", "follower_id", followerID, "followed_id", followedID, "err", err)
		return err
	}
	s.invalidate(ctx, followerID, followedID)
	return nil
}

// Unfollow removes the edge from followerID to followedID.
func (s *SocialGraphService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrCannotFollowSelf
	}
	if err := s.writer.Unfollow(ctx, followerID, followedID); err != nil {
		logger.Log.Errorw("failed to unfollow", "follower_id", followerID, "followed_id", followedID, "err", err)
		return err
	}
	s.invalidate(ctx, followerID, followedID)
	return nil
}

// IsFollowing reports whether followerID follows followedID.
func (s *SocialGraphService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.reader.IsFollowing(ctx, followerID, followedID)
}

// FollowersCount returns how many users follow userID.
func (s *SocialGraphService) FollowersCount(ctx context.Context, userID int64) (int64, error) {
	if s.cache != nil {
		if n, err := s.cache.GetFollowersCount(ctx, userID); err == nil {
			return n, nil
		}
	}

	n, err := s.reader.FollowersCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetFollowersCount(ctx, userID, n); err != nil {
			logger.Log.Warnw("failed to cache followers count", "user_id", userID, "err", err)
		}
	}
	return n, nil
}

// FollowingCount returns how many users userID follows.
func (s *SocialGraphService) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	if s.cache != nil {
		if n, err := s.cache.GetFollowingCount(ctx, userID); err == nil {
			return n, nil
		}
	}

	n, err := s.reader.FollowingCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetFollowingCount(ctx, userID, n); err != nil {
			logger.Log.Warnw("failed to cache following count", "user_id", userID, "err", err)
		}
	}
	return n, nil
}

func (s *SocialGraphService) invalidate(ctx context.Context, userIDs ...int64) {
	if s.cache == nil {
		return
	}
	drop := func(ctx context.Context) {
		if err := s.cache.Invalidate(ctx, userIDs...); err != nil {
			logger.Log.Warnw("failed to invalidate follow counts", "user_ids", userIDs, "err", err)
		}
	}
	if s.onCommit != nil {
		s.onCommit(ctx, drop)
	} else {
		drop(ctx)
	}
}
