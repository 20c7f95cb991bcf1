package services

//go:generate mockgen -source=profile.go -destination=mock_profile.go -package=services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/repositories"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("please use a different username")
	ErrAboutMeTooLong = errors.New("about me must be at most 140 characters")
)

// ProfileWriter updates profile fields.
type ProfileWriter interface {
	UpdateProfile(ctx context.Context, id int64, username string, aboutMe *string) error
	TouchLastSeen(ctx context.Context, id int64, at time.Time) error
}

// GraphReader provides the social figures shown on a profile.
type GraphReader interface {
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	FollowersCount(ctx context.Context, userID int64) (int64, error)
	FollowingCount(ctx context.Context, userID int64) (int64, error)
}

// ProfileService reads and edits user profiles.
type ProfileService struct {
	reader UserReader
	writer ProfileWriter
	graph  GraphReader
}

func NewProfileService(reader UserReader, writer ProfileWriter, graph GraphReader) *ProfileService {
	return &ProfileService{reader: reader, writer: writer, graph: graph}
}

// GetUser returns the named user or ErrUserNotFound.
func (s *ProfileService) GetUser(ctx context.Context, username string) (*models.UserDB, error) {
	user, err := s.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetProfile returns the named user's profile as seen by viewerID.
func (s *ProfileService) GetProfile(ctx context.Context, viewerID int64, username string) (*models.Profile, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{User: user, IsSelf: user.ID == viewerID}

	if profile.FollowersCount, err = s.graph.FollowersCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.graph.FollowingCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if !profile.IsSelf {
		if profile.IsFollowing, err = s.graph.IsFollowing(ctx, viewerID, user.ID); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// EditProfile changes userID's username and about me text.
func (s *ProfileService) EditProfile(ctx context.Context, userID int64, username string, aboutMe *string) (*models.UserDB, error) {
	if aboutMe != nil && utf8.RuneCountInString(*aboutMe) > models.MaxPostLength {
		return nil, ErrAboutMeTooLong
	}

	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if username != user.Username {
		other, err := s.reader.GetByUsername(ctx, username)
		if err != nil {
			logger.Log.Errorw("failed to get user", "username", username, "err", err)
			return nil, err
		}
		if other != nil {
			return nil, ErrUsernameTaken
		}
	}

	if err := s.writer.UpdateProfile(ctx, userID, username, aboutMe); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrUsernameTaken
		}
		logger.Log.Errorw("failed to update profile", "user_id", userID, "err", err)
		return nil, err
	}

	user.Username = username
	user.AboutMe = aboutMe
	return user, nil
}

// TouchLastSeen records that userID is active now.
func (s *ProfileService) TouchLastSeen(ctx context.Context, userID int64) error {
	if err := s.writer.TouchLastSeen(ctx, userID, time.Now().UTC()); err != nil {
		logger.Log.Errorw("failed to update last seen", "user_id", userID, "err", err)
		return err
	}
	return nil
}
