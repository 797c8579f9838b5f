package services

import (
	"context"
	"fmt"
	"yatube/internal/models"
	"yatube/internal/monitoring"
)

//go:generate mockgen -source=follows.go -destination=./follow_storage_mock.go -package=services
type FollowStorage interface {
	Create(ctx context.Context, userID, authorID uint) (bool, error)
	Delete(ctx context.Context, userID, authorID uint) (bool, error)
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	CountFollowers(ctx context.Context, authorID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

type AuthorFinder interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type FollowStats struct {
	Followers int64
	Following int64
}

type FollowService struct {
	follows FollowStorage
	authors AuthorFinder
}

func NewFollowService(follows FollowStorage, authors AuthorFinder) *FollowService {
	return &FollowService{
		follows: follows,
		authors: authors,
	}
}

// Follow adds the edge userID -> author. Following yourself or an author
// already followed changes nothing.
func (s *FollowService) Follow(ctx context.Context, userID uint, authorUsername string) (models.User, error) {
	author, err := s.authors.GetByUsername(ctx, authorUsername)
	if err != nil {
		return models.User{}, err
	}
	if author.ID == userID {
		return author, nil
	}

	created, err := s.follows.Create(ctx, userID, author.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("create follow: %w", err)
	}
	if created {
		monitoring.FollowEvents.WithLabelValues("follow").Inc()
	}
	return author, nil
}

// Unfollow removes the edge. A missing edge is not an error.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, authorUsername string) (models.User, error) {
	author, err := s.authors.GetByUsername(ctx, authorUsername)
	if err != nil {
		return models.User{}, err
	}

	deleted, err := s.follows.Delete(ctx, userID, author.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("delete follow: %w", err)
	}
	if deleted {
		monitoring.FollowEvents.WithLabelValues("unfollow").Inc()
	}
	return author, nil
}

// IsFollowing is false for anonymous viewers (userID 0) and for yourself.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 || userID == authorID {
		return false, nil
	}
	return s.follows.Exists(ctx, userID, authorID)
}

func (s *FollowService) Stats(ctx context.Context, userID uint) (FollowStats, error) {
	followers, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return FollowStats{}, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return FollowStats{}, fmt.Errorf("count following: %w", err)
	}
	return FollowStats{Followers: followers, Following: following}, nil
}
