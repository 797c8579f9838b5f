package storage

import (
	"context"
	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowStorage struct {
	db *gorm.DB
}

func NewFollowStorage(db *gorm.DB) *FollowStorage {
	return &FollowStorage{db: db}
}

// Create inserts the edge. An existing edge is left alone and reported as
// created=false.
func (s *FollowStorage) Create(ctx context.Context, userID, authorID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{UserID: userID, AuthorID: authorID})
	return res.RowsAffected > 0, res.Error
}

// Delete removes the edge and reports whether one existed.
func (s *FollowStorage) Delete(ctx context.Context, userID, authorID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (s *FollowStorage) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (s *FollowStorage) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (s *FollowStorage) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
