package storage

import (
	"context"
	"yatube/internal/models"

	"gorm.io/gorm"
)

type GroupStorage struct {
	db *gorm.DB
}

func NewGroupStorage(db *gorm.DB) *GroupStorage {
	return &GroupStorage{db: db}
}

func (s *GroupStorage) Create(ctx context.Context, group *models.Group) error {
	return s.db.WithContext(ctx).Create(group).Error
}

func (s *GroupStorage) GetByID(ctx context.Context, id uint) (models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).First(&group, id).Error
	return group, notFound(err)
}

func (s *GroupStorage) GetBySlug(ctx context.Context, slug string) (models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	return group, notFound(err)
}

func (s *GroupStorage) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).Order("title ASC").Find(&groups).Error
	return groups, err
}

// DeleteBySlug removes the group; its posts stay and lose the group reference.
func (s *GroupStorage) DeleteBySlug(ctx context.Context, slug string) error {
	res := s.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Group{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
