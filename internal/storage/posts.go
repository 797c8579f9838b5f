package storage

import (
	"context"
	"fmt"
	"yatube/internal/models"
	"yatube/internal/pagination"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Zero value lists every post.
type PostFilter struct {
	GroupID    *uint
	AuthorID   *uint
	FollowerID *uint // posts by authors this user follows
}

type PostStorage struct {
	db *gorm.DB
}

func NewPostStorage(db *gorm.DB) *PostStorage {
	return &PostStorage{db: db}
}

func (s *PostStorage) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostStorage) GetByID(ctx context.Context, id uint) (models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	return post, notFound(err)
}

// UpdateContent writes the editable columns only. pub_date and author_id are
// never part of the update.
func (s *PostStorage) UpdateContent(ctx context.Context, post models.Post) error {
	return s.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

func (s *PostStorage) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Page returns one page of posts matching f, newest first.
func (s *PostStorage) Page(ctx context.Context, f PostFilter, rawPage string, perPage int) (pagination.Page[models.Post], error) {
	query := s.db.WithContext(ctx).Model(&models.Post{})

	if f.GroupID != nil {
		query = query.Where("group_id = ?", *f.GroupID)
	}
	if f.AuthorID != nil {
		query = query.Where("author_id = ?", *f.AuthorID)
	}
	if f.FollowerID != nil {
		followed, args, err := sq.
			Select("author_id").
			From("follows").
			Where(sq.Eq{"user_id": *f.FollowerID}).
			ToSql()
		if err != nil {
			return pagination.Page[models.Post]{}, fmt.Errorf("build followed authors query: %w", err)
		}
		query = query.Where("author_id IN (?)", gorm.Expr(followed, args...))
	}

	return pagination.Paginate[models.Post](query, rawPage, perPage, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Author").Preload("Group").Order("pub_date DESC, id DESC")
	})
}
