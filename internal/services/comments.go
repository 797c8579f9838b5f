package services

import (
	"context"
	"fmt"
	"strings"
	"yatube/internal/models"
	"yatube/internal/monitoring"
)

type CommentStorage interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListForPost(ctx context.Context, postID uint) ([]models.Comment, error)
}

type CommentRequest struct {
	Text string `form:"text" validate:"required,max=1000"`
}

type CommentService struct {
	comments CommentStorage
}

func NewCommentService(comments CommentStorage) *CommentService {
	return &CommentService{comments: comments}
}

func (s *CommentService) Add(ctx context.Context, postID, authorID uint, req CommentRequest) (models.Comment, error) {
	if postID == 0 || authorID == 0 {
		return models.Comment{}, fmt.Errorf("postID and authorID must be > 0: %w", ErrInvalidRequest)
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validateStruct(req); err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     req.Text,
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	monitoring.CommentsCreated.Inc()
	return comment, nil
}

// List returns the post's comments oldest first.
func (s *CommentService) List(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.comments.ListForPost(ctx, postID)
}
