package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"yatube/internal/media"
	"yatube/internal/models"
	"yatube/internal/monitoring"
	"yatube/internal/pagination"
	"yatube/internal/storage"

	"github.com/sirupsen/logrus"
)

type PostStorage interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (models.Post, error)
	UpdateContent(ctx context.Context, post models.Post) error
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	Page(ctx context.Context, f storage.PostFilter, rawPage string, perPage int) (pagination.Page[models.Post], error)
}

type GroupStorage interface {
	GetByID(ctx context.Context, id uint) (models.Group, error)
	GetBySlug(ctx context.Context, slug string) (models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
}

type ImageStore interface {
	Save(header *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// PostRequest is the post form: create and edit share it.
type PostRequest struct {
	Text       string                `form:"text" validate:"required"`
	GroupID    *uint                 `form:"group" validate:"-"`
	Image      *multipart.FileHeader `form:"image" validate:"-"`
	ClearImage bool                  `form:"image-clear" validate:"-"`
}

type PostService struct {
	posts  PostStorage
	groups GroupStorage
	images ImageStore
}

func NewPostService(posts PostStorage, groups GroupStorage, images ImageStore) *PostService {
	return &PostService{
		posts:  posts,
		groups: groups,
		images: images,
	}
}

// Create validates req and stores a new post owned by authorID.
func (s *PostService) Create(ctx context.Context, authorID uint, req PostRequest) (models.Post, error) {
	if authorID == 0 {
		return models.Post{}, fmt.Errorf("authorID must be > 0: %w", ErrInvalidRequest)
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := s.validate(ctx, req); err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		Text:     req.Text,
		AuthorID: authorID,
		GroupID:  req.GroupID,
	}
	if req.Image != nil {
		name, err := s.saveImage(req.Image)
		if err != nil {
			return models.Post{}, err
		}
		post.Image = name
	}

	if err := s.posts.Create(ctx, &post); err != nil {
		s.removeImage(post.Image)
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}

	monitoring.PostsCreated.Inc()
	return post, nil
}

// Get loads a post and checks it belongs to username.
func (s *PostService) Get(ctx context.Context, username string, postID uint) (models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}
	if post.Author.Username != username {
		return models.Post{}, ErrNotFound
	}
	return post, nil
}

// Edit updates text, group and image in place. A caller other than the
// author gets the unchanged post back together with ErrForbidden.
func (s *PostService) Edit(ctx context.Context, editorID uint, username string, postID uint, req PostRequest) (models.Post, error) {
	post, err := s.Get(ctx, username, postID)
	if err != nil {
		return models.Post{}, err
	}
	if post.AuthorID != editorID {
		return post, ErrForbidden
	}

	req.Text = strings.TrimSpace(req.Text)
	if err := s.validate(ctx, req); err != nil {
		return post, err
	}

	updated := post
	updated.Text = req.Text
	updated.GroupID = req.GroupID
	if req.ClearImage {
		updated.Image = ""
	}
	if req.Image != nil {
		name, err := s.saveImage(req.Image)
		if err != nil {
			return post, err
		}
		updated.Image = name
	}

	if err := s.posts.UpdateContent(ctx, updated); err != nil {
		if updated.Image != post.Image {
			s.removeImage(updated.Image)
		}
		return post, fmt.Errorf("update post: %w", err)
	}
	if post.Image != "" && updated.Image != post.Image {
		s.removeImage(post.Image)
	}

	monitoring.PostsEdited.Inc()
	return s.posts.GetByID(ctx, post.ID)
}

// CountByAuthor is the author's total number of posts.
func (s *PostService) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.posts.CountByAuthor(ctx, authorID)
}

// Groups lists the choices for the post form.
func (s *PostService) Groups(ctx context.Context) ([]models.Group, error) {
	return s.groups.List(ctx)
}

func (s *PostService) validate(ctx context.Context, req PostRequest) error {
	fields := FieldErrors{}
	if err := validateStruct(req); err != nil {
		f := Fields(err)
		if f == nil {
			return err
		}
		for k, v := range f {
			fields[k] = v
		}
	}

	if req.GroupID != nil {
		_, err := s.groups.GetByID(ctx, *req.GroupID)
		switch {
		case errors.Is(err, ErrNotFound):
			fields["group"] = "Select a valid choice. That choice is not one of the available choices."
		case err != nil:
			return fmt.Errorf("load group: %w", err)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *PostService) saveImage(header *multipart.FileHeader) (string, error) {
	name, err := s.images.Save(header)
	if errors.Is(err, media.ErrInvalidImage) {
		logrus.WithError(err).WithField("filename", header.Filename).Warn("rejected post image")
		return "", fieldError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

func (s *PostService) removeImage(name string) {
	if name == "" {
		return
	}
	if err := s.images.Remove(name); err != nil {
		logrus.WithError(err).WithField("image", name).Warn("failed to remove post image")
	}
}
