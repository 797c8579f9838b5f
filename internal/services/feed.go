package services

import (
	"context"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/storage"
)

// Page sizes per listing.
const (
	IndexPageSize   = 10
	FollowPageSize  = 10
	GroupPageSize   = 5
	ProfilePageSize = 5
)

type PostPage = pagination.Page[models.Post]

type FeedService struct {
	posts   PostStorage
	groups  GroupStorage
	authors AuthorFinder
}

func NewFeedService(posts PostStorage, groups GroupStorage, authors AuthorFinder) *FeedService {
	return &FeedService{
		posts:   posts,
		groups:  groups,
		authors: authors,
	}
}

// Index is the global feed.
func (s *FeedService) Index(ctx context.Context, rawPage string) (PostPage, error) {
	return s.posts.Page(ctx, storage.PostFilter{}, rawPage, IndexPageSize)
}

func (s *FeedService) Group(ctx context.Context, slug, rawPage string) (models.Group, PostPage, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return models.Group{}, PostPage{}, err
	}
	page, err := s.posts.Page(ctx, storage.PostFilter{GroupID: &group.ID}, rawPage, GroupPageSize)
	return group, page, err
}

// Author lists one user's posts. Page.Count is their total post count.
func (s *FeedService) Author(ctx context.Context, username, rawPage string) (models.User, PostPage, error) {
	author, err := s.authors.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, PostPage{}, err
	}
	page, err := s.posts.Page(ctx, storage.PostFilter{AuthorID: &author.ID}, rawPage, ProfilePageSize)
	return author, page, err
}

// Following lists posts by the authors userID follows.
func (s *FeedService) Following(ctx context.Context, userID uint, rawPage string) (PostPage, error) {
	return s.posts.Page(ctx, storage.PostFilter{FollowerID: &userID}, rawPage, FollowPageSize)
}
