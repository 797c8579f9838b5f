package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"
	"yatube/internal/db"
	"yatube/internal/media"
	"yatube/internal/models"
	"yatube/internal/storage"

	"github.com/stretchr/testify/require"
)

type env struct {
	users    *storage.UserStorage
	groups   *storage.GroupStorage
	posts    *PostService
	comments *CommentService
	feed     *FeedService
	follows  *FollowService
	auth     *UserService
	media    string
}

func newEnv(t *testing.T) env {
	t.Helper()
	conn, err := db.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	root := t.TempDir()
	users := storage.NewUserStorage(conn)
	groups := storage.NewGroupStorage(conn)
	posts := storage.NewPostStorage(conn)
	follows := storage.NewFollowStorage(conn)

	return env{
		users:    users,
		groups:   groups,
		posts:    NewPostService(posts, groups, media.NewStore(root)),
		comments: NewCommentService(storage.NewCommentStorage(conn)),
		feed:     NewFeedService(posts, groups, users),
		follows:  NewFollowService(follows, users),
		auth:     NewUserService(users),
		media:    root,
	}
}

func (e env) user(t *testing.T, name string) models.User {
	t.Helper()
	u := models.User{Username: name, Password: "x"}
	require.NoError(t, e.users.Create(context.Background(), &u))
	return u
}

func uploadHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestPostService_Create(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	g := models.Group{Title: "Go", Slug: "go"}
	require.NoError(t, e.groups.Create(ctx, &g))

	_, err := e.posts.Create(ctx, alice.ID, PostRequest{Text: "   "})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.Contains(t, Fields(err), "text")

	missing := uint(999)
	_, err = e.posts.Create(ctx, alice.ID, PostRequest{Text: "hi", GroupID: &missing})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.Contains(t, Fields(err), "group")

	post, err := e.posts.Create(ctx, alice.ID, PostRequest{
		Text:    "  hello  ",
		GroupID: &g.ID,
		Image:   uploadHeader(t, "a.png", tinyPNG(t)),
	})
	require.NoError(t, err)
	require.Equal(t, "hello", post.Text)
	require.Equal(t, alice.ID, post.AuthorID)
	require.False(t, post.PubDate.IsZero())
	require.True(t, post.HasImage())

	_, err = os.Stat(filepath.Join(e.media, filepath.FromSlash(post.Image)))
	require.NoError(t, err)
}

func TestPostService_CreateRejectsBadImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")

	_, err := e.posts.Create(ctx, alice.ID, PostRequest{
		Text:  "with a fake image",
		Image: uploadHeader(t, "fake.jpg", []byte("plain text")),
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.Contains(t, Fields(err), "image")

	page, err := e.feed.Index(ctx, "")
	require.NoError(t, err)
	require.Empty(t, page.Items, "nothing is stored when the image is invalid")
}

func TestPostService_Edit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	post, err := e.posts.Create(ctx, alice.ID, PostRequest{Text: "original"})
	require.NoError(t, err)
	published := post.PubDate

	time.Sleep(10 * time.Millisecond)

	got, err := e.posts.Edit(ctx, bob.ID, "alice", post.ID, PostRequest{Text: "hijacked"})
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, "original", got.Text)

	_, err = e.posts.Edit(ctx, alice.ID, "bob", post.ID, PostRequest{Text: "wrong url"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = e.posts.Edit(ctx, alice.ID, "alice", post.ID, PostRequest{Text: ""})
	require.ErrorIs(t, err, ErrInvalidRequest)

	edited, err := e.posts.Edit(ctx, alice.ID, "alice", post.ID, PostRequest{Text: "edited"})
	require.NoError(t, err)
	require.Equal(t, "edited", edited.Text)
	require.True(t, edited.PubDate.Equal(published))

	stored, err := e.posts.Get(ctx, "alice", post.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", stored.Text)
	require.True(t, stored.PubDate.Equal(published))
}

func TestPostService_EditReplacesAndClearsImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")

	post, err := e.posts.Create(ctx, alice.ID, PostRequest{Text: "pic", Image: uploadHeader(t, "a.png", tinyPNG(t))})
	require.NoError(t, err)
	first := filepath.Join(e.media, filepath.FromSlash(post.Image))

	edited, err := e.posts.Edit(ctx, alice.ID, "alice", post.ID, PostRequest{Text: "pic", Image: uploadHeader(t, "b.png", tinyPNG(t))})
	require.NoError(t, err)
	require.NotEqual(t, post.Image, edited.Image)
	_, err = os.Stat(first)
	require.ErrorIs(t, err, os.ErrNotExist, "replaced image is removed")

	cleared, err := e.posts.Edit(ctx, alice.ID, "alice", post.ID, PostRequest{Text: "pic", ClearImage: true})
	require.NoError(t, err)
	require.False(t, cleared.HasImage())
}

func TestCommentService_Add(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	post, err := e.posts.Create(ctx, alice.ID, PostRequest{Text: "hello"})
	require.NoError(t, err)

	_, err = e.comments.Add(ctx, post.ID, bob.ID, CommentRequest{Text: " "})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.Contains(t, Fields(err), "text")

	_, err = e.comments.Add(ctx, post.ID, bob.ID, CommentRequest{Text: string(bytes.Repeat([]byte("a"), 1001))})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = e.comments.Add(ctx, post.ID, bob.ID, CommentRequest{Text: "nice"})
	require.NoError(t, err)

	comments, err := e.comments.List(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "bob", comments[0].Author.Username)
}

func TestFeedService_FollowingFeed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	e.user(t, "bob")

	bobUser, err := e.users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	_, err = e.posts.Create(ctx, bobUser.ID, PostRequest{Text: "from bob"})
	require.NoError(t, err)

	page, err := e.feed.Following(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Empty(t, page.Items)

	_, err = e.follows.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = e.follows.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)

	stats, err := e.follows.Stats(ctx, bobUser.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Followers)

	page, err = e.feed.Following(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "from bob", page.Items[0].Text)

	global, err := e.feed.Index(ctx, "")
	require.NoError(t, err)
	require.Len(t, global.Items, 1)

	_, err = e.follows.Unfollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = e.follows.Unfollow(ctx, alice.ID, "bob")
	require.NoError(t, err)

	page, err = e.feed.Following(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Empty(t, page.Items)
}

func TestFeedService_GroupAndAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	g := models.Group{Title: "Go", Slug: "go"}
	require.NoError(t, e.groups.Create(ctx, &g))

	for i := 0; i < 6; i++ {
		_, err := e.posts.Create(ctx, alice.ID, PostRequest{Text: "in group", GroupID: &g.ID})
		require.NoError(t, err)
	}

	group, page, err := e.feed.Group(ctx, "go", "2")
	require.NoError(t, err)
	require.Equal(t, "Go", group.Title)
	require.Equal(t, 2, page.Number)
	require.Len(t, page.Items, 1)

	_, _, err = e.feed.Group(ctx, "nope", "")
	require.ErrorIs(t, err, ErrNotFound)

	author, page, err := e.feed.Author(ctx, "alice", "")
	require.NoError(t, err)
	require.Equal(t, alice.ID, author.ID)
	require.EqualValues(t, 6, page.Count)
	require.Len(t, page.Items, ProfilePageSize)
}
