package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"yatube/internal/cache"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

const indexCachePrefix = "index_page"

type PostHandler struct {
	feed     *services.FeedService
	posts    *services.PostService
	comments *services.CommentService
	follows  *services.FollowService
	cache    *cache.PageCache
	indexTTL time.Duration
}

func NewPostHandler(feed *services.FeedService, posts *services.PostService, comments *services.CommentService, follows *services.FollowService, pages *cache.PageCache, indexTTL time.Duration) *PostHandler {
	return &PostHandler{
		feed:     feed,
		posts:    posts,
		comments: comments,
		follows:  follows,
		cache:    pages,
		indexTTL: indexTTL,
	}
}

// Index 首页, 整页数据按页码缓存 indexTTL
func (h *PostHandler) Index(c *gin.Context) {
	raw := c.Query("page")
	if data, ok := h.cache.Lookup(indexCacheKey(pagination.Number(raw))); ok {
		Render(c, http.StatusOK, "posts/index.html", data.(gin.H))
		return
	}

	page, err := h.feed.Index(c.Request.Context(), raw)
	if err != nil {
		handleError(c, err)
		return
	}
	data := gin.H{
		"Title": "Latest posts",
		"Page":  page,
	}
	// stored under the page actually served, so out-of-range numbers add no entries
	h.cache.Set(indexCacheKey(page.Number), data, h.indexTTL)
	Render(c, http.StatusOK, "posts/index.html", data)
}

func indexCacheKey(number int) string {
	return fmt.Sprintf("%s:%d", indexCachePrefix, number)
}

func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, page, err := h.feed.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/group.html", gin.H{
		"Title": group.Title,
		"Group": group,
		"Page":  page,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	count, err := h.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		handleError(c, err)
		return
	}
	comments, err := h.comments.List(ctx, post.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	stats, err := h.follows.Stats(ctx, post.AuthorID)
	if err != nil {
		handleError(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/post.html", gin.H{
		"Title":     "Post by " + post.Author.Username,
		"Post":      post,
		"Author":    post.Author,
		"PostCount": count,
		"Stats":     stats,
		"Comments":  comments,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, formState{})
}

func (h *PostHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	req, err := bindPostRequest(c)
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Bad request")
		return
	}

	_, err = h.posts.Create(c.Request.Context(), user.ID, req)
	if fields := services.Fields(err); fields != nil {
		h.renderForm(c, http.StatusOK, formState{Text: req.Text, GroupID: req.GroupID, Errors: fields})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if post.AuthorID != middleware.CurrentUserID(c) {
		c.Redirect(http.StatusFound, postURL(post))
		return
	}
	h.renderForm(c, http.StatusOK, formState{Post: &post, Text: post.Text, GroupID: post.GroupID})
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return
	}
	req, err := bindPostRequest(c)
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Bad request")
		return
	}

	post, err := h.posts.Edit(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"), postID, req)
	switch {
	case errors.Is(err, services.ErrForbidden):
		c.Redirect(http.StatusFound, postURL(post))
		return
	case services.Fields(err) != nil:
		h.renderForm(c, http.StatusOK, formState{Post: &post, Text: req.Text, GroupID: req.GroupID, Errors: services.Fields(err)})
		return
	case err != nil:
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(post))
}

// AddComment always lands back on the post; an empty comment is dropped.
func (h *PostHandler) AddComment(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	_, err := h.comments.Add(c.Request.Context(), post.ID, middleware.CurrentUserID(c), services.CommentRequest{
		Text: c.PostForm("text"),
	})
	if err != nil && !errors.Is(err, services.ErrInvalidRequest) {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(post))
}

func (h *PostHandler) loadPost(c *gin.Context) (models.Post, bool) {
	postID, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return models.Post{}, false
	}
	post, err := h.posts.Get(c.Request.Context(), c.Param("username"), postID)
	if err != nil {
		handleError(c, err)
		return models.Post{}, false
	}
	return post, true
}

type formState struct {
	Post    *models.Post
	Text    string
	GroupID *uint
	Errors  services.FieldErrors
}

func (h *PostHandler) renderForm(c *gin.Context, code int, st formState) {
	groups, err := h.posts.Groups(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	title := "New post"
	if st.Post != nil {
		title = "Edit post"
	}
	var selected uint
	if st.GroupID != nil {
		selected = *st.GroupID
	}
	Render(c, code, "posts/create.html", gin.H{
		"Title":    title,
		"IsEdit":   st.Post != nil,
		"Post":     st.Post,
		"Text":     st.Text,
		"Selected": selected,
		"Groups":   groups,
		"Errors":   st.Errors,
	})
}

// bindPostRequest reads the post form. An unparsable group id becomes 0 so
// the service reports it as an invalid choice.
func bindPostRequest(c *gin.Context) (services.PostRequest, error) {
	req := services.PostRequest{
		Text:       c.PostForm("text"),
		ClearImage: c.PostForm("image-clear") != "",
	}

	if raw := strings.TrimSpace(c.PostForm("group")); raw != "" {
		id, _ := utils.ParseID(raw)
		req.GroupID = &id
	}

	file, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return req, err
	default:
		req.Image = file
	}
	return req, nil
}

func postURL(post models.Post) string {
	return fmt.Sprintf("/%s/%d/", post.Author.Username, post.ID)
}
