package handlers

import (
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	feed    *services.FeedService
	follows *services.FollowService
}

func NewProfileHandler(feed *services.FeedService, follows *services.FollowService) *ProfileHandler {
	return &ProfileHandler{
		feed:    feed,
		follows: follows,
	}
}

// Profile 用户主页: 帖子列表 + 关注数据
func (h *ProfileHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	author, page, err := h.feed.Author(ctx, c.Param("username"), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}

	stats, err := h.follows.Stats(ctx, author.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	following, err := h.follows.IsFollowing(ctx, middleware.CurrentUserID(c), author.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":     author.Username,
		"Author":    author,
		"Page":      page,
		"PostCount": page.Count,
		"Stats":     stats,
		"Following": following,
		"IsSelf":    middleware.CurrentUserID(c) == author.ID,
	})
}

// FollowIndex is the personal feed of followed authors.
func (h *ProfileHandler) FollowIndex(c *gin.Context) {
	page, err := h.feed.Following(c.Request.Context(), middleware.CurrentUserID(c), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title": "Following",
		"Page":  page,
	})
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	author, err := h.follows.Follow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+author.Username+"/")
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	author, err := h.follows.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+author.Username+"/")
}
