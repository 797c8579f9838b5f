package router

import (
	"net/http"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/monitoring"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Posts   *handlers.PostHandler
	Profile *handlers.ProfileHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/metrics", monitoring.Handler())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// 认证 (Auth)
	auth := r.Group("/auth")
	{
		auth.GET("/signup/", h.Auth.ShowSignup)
		auth.POST("/signup/", h.Auth.Signup)
		auth.GET("/login/", h.Auth.ShowLogin)
		auth.POST("/login/", h.Auth.Login)
		auth.GET("/logout/", h.Auth.Logout)
	}

	// 公共路由 (Public Routes)
	r.GET("/", h.Posts.Index)                     // 首页, 缓存
	r.GET("/group/:slug/", h.Posts.GroupPosts)    // 分组帖子
	r.GET("/:username/", h.Profile.Profile)       // 用户主页
	r.GET("/:username/:post_id/", h.Posts.Detail) // 帖子详情

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/new/", h.Posts.ShowCreate)
		authorized.POST("/new/", h.Posts.Create)
		authorized.GET("/follow/", h.Profile.FollowIndex)
		authorized.GET("/:username/follow/", h.Profile.Follow)
		authorized.GET("/:username/unfollow/", h.Profile.Unfollow)
		authorized.GET("/:username/:post_id/edit/", h.Posts.ShowEdit)
		authorized.POST("/:username/:post_id/edit/", h.Posts.Update)
		authorized.POST("/:username/:post_id/comment/", h.Posts.AddComment)
	}

	r.NoRoute(handlers.NotFound)
}
