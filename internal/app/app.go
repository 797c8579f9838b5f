// Package app assembles storage, services, handlers and the gin engine.
package app

import (
	"fmt"
	"net/http"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/handlers"
	"yatube/internal/logger"
	"yatube/internal/media"
	"yatube/internal/middleware"
	"yatube/internal/monitoring"
	"yatube/internal/router"
	"yatube/internal/services"
	"yatube/internal/storage"
	"yatube/internal/templates"
	"yatube/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	sessionName   = "yatube_session"
	sessionMaxAge = 14 * 24 * 60 * 60
)

type App struct {
	Engine *gin.Engine
	pages  *cache.PageCache
}

// New wires a ready-to-serve engine on top of an open, migrated database.
func New(cfg config.Config, conn *gorm.DB) (*App, error) {
	pages, err := cache.New(cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}

	renderer, err := templates.Load(web.FS)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	staticFS, err := staticFiles()
	if err != nil {
		return nil, err
	}

	users := storage.NewUserStorage(conn)
	groups := storage.NewGroupStorage(conn)
	posts := storage.NewPostStorage(conn)
	comments := storage.NewCommentStorage(conn)
	follows := storage.NewFollowStorage(conn)
	images := media.NewStore(cfg.MediaRoot)

	userService := services.NewUserService(users)
	postService := services.NewPostService(posts, groups, images)
	commentService := services.NewCommentService(comments)
	feedService := services.NewFeedService(posts, groups, users)
	followService := services.NewFollowService(follows, users)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(logger.RequestLogger())
	r.Use(monitoring.Instrument())
	r.Use(gin.CustomRecovery(handlers.Recovery))

	r.Static("/media", images.Root())
	r.StaticFS("/static", staticFS)

	r.Use(sessions.Sessions(sessionName, newSessionStore(cfg.HTTP)))
	r.Use(middleware.LoadUser(userService))

	router.RegisterRoutes(r, router.Handlers{
		Auth:    handlers.NewAuthHandler(userService),
		Posts:   handlers.NewPostHandler(feedService, postService, commentService, followService, pages, cfg.Cache.IndexTTL),
		Profile: handlers.NewProfileHandler(feedService, followService),
	})

	return &App{Engine: r, pages: pages}, nil
}

// newSessionStore issues a Lax, HttpOnly cookie. Secure is opt-in so the
// session survives on plain HTTP.
func newSessionStore(cfg config.HTTPConfig) sessions.Store {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// PageCache exposes the index page cache, e.g. for clearing it.
func (a *App) PageCache() *cache.PageCache {
	return a.pages
}

func (a *App) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	a.Engine.ServeHTTP(w, req)
}
