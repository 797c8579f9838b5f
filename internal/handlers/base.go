package handlers

import (
	"errors"
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Render helper to inject common variables like 'current user'.
// obj may come from the page cache, so it is copied before anything is added.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := make(gin.H, len(obj)+2)
	for k, v := range obj {
		data[k] = v
	}

	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// RenderError renders the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{
		"Code":  code,
		"Error": message,
	})
}

// NotFound is the NoRoute handler.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found")
}

// Recovery renders the 500 page for a recovered panic.
func Recovery(c *gin.Context, recovered any) {
	logrus.WithFields(logrus.Fields{
		"path":  c.Request.URL.Path,
		"panic": recovered,
	}).Error("panic recovered")
	RenderError(c, http.StatusInternalServerError, "Server error")
	c.Abort()
}

// handleError maps service errors onto the error page.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		NotFound(c)
	case errors.Is(err, services.ErrInvalidRequest):
		RenderError(c, http.StatusBadRequest, "Bad request")
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		RenderError(c, http.StatusInternalServerError, "Server error")
	}
}
