package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"yatube/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	CheckUserKey  = "user"
	SessionUserID = "user_id"
	LoginURL      = "/auth/login/"
)

type UserLoader interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
}

// AuthRequired sends anonymous visitors to the login page, keeping the
// requested path in ?next=.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRedirect builds the login URL for next.
func LoginRedirect(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// LoadUser retrieves user from session and sets to context
func LoadUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get(SessionUserID).(uint)
		if ok && id > 0 {
			user, err := users.GetByID(c.Request.Context(), id)
			if err == nil {
				c.Set(CheckUserKey, &user)
			} else {
				// 用户已不存在, 清掉失效的会话
				logrus.WithError(err).WithField("user_id", id).Debug("dropping stale session")
				session.Delete(SessionUserID)
				_ = session.Save()
			}
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentUserID is 0 for anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	if user, ok := CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

// SafeNext accepts only local absolute paths as redirect targets.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
