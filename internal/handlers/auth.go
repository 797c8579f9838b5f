package handlers

import (
	"errors"
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/monitoring"
	"yatube/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", gin.H{"Title": "Sign up"})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "Bad request")
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req)
	if fields := services.Fields(err); fields != nil {
		Render(c, http.StatusOK, "auth/signup.html", gin.H{
			"Title":    "Sign up",
			"Username": req.Username,
			"Email":    req.Email,
			"Errors":   fields,
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	monitoring.SignupSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("user signed up")
	h.startSession(c, user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title": "Log in",
		"Next":  middleware.SafeNext(c.Query("next")),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	next := middleware.SafeNext(c.DefaultPostForm("next", c.Query("next")))

	user, err := h.users.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		monitoring.LoginFailure.Inc()
		Render(c, http.StatusOK, "auth/login.html", gin.H{
			"Title":    "Log in",
			"Next":     next,
			"Username": username,
			"Error":    "Please enter a correct username and password.",
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	monitoring.LoginSuccess.Inc()
	h.startSession(c, user.ID)
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logrus.WithError(err).Warn("failed to clear session")
	}
	c.Set(middleware.CheckUserKey, nil)
	Render(c, http.StatusOK, "auth/logged_out.html", gin.H{"Title": "Logged out"})
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, userID)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session")
	}
}
