package app

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type harness struct {
	t    *testing.T
	app  *App
	conn *gorm.DB
	srv  *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, func(*config.Config) {})
}

func newHarnessWith(t *testing.T, configure func(*config.Config)) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := config.Config{
		HTTP:      config.HTTPConfig{SessionSecret: "test-secret"},
		Cache:     config.CacheConfig{Size: 100, IndexTTL: 20 * time.Second},
		MediaRoot: t.TempDir(),
	}
	configure(&cfg)
	a, err := New(cfg, conn)
	require.NoError(t, err)

	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)
	return &harness{t: t, app: a, conn: conn, srv: srv}
}

// client is one browser: its own cookie jar, redirects not followed.
type client struct {
	h    *harness
	http *http.Client
}

func (h *harness) client() *client {
	jar, err := cookiejar.New(nil)
	require.NoError(h.t, err)
	return &client{h: h, http: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

type response struct {
	Code     int
	Location string
	Body     string
}

func (c *client) do(req *http.Request) response {
	c.h.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.h.t, err)
	return response{Code: resp.StatusCode, Location: resp.Header.Get("Location"), Body: string(body)}
}

func (c *client) get(path string) response {
	c.h.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.h.srv.URL+path, nil)
	require.NoError(c.h.t, err)
	return c.do(req)
}

func (c *client) post(path string, form url.Values) response {
	c.h.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.h.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(c.h.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// signup registers username and leaves the client logged in.
func (h *harness) signup(username string) *client {
	h.t.Helper()
	c := h.client()
	resp := c.post("/auth/signup/", url.Values{
		"username":  {username},
		"password1": {"password123"},
		"password2": {"password123"},
	})
	require.Equal(h.t, http.StatusFound, resp.Code, resp.Body)
	return c
}

func (h *harness) group(title, slug string) models.Group {
	h.t.Helper()
	g := models.Group{Title: title, Slug: slug}
	require.NoError(h.t, h.conn.Create(&g).Error)
	return g
}

func (h *harness) lastPost() models.Post {
	h.t.Helper()
	var p models.Post
	require.NoError(h.t, h.conn.Order("id DESC").First(&p).Error)
	return p
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	h := newHarness(t)
	anon := h.client()

	for _, path := range []string{"/new/", "/follow/"} {
		resp := anon.get(path)
		require.Equal(t, http.StatusFound, resp.Code, path)
		require.Equal(t, "/auth/login/?next="+path, resp.Location)
	}

	resp := anon.post("/new/", url.Values{"text": {"sneaky"}})
	require.Equal(t, http.StatusFound, resp.Code)
	require.True(t, strings.HasPrefix(resp.Location, "/auth/login/?next="))

	var count int64
	require.NoError(t, h.conn.Model(&models.Post{}).Count(&count).Error)
	require.Zero(t, count)
}

func sessionCookie(t *testing.T, header http.Header) *http.Cookie {
	t.Helper()
	for _, ck := range (&http.Response{Header: header}).Cookies() {
		if ck.Name == sessionName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in %v", sessionName, header.Values("Set-Cookie"))
	return nil
}

func signupHeaders(t *testing.T, h *harness, username string) http.Header {
	t.Helper()
	form := url.Values{"username": {username}, "password1": {"password123"}, "password2": {"password123"}}
	req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/auth/signup/", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := h.client().http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	return resp.Header
}

func TestSessionCookieWorksOverPlainHTTP(t *testing.T) {
	h := newHarness(t)

	ck := sessionCookie(t, signupHeaders(t, h, "alice"))
	require.False(t, ck.Secure)
	require.True(t, ck.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	require.Equal(t, "/", ck.Path)

	bob := h.signup("bob")
	u, err := url.Parse(h.srv.URL)
	require.NoError(t, err)
	require.NotEmpty(t, bob.http.Jar.Cookies(u))

	resp := bob.get("/follow/")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestSessionCookieSecureWhenConfigured(t *testing.T) {
	h := newHarnessWith(t, func(cfg *config.Config) { cfg.HTTP.SecureCookies = true })

	ck := sessionCookie(t, signupHeaders(t, h, "alice"))
	require.True(t, ck.Secure)
	require.Equal(t, http.SameSiteLaxMode, ck.SameSite)
}

func TestLoginRedirectsToNext(t *testing.T) {
	h := newHarness(t)
	h.signup("alice")

	c := h.client()
	resp := c.post("/auth/login/?next=/follow/", url.Values{"username": {"alice"}, "password": {"wrong"}})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body, "correct username and password")

	resp = c.post("/auth/login/", url.Values{"username": {"alice"}, "password": {"password123"}, "next": {"/follow/"}})
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, "/follow/", resp.Location)

	resp = c.post("/auth/login/", url.Values{"username": {"alice"}, "password": {"password123"}, "next": {"https://evil.example/"}})
	require.Equal(t, "/", resp.Location)

	require.Equal(t, http.StatusOK, c.get("/follow/").Code)

	c.get("/auth/logout/")
	require.Equal(t, http.StatusFound, c.get("/follow/").Code)
}

func TestCreatePostAppearsOnceInGroup(t *testing.T) {
	h := newHarness(t)
	g := h.group("Cats", "cats")
	alice := h.signup("alice")

	resp := alice.post("/new/", url.Values{"text": {""}, "group": {fmt.Sprint(g.ID)}})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body, "field-error")

	resp = alice.post("/new/", url.Values{"text": {"hello"}, "group": {fmt.Sprint(g.ID)}})
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, "/", resp.Location)

	page := alice.get("/group/cats/")
	require.Equal(t, http.StatusOK, page.Code)
	require.Equal(t, 1, strings.Count(page.Body, "hello"))

	require.Equal(t, http.StatusNotFound, alice.get("/group/does-not-exist/").Code)
	require.Equal(t, http.StatusNotFound, alice.get("/groups/does-not-exist/").Code)

	post := h.lastPost()
	detail := h.client().get(fmt.Sprintf("/alice/%d/", post.ID))
	require.Equal(t, http.StatusOK, detail.Code)
	require.Contains(t, detail.Body, "hello")

	require.Equal(t, http.StatusNotFound, h.client().get(fmt.Sprintf("/nobody/%d/", post.ID)).Code)
}

func TestIndexIsCached(t *testing.T) {
	h := newHarness(t)
	alice := h.signup("alice")
	anon := h.client()

	require.NotContains(t, anon.get("/").Body, "first post")

	alice.post("/new/", url.Values{"text": {"first post"}})
	require.NotContains(t, anon.get("/").Body, "first post", "index served from cache")

	h.app.PageCache().Clear()
	require.Contains(t, anon.get("/").Body, "first post")
}

func TestIndexCacheKeyedByPageNumber(t *testing.T) {
	h := newHarness(t)
	anon := h.client()

	for _, path := range []string{"/", "/?x=1", "/?x=2", "/?page=abc", "/?page=0", "/?page=999", "/?page=1&utm=a"} {
		require.Equal(t, http.StatusOK, anon.get(path).Code, path)
	}
	require.Equal(t, 1, h.app.PageCache().Len(), "every variant is page 1")
}

func TestFollowFeed(t *testing.T) {
	h := newHarness(t)
	alice := h.signup("alice")
	bob := h.signup("bob")
	carol := h.signup("carol")

	bob.post("/new/", url.Values{"text": {"bob writes"}})

	resp := alice.get("/bob/follow/")
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, "/bob/", resp.Location)
	alice.get("/bob/follow/")

	require.Contains(t, alice.get("/follow/").Body, "bob writes")
	require.NotContains(t, carol.get("/follow/").Body, "bob writes")

	profile := carol.get("/bob/")
	require.Contains(t, profile.Body, "Followers: 1")

	var edges int64
	require.NoError(t, h.conn.Model(&models.Follow{}).Count(&edges).Error)
	require.EqualValues(t, 1, edges)

	require.Equal(t, http.StatusFound, alice.get("/bob/unfollow/").Code)
	require.Equal(t, http.StatusFound, alice.get("/bob/unfollow/").Code, "unfollowing twice is a no-op")
	require.NotContains(t, alice.get("/follow/").Body, "bob writes")

	alice.get("/alice/follow/")
	require.NoError(t, h.conn.Model(&models.Follow{}).Count(&edges).Error)
	require.Zero(t, edges, "self follow is ignored")

	require.Equal(t, http.StatusNotFound, alice.get("/ghost/follow/").Code)
}

func TestOnlyAuthorCanEdit(t *testing.T) {
	h := newHarness(t)
	alice := h.signup("alice")
	bob := h.signup("bob")

	alice.post("/new/", url.Values{"text": {"original"}})
	post := h.lastPost()
	editURL := fmt.Sprintf("/alice/%d/edit/", post.ID)
	readURL := fmt.Sprintf("/alice/%d/", post.ID)

	resp := bob.get(editURL)
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, readURL, resp.Location)

	resp = bob.post(editURL, url.Values{"text": {"defaced"}})
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, readURL, resp.Location)
	require.Equal(t, "original", h.lastPost().Text)

	require.Equal(t, http.StatusOK, alice.get(editURL).Code)
	resp = alice.post(editURL, url.Values{"text": {"revised"}})
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, readURL, resp.Location)

	edited := h.lastPost()
	require.Equal(t, "revised", edited.Text)
	require.True(t, edited.PubDate.Equal(post.PubDate))
}

func TestCommentsRequireLogin(t *testing.T) {
	h := newHarness(t)
	alice := h.signup("alice")
	alice.post("/new/", url.Values{"text": {"discuss"}})
	post := h.lastPost()
	commentURL := fmt.Sprintf("/alice/%d/comment/", post.ID)

	resp := h.client().post(commentURL, url.Values{"text": {"anon"}})
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, "/auth/login/?next="+commentURL, resp.Location)

	bob := h.signup("bob")
	resp = bob.post(commentURL, url.Values{"text": {"nice one"}})
	require.Equal(t, http.StatusFound, resp.Code)
	require.Equal(t, fmt.Sprintf("/alice/%d/", post.ID), resp.Location)

	var count int64
	require.NoError(t, h.conn.Model(&models.Comment{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.Contains(t, bob.get(fmt.Sprintf("/alice/%d/", post.ID)).Body, "nice one")
}

func TestErrorPagesAndProbes(t *testing.T) {
	h := newHarness(t)
	c := h.client()

	resp := c.get("/nobody/")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body, "404")

	require.Equal(t, http.StatusNotFound, c.get("/a/b/c/d/e/").Code)
	require.Equal(t, http.StatusOK, c.get("/healthz").Code)
	require.Equal(t, http.StatusOK, c.get("/static/css/style.css").Code)

	metrics := c.get("/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	require.Contains(t, metrics.Body, "http_request_duration_seconds")
}

func TestSignupValidation(t *testing.T) {
	h := newHarness(t)
	h.signup("alice")

	c := h.client()
	resp := c.post("/auth/signup/", url.Values{
		"username":  {"alice"},
		"password1": {"password123"},
		"password2": {"password123"},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body, "already exists")

	resp = c.post("/auth/signup/", url.Values{
		"username":  {"new"},
		"password1": {"password123"},
		"password2": {"password123"},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body, "reserved")
}
