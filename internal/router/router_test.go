package router

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/repositories/memory"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

type testAPI struct {
	t      *testing.T
	e      *echo.Echo
	events *events.Recorder
}

func newAPI(t *testing.T) *testAPI {
	t.Helper()
	rec := &events.Recorder{}
	e := New(Deps{
		Store:  memory.NewStore(),
		Tokens: session.NewJWTManager("test-secret", time.Hour),
		Images: storage.NewMemory("http://example.test/media"),
		Events: rec,
	})
	e.Logger.SetOutput(io.Discard)
	return &testAPI{t: t, e: e, events: rec}
}

func (a *testAPI) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get(echo.HeaderContentType) == echo.MIMEApplicationJSON ||
		rec.Header().Get(echo.HeaderContentType) == echo.MIMEApplicationJSONCharsetUTF8 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (a *testAPI) data(env envelope, v interface{}) {
	a.t.Helper()
	require.True(a.t, env.Success)
	require.NoError(a.t, json.Unmarshal(env.Data, v))
}

type member struct {
	ID    uint
	Token string
}

func (a *testAPI) signUp(name string) member {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/auth/sign-up", "", map[string]string{
		"name": name, "email": name + "@clubhousefc.com", "password": "golaço-2024",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	a.data(env, &res)
	require.NotEmpty(a.t, res.Token)
	return member{ID: res.User.ID, Token: res.Token}
}

func (a *testAPI) post(m member, content string) uint {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/posts", m.Token, map[string]string{"content": content})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var p struct {
		ID uint `json:"id"`
	}
	a.data(env, &p)
	return p.ID
}

func (a *testAPI) unreadCount(m member) int64 {
	a.t.Helper()
	rec, env := a.do(http.MethodGet, "/api/v1/notifications/unread-count", m.Token, nil)
	require.Equal(a.t, http.StatusOK, rec.Code)
	var c struct {
		Count int64 `json:"count"`
	}
	a.data(env, &c)
	return c.Count
}

func TestHealthAndMetrics(t *testing.T) {
	api := newAPI(t)

	rec, _ := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	rec, _ = api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clubhouse_http_request_duration_seconds")
}

func TestAuth_SignUpSignIn(t *testing.T) {
	api := newAPI(t)
	api.signUp("joao")

	rec, env := api.do(http.MethodPost, "/api/v1/auth/sign-in", "", map[string]string{
		"email": "JOAO@clubhousefc.com", "password": "golaço-2024",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = api.do(http.MethodPost, "/api/v1/auth/sign-in", "", map[string]string{
		"email": "joao@clubhousefc.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	rec, env = api.do(http.MethodPost, "/api/v1/auth/sign-up", "", map[string]string{
		"name": "Joao Again", "email": "joao@clubhousefc.com", "password": "golaço-2024",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestAuth_ValidationEnvelope(t *testing.T) {
	api := newAPI(t)

	rec, env := api.do(http.MethodPost, "/api/v1/auth/sign-up", "", map[string]string{
		"name": "M", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "name")
	assert.Contains(t, env.Error.Fields, "email")
	assert.Contains(t, env.Error.Fields, "password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newAPI(t)

	rec, env := api.do(http.MethodGet, "/api/v1/notifications/unread", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/posts/1/like", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// an invalid token is rejected on optional routes too
	rec, _ = api.do(http.MethodGet, "/api/v1/posts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLikeFlowNotifiesAuthor(t *testing.T) {
	api := newAPI(t)
	alice := api.signUp("alice")
	bob := api.signUp("bob")
	postID := api.post(alice, "Que jogo ontem!")

	rec, env := api.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var toggled struct {
		Liked bool `json:"liked"`
	}
	api.data(env, &toggled)
	assert.True(t, toggled.Liked)
	assert.Equal(t, int64(1), api.unreadCount(alice))

	_, env = api.do(http.MethodGet, "/api/v1/posts", bob.Token, nil)
	var feed []struct {
		ID      uint  `json:"id"`
		Likes   int64 `json:"likes"`
		IsLiked bool  `json:"isLiked"`
	}
	api.data(env, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, int64(1), feed[0].Likes)
	assert.True(t, feed[0].IsLiked)

	_, env = api.do(http.MethodGet, "/api/v1/posts", "", nil)
	api.data(env, &feed)
	require.Len(t, feed, 1)
	assert.False(t, feed[0].IsLiked)

	_, env = api.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), bob.Token, nil)
	api.data(env, &toggled)
	assert.False(t, toggled.Liked)
	assert.Zero(t, api.unreadCount(alice))
}

func TestCommentsAndNotifications(t *testing.T) {
	api := newAPI(t)
	alice := api.signUp("alice")
	bob := api.signUp("bob")
	postID := api.post(alice, "Escalação para domingo?")

	path := fmt.Sprintf("/api/v1/posts/%d/comments", postID)
	rec, env := api.do(http.MethodPost, path, bob.Token, map[string]interface{}{"content": "Time titular!"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var top struct {
		ID uint `json:"id"`
	}
	api.data(env, &top)

	rec, _ = api.do(http.MethodPost, path, alice.Token, map[string]interface{}{"content": "Concordo", "parentId": top.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	_, env = api.do(http.MethodGet, path, bob.Token, nil)
	var thread []struct {
		ID      uint `json:"id"`
		Replies []struct {
			Content string `json:"content"`
		} `json:"replies"`
	}
	api.data(env, &thread)
	require.Len(t, thread, 1)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, "Concordo", thread[0].Replies[0].Content)

	_, env = api.do(http.MethodGet, "/api/v1/notifications/unread", alice.Token, nil)
	var unread []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	api.data(env, &unread)
	require.Len(t, unread, 1)
	assert.Equal(t, "COMMENT_POST", unread[0].Type)

	rec, _ = api.do(http.MethodPut, "/api/v1/notifications/"+url.PathEscape(unread[0].ID)+"/read", bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = api.do(http.MethodPut, "/api/v1/notifications/"+url.PathEscape(unread[0].ID)+"/read", alice.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, api.unreadCount(alice))
}

func TestFollowAndMemberProfile(t *testing.T) {
	api := newAPI(t)
	alice := api.signUp("alice")
	bob := api.signUp("bob")

	rec, env := api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", alice.ID), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var f struct {
		Following bool `json:"following"`
	}
	api.data(env, &f)
	assert.True(t, f.Following)

	rec, env = api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bob.ID), bob.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	_, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/members/%d", alice.ID), bob.Token, nil)
	var profile struct {
		IsOwnProfile bool `json:"isOwnProfile"`
		IsFollowing  bool `json:"isFollowing"`
		Stats        struct {
			Followers int64 `json:"followers"`
		} `json:"stats"`
	}
	api.data(env, &profile)
	assert.False(t, profile.IsOwnProfile)
	assert.True(t, profile.IsFollowing)
	assert.Equal(t, int64(1), profile.Stats.Followers)

	rec, env = api.do(http.MethodPut, fmt.Sprintf("/api/v1/members/%d", alice.ID), bob.Token, map[string]string{"name": "Hacker"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/members/search?query=ali", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFoundAndBadParams(t *testing.T) {
	api := newAPI(t)
	bob := api.signUp("bob")

	rec, env := api.do(http.MethodPost, "/api/v1/posts/999/like", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, env = api.do(http.MethodPost, "/api/v1/posts/abc/like", bob.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Fields, "post_id")

	rec, env = api.do(http.MethodGet, "/api/v1/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestPostImageIsServedFromMedia(t *testing.T) {
	api := newAPI(t)
	alice := api.signUp("alice")

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	rec, env := api.do(http.MethodPost, "/api/v1/posts", alice.Token, map[string]string{
		"image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p struct {
		Image string `json:"image"`
	}
	api.data(env, &p)
	u, err := url.Parse(p.Image)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, u.Path, nil)
	res := httptest.NewRecorder()
	api.e.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "image/png", res.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, res.Body.Bytes())

	req = httptest.NewRequest(http.MethodGet, "/media/posts/missing.png", nil)
	res = httptest.NewRecorder()
	api.e.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	api := newAPI(t)
	alice := api.signUp("alice")

	rec, env := api.do(http.MethodPost, "/api/v1/posts", alice.Token, map[string]string{
		"content": strings.Repeat("a", 9<<20),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
}
