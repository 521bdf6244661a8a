package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"

	"yatube/app/models"
	"yatube/app/repository"
	"yatube/app/repository/inmemory"
	"yatube/internal/pkg/middleware"
	"yatube/internal/pkg/pagecache"
	"yatube/internal/pkg/usercontext"
)

// testUserHeader carries the id of the user a test request acts as. The
// test middleware resolves it the way the session middleware resolves a
// real session.
const testUserHeader = "X-Test-User"

type testEnv struct {
	app   *fiber.App
	store *inmemory.Store
	repos *repository.Repositories
}

// fakeCache is a TTL-less pagecache backend; entries live until cleared.
type fakeCache struct{ entries map[string]string }

func (f *fakeCache) Get(key string) (string, error) { return f.entries[key], nil }

func (f *fakeCache) Set(key string, value interface{}, _ time.Duration) error {
	f.entries[key] = value.(string)
	return nil
}

func (f *fakeCache) DeleteByPattern(string) error {
	f.entries = make(map[string]string)
	return nil
}

// newTestEnv wires the handlers against an in-memory store and the real
// templates, mirroring the production route table.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := inmemory.New()
	repos := store.Repositories()
	InitializeControllers(repos)
	SetUploadsDir(t.TempDir())
	pagecache.SetBackend(&fakeCache{entries: make(map[string]string)})

	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	app.Use(func(c *fiber.Ctx) error {
		if raw := c.Get(testUserHeader); raw != "" {
			id, err := strconv.Atoi(raw)
			require.NoError(t, err)
			user, err := repos.User.GetByID(uint(id))
			require.NoError(t, err)
			usercontext.SetUserContext(c, usercontext.UserContext{
				UserID:     user.ID,
				Username:   user.Username,
				IsLoggedIn: true,
			})
		}
		return c.Next()
	})

	app.Get("/", HandlePostIndex)
	app.Get("/group/:slug", HandleGroupPosts)
	app.Get("/profile/:username", HandleProfile)
	app.Get("/posts/:id", HandlePostDetail)

	app.Get("/login", HandleAuthLogin)
	app.Get("/register", HandleAuthRegister)
	app.Post("/register", HandleAuthRegister)

	app.Get("/create", middleware.RequireAuth, HandlePostCreate)
	app.Post("/create", middleware.RequireAuth, HandlePostCreate)
	app.Get("/posts/:id/edit", middleware.RequireAuth, HandlePostEdit)
	app.Post("/posts/:id/edit", middleware.RequireAuth, HandlePostEdit)
	app.Post("/posts/:id/delete", middleware.RequireAuth, HandlePostDelete)
	app.Post("/posts/:id/comment", middleware.RequireAuth, HandleAddComment)

	app.Get("/follow", middleware.RequireAuth, HandleFollowIndex)
	app.Get("/profile/:username/follow", middleware.RequireAuth, HandleFollow)
	app.Get("/profile/:username/unfollow", middleware.RequireAuth, HandleUnfollow)

	app.Use(HandleNotFound)

	return &testEnv{app: app, store: store, repos: repos}
}

// seedUser creates an account straight through the repository
func (e *testEnv) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := models.CreateUser(username, username+"@example.com", "secret-pass")
	require.NoError(t, err)
	require.NoError(t, e.repos.User.Create(user))
	return user
}

func (e *testEnv) seedGroup(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: "d"}
	require.NoError(t, e.repos.Group.Create(group))
	return group
}

func (e *testEnv) seedPost(t *testing.T, author *models.User, text string, groupID *uint) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, GroupID: groupID}
	require.NoError(t, e.repos.Post.Create(post))
	return post
}

// get performs a GET request, optionally acting as the given user
func (e *testEnv) get(t *testing.T, path string, as *models.User) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if as != nil {
		req.Header.Set(testUserHeader, strconv.FormatUint(uint64(as.ID), 10))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// postForm performs a form-encoded POST request
func (e *testEnv) postForm(t *testing.T, path string, values url.Values, as *models.User) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if as != nil {
		req.Header.Set(testUserHeader, strconv.FormatUint(uint64(as.ID), 10))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
