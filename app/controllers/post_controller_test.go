package controllers

import (
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/pkg/pagecache"
)

func TestIndexListsNewestFirst(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	e.seedPost(t, author, "first post", nil)
	e.seedPost(t, author, "second post", nil)

	resp := e.get(t, "/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "first post")
	assert.Contains(t, html, "second post")
	assert.Less(t, strings.Index(html, "second post"), strings.Index(html, "first post"))
}

func TestIndexCacheIsNotInvalidatedByWrites(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	e.seedPost(t, author, "cached post", nil)

	resp := e.get(t, "/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "cached post")

	// a new post must not appear until the cached fragment expires
	e.seedPost(t, author, "fresh post", nil)

	resp = e.get(t, "/", nil)
	html := body(t, resp)
	assert.Contains(t, html, "cached post")
	assert.NotContains(t, html, "fresh post")

	require.NoError(t, pagecache.Clear())

	resp = e.get(t, "/", nil)
	assert.Contains(t, body(t, resp), "fresh post")
}

func TestGroupPageFiltersBySlug(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	group := e.seedGroup(t, "Тестовая группа", "test-slug")
	e.seedPost(t, author, "grouped post", &group.ID)
	e.seedPost(t, author, "loose post", nil)

	resp := e.get(t, "/group/test-slug", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "Тестовая группа")
	assert.Contains(t, html, "grouped post")
	assert.NotContains(t, html, "loose post")
}

func TestGroupPageUnknownSlugIs404(t *testing.T) {
	e := newTestEnv(t)

	resp := e.get(t, "/group/no-such-group", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProfileShowsOnlyAuthorsPosts(t *testing.T) {
	e := newTestEnv(t)
	leo := e.seedUser(t, "leo")
	mia := e.seedUser(t, "mia")
	e.seedPost(t, leo, "post by leo", nil)
	e.seedPost(t, mia, "post by mia", nil)

	resp := e.get(t, "/profile/leo", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "post by leo")
	assert.NotContains(t, html, "post by mia")
}

func TestProfileUnknownUserIs404(t *testing.T) {
	e := newTestEnv(t)

	resp := e.get(t, "/profile/nobody", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPostDetailShowsPostAndComments(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	post := e.seedPost(t, author, "Тестовый пост", nil)

	resp := e.postForm(t, postURL(post.ID)+"/comment", url.Values{"text": {"great one"}}, author)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = e.get(t, postURL(post.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "Тестовый пост")
	assert.Contains(t, html, "great one")
}

func TestPostDetailUnknownIDIs404(t *testing.T) {
	e := newTestEnv(t)

	assert.Equal(t, fiber.StatusNotFound, e.get(t, "/posts/999", nil).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, e.get(t, "/posts/not-a-number", nil).StatusCode)
}

func TestCreateRequiresLogin(t *testing.T) {
	e := newTestEnv(t)

	resp := e.get(t, "/create", nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fcreate", resp.Header.Get("Location"))
}

func TestCreatePostStoresAuthorAndGroup(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	group := e.seedGroup(t, "Тестовая группа", "test-slug")

	resp := e.postForm(t, "/create", url.Values{
		"text":  {"Тестовый пост"},
		"group": {strconv.FormatUint(uint64(group.ID), 10)},
	}, author)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/leo", resp.Header.Get("Location"))

	total, err := e.repos.Post.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	posts, err := e.repos.Post.ListByAuthor(author.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Тестовый пост", posts[0].Text)
	require.NotNil(t, posts[0].GroupID)
	assert.Equal(t, group.ID, *posts[0].GroupID)
}

func TestCreatePostInvalidRedisplaysForm(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")

	resp := e.postForm(t, "/create", url.Values{
		"text":  {"   "},
		"group": {"99"},
	}, author)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "Post text is required")
	assert.Contains(t, html, "Select a valid group")

	total, err := e.repos.Post.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestEditByAuthorUpdatesText(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	post := e.seedPost(t, author, "Тестовый пост", nil)

	resp := e.postForm(t, postURL(post.ID)+"/edit", url.Values{"text": {"Тестовый пост изменен"}}, author)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, postURL(post.ID), resp.Header.Get("Location"))

	stored, err := e.repos.Post.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Тестовый пост изменен", stored.Text)
}

func TestEditByNonAuthorLeavesPostUntouched(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	intruder := e.seedUser(t, "mia")
	post := e.seedPost(t, author, "Тестовый пост", nil)

	resp := e.postForm(t, postURL(post.ID)+"/edit", url.Values{"text": {"Тестовый пост изменен"}}, intruder)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, postURL(post.ID), resp.Header.Get("Location"))

	stored, err := e.repos.Post.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Тестовый пост", stored.Text)
}

func TestDeleteByAuthorRemovesPostAndComments(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	post := e.seedPost(t, author, "doomed post", nil)

	resp := e.postForm(t, postURL(post.ID)+"/comment", url.Values{"text": {"doomed comment"}}, author)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = e.postForm(t, postURL(post.ID)+"/delete", nil, author)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/leo", resp.Header.Get("Location"))

	total, err := e.repos.Post.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	comments, err := e.repos.Comment.CountByPost(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, comments)
}

func TestDeleteByNonAuthorKeepsPost(t *testing.T) {
	e := newTestEnv(t)
	author := e.seedUser(t, "leo")
	intruder := e.seedUser(t, "mia")
	post := e.seedPost(t, author, "still here", nil)

	resp := e.postForm(t, postURL(post.ID)+"/delete", nil, intruder)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, postURL(post.ID), resp.Header.Get("Location"))

	total, err := e.repos.Post.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
