package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/app/models"
	"yatube/app/repository/inmemory"
)

// bindForm runs the binder inside a real fiber request cycle
func bindPost(t *testing.T, values url.Values) *PostForm {
	t.Helper()
	var form *PostForm
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		form = BindPostForm(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err := app.Test(req, -1)
	require.NoError(t, err)
	require.NotNil(t, form)
	return form
}

func TestPostFormValid(t *testing.T) {
	store := inmemory.New()
	repos := store.Repositories()
	group := &models.Group{Title: "Тестовая группа", Slug: "test-slug", Description: "d"}
	require.NoError(t, repos.Group.Create(group))

	form := bindPost(t, url.Values{"text": {"Тестовый пост"}, "group": {"1"}})
	errs := form.Validate(repos.Group)
	assert.Nil(t, errs)
	require.NotNil(t, form.GroupID)
	assert.Equal(t, group.ID, *form.GroupID)
}

func TestPostFormRequiresText(t *testing.T) {
	repos := inmemory.New().Repositories()

	form := bindPost(t, url.Values{"text": {"   "}})
	errs := form.Validate(repos.Group)
	require.NotNil(t, errs)
	assert.True(t, errs.Has("text"))
}

func TestPostFormUnknownGroup(t *testing.T) {
	repos := inmemory.New().Repositories()

	form := bindPost(t, url.Values{"text": {"ok"}, "group": {"99"}})
	errs := form.Validate(repos.Group)
	require.NotNil(t, errs)
	assert.True(t, errs.Has("group"))
}

func TestPostFormMalformedGroup(t *testing.T) {
	repos := inmemory.New().Repositories()

	form := bindPost(t, url.Values{"text": {"ok"}, "group": {"not-a-number"}})
	errs := form.Validate(repos.Group)
	require.NotNil(t, errs)
	assert.True(t, errs.Has("group"))
	assert.Equal(t, "not-a-number", form.GroupValue())
}

func TestPostFormOptionalGroup(t *testing.T) {
	repos := inmemory.New().Repositories()

	form := bindPost(t, url.Values{"text": {"no group at all"}})
	errs := form.Validate(repos.Group)
	assert.Nil(t, errs)
	assert.Nil(t, form.GroupID)
}

func TestCommentFormValidation(t *testing.T) {
	valid := &CommentForm{Text: "a comment"}
	assert.Nil(t, valid.Validate())

	empty := &CommentForm{Text: ""}
	errs := empty.Validate()
	require.NotNil(t, errs)
	assert.True(t, errs.Has("text"))
	assert.False(t, errs.Empty())
}
