package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"yatube/app/forms"
	"yatube/app/models"
	"yatube/internal/pkg/usercontext"
)

// HandleAddComment attaches a comment to a post. The handler always
// redirects back to the post detail view; an invalid submission creates
// nothing and carries the error as a flash message.
func HandleAddComment(c *fiber.Ctx) error {
	post, ok, err := findPost(c)
	if err != nil {
		return err
	}
	if !ok {
		return renderNotFound(c)
	}

	form := forms.BindCommentForm(c)
	if errs := form.Validate(); !errs.Empty() {
		fm := fiber.Map{"type": "error", "message": errs.Get("text")}
		return flash.WithError(c, fm).Redirect(postURL(post.ID), fiber.StatusSeeOther)
	}

	uc := usercontext.GetUserContext(c)
	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: uc.UserID,
		Text:     form.Text,
	}
	if err := repos.Comment.Create(comment); err != nil {
		return err
	}

	return c.Redirect(postURL(post.ID), fiber.StatusSeeOther)
}
