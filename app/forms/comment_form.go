package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentForm carries the submitted text for a new comment.
type CommentForm struct {
	Text string `validate:"required"`
}

// BindCommentForm extracts the comment text from the request body
func BindCommentForm(c *fiber.Ctx) *CommentForm {
	return &CommentForm{Text: strings.TrimSpace(c.FormValue("text"))}
}

// Validate returns nil for a valid submission or field-level errors
func (f *CommentForm) Validate() FieldErrors {
	v := validator.New()
	if err := v.Struct(f); err != nil {
		return FieldErrors{"text": "Comment text is required"}
	}
	return nil
}
