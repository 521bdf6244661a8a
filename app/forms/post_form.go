package forms

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"yatube/app/repository"
)

// PostForm carries the submitted fields for creating or editing a post.
// The image file is handled separately by the controller; the form keeps
// only the text and the optional group selection.
type PostForm struct {
	Text    string `validate:"required"`
	GroupID *uint

	groupRaw     string
	groupInvalid bool
}

// BindPostForm extracts the post fields from the request body. Binding
// never touches storage.
func BindPostForm(c *fiber.Ctx) *PostForm {
	f := &PostForm{
		Text:     strings.TrimSpace(c.FormValue("text")),
		groupRaw: strings.TrimSpace(c.FormValue("group")),
	}
	if f.groupRaw != "" {
		id, err := strconv.ParseUint(f.groupRaw, 10, 32)
		if err != nil || id == 0 {
			f.groupInvalid = true
		} else {
			gid := uint(id)
			f.GroupID = &gid
		}
	}
	return f
}

// Validate checks the submitted fields against the same constraints the
// schema enforces and verifies the selected group exists. Returns nil on
// success; never persists anything.
func (f *PostForm) Validate(groups repository.GroupRepository) FieldErrors {
	errs := FieldErrors{}

	v := validator.New()
	if err := v.Struct(f); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				if fe.Field() == "Text" {
					errs["text"] = "Post text is required"
				}
			}
		}
	}

	if f.groupInvalid {
		errs["group"] = "Select a valid group"
	} else if f.GroupID != nil {
		if _, err := groups.GetByID(*f.GroupID); err != nil {
			errs["group"] = "Select a valid group"
		}
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

// GroupValue returns the raw submitted group id for form redisplay
func (f *PostForm) GroupValue() string {
	return f.groupRaw
}
