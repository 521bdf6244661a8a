package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Group is a thematic community posts can be filed under. Deleting a
// group keeps its posts and clears their group reference.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200)" json:"title" validate:"required,max=200"`
	Slug        string    `gorm:"uniqueIndex;type:varchar(20)" json:"slug" validate:"required,max=20,slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *Group) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("slug", validateSlug); err != nil {
		return err
	}

	return v.Struct(g)
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}
