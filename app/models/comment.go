package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Comment is a reply attached to exactly one post. Comments are removed
// together with their post and together with their author (dual cascade,
// enforced by the schema migrations).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Text      string    `gorm:"type:text" json:"text" validate:"required,min=1"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (c *Comment) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
