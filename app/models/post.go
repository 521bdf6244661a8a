package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Post is a single publication. GroupID is optional; the image pair is
// empty when the post carries no illustration.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Text          string    `gorm:"type:text" json:"text" validate:"required,min=1"`
	AuthorID      uint      `gorm:"index;not null" json:"author_id"`
	Author        User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	GroupID       *uint     `gorm:"index" json:"group_id,omitempty"`
	Group         *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	ImagePath     string    `gorm:"type:varchar(255)" json:"image_path"`
	ThumbnailPath string    `gorm:"type:varchar(255)" json:"thumbnail_path"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// Preview returns the first limit runes of the text, whole text when it
// already fits. Used for page titles and list headings.
func (p *Post) Preview(limit int) string {
	runes := []rune(p.Text)
	if len(runes) <= limit {
		return p.Text
	}

	return string(runes[:limit])
}

// HasImage reports whether the post carries an illustration.
func (p *Post) HasImage() bool {
	return p.ImagePath != ""
}
