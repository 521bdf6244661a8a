package models

import (
	"errors"
	"time"
)

// ErrSelfFollow is returned when a user tries to follow themself.
var ErrSelfFollow = errors.New("users cannot follow themselves")

// Follow is a subscription of one user to another's posts. The pair is
// unique, so following twice is a no-op at the storage layer.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"uniqueIndex:idx_follows_pair;not null" json:"follower_id"`
	Follower   User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	AuthorID   uint      `gorm:"uniqueIndex:idx_follows_pair;not null" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
