package repository

import (
	"yatube/app/models"

	"gorm.io/gorm"
)

// followRepository implements the FollowRepository interface
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository instance
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow creates the relation if it does not already exist. Following the
// same author twice leaves exactly one row; self-follow is refused.
func (r *followRepository) Follow(followerID, authorID uint) error {
	if followerID == authorID {
		return models.ErrSelfFollow
	}

	var follow models.Follow
	result := r.db.Where("follower_id = ? AND author_id = ?", followerID, authorID).First(&follow)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return r.db.Create(&models.Follow{FollowerID: followerID, AuthorID: authorID}).Error
		}
		return result.Error
	}

	return nil
}

// Unfollow deletes the relation if present. Unfollowing twice is a no-op.
func (r *followRepository) Unfollow(followerID, authorID uint) error {
	return r.db.Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether the relation exists
func (r *followRepository) IsFollowing(followerID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).Count(&count).Error
	return count > 0, err
}
