package repository

import (
	"yatube/app/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Count() (int64, error)
}

// GroupRepository defines the interface for group-related database operations
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id uint) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	GetAll() ([]models.Group, error)
	SlugExists(slug string) (bool, error)
}

// PostRepository defines the interface for post-related database operations.
// All list methods return posts newest-first.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Post, error)
	Count() (int64, error)
	ListByGroup(groupID uint, offset, limit int) ([]models.Post, error)
	CountByGroup(groupID uint) (int64, error)
	ListByAuthor(authorID uint, offset, limit int) ([]models.Post, error)
	CountByAuthor(authorID uint) (int64, error)
	ListFeed(followerID uint, offset, limit int) ([]models.Post, error)
	CountFeed(followerID uint) (int64, error)
}

// CommentRepository defines the interface for comment-related database operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(postID uint) ([]models.Comment, error)
	CountByPost(postID uint) (int64, error)
}

// FollowRepository defines the interface for the follow relation.
// Follow and Unfollow are idempotent.
type FollowRepository interface {
	Follow(followerID, authorID uint) error
	Unfollow(followerID, authorID uint) error
	IsFollowing(followerID, authorID uint) (bool, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User    UserRepository
	Group   GroupRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  FollowRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Group:   NewGroupRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
	}
}
