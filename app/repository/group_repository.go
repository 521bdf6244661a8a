package repository

import (
	"yatube/app/models"

	"gorm.io/gorm"
)

// groupRepository implements the GroupRepository interface
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository instance
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create creates a new group in the database
func (r *groupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// GetByID retrieves a group by its ID
func (r *groupRepository) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	err := r.db.First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetBySlug retrieves a group by its slug
func (r *groupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.db.Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetAll retrieves all groups ordered by title
func (r *groupRepository) GetAll() ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Order("title ASC").Find(&groups).Error
	return groups, err
}

// SlugExists checks if a slug already exists
func (r *groupRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Group{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
