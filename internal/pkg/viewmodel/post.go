package viewmodel

import (
	"html/template"

	"yatube/app/forms"
	"yatube/app/models"
	"yatube/internal/pkg/pagination"
)

// PostIndex backs the front page. The post list arrives pre-rendered so
// the fragment can be shared through the page cache.
type PostIndex struct {
	Layout
	Fragment template.HTML
}

// PostList backs the index, group, profile and feed pages. Group and
// Author are only set on their respective pages.
type PostList struct {
	Layout
	Posts     []models.Post
	Pager     pagination.Page
	Group     *models.Group
	Author    *models.User
	PostCount int64
	Following bool
}

// PostDetail backs the single-post page with its comments and the
// comment submission form.
type PostDetail struct {
	Layout
	Post            models.Post
	Comments        []models.Comment
	AuthorPostCount int64
	CommentErrors   forms.FieldErrors
}

// PostForm backs the create and edit forms. Text and GroupValue hold the
// submitted values so an invalid submission redisplays without data loss.
type PostForm struct {
	Layout
	IsEdit     bool
	PostID     uint
	Text       string
	GroupValue string
	Groups     []models.Group
	Errors     forms.FieldErrors
}
