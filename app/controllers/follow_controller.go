package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"yatube/app/models"
	"yatube/internal/pkg/pagination"
	"yatube/internal/pkg/usercontext"
	"yatube/internal/pkg/viewmodel"
)

// HandleFollow subscribes the current user to an author. Creating an
// existing relation and following oneself are both no-ops; either way the
// request ends on the author's profile.
func HandleFollow(c *fiber.Ctx) error {
	author, err := repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return err
	}

	uc := usercontext.GetUserContext(c)
	if err := repos.Follow.Follow(uc.UserID, author.ID); err != nil && !errors.Is(err, models.ErrSelfFollow) {
		return err
	}

	return c.Redirect(profileURL(author.Username), fiber.StatusSeeOther)
}

// HandleUnfollow removes the subscription if present and redirects to the
// author's profile.
func HandleUnfollow(c *fiber.Ctx) error {
	author, err := repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return err
	}

	uc := usercontext.GetUserContext(c)
	if err := repos.Follow.Unfollow(uc.UserID, author.ID); err != nil {
		return err
	}

	return c.Redirect(profileURL(author.Username), fiber.StatusSeeOther)
}

// HandleFollowIndex renders the personalized feed: posts authored by
// anyone the current user follows, newest-first.
func HandleFollowIndex(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	total, err := repos.Post.CountFeed(uc.UserID)
	if err != nil {
		return err
	}
	pager := pagination.Paginate(total, pagination.ParsePage(c.Query("page")))
	posts, err := repos.Post.ListFeed(uc.UserID, pager.Offset, pager.Size)
	if err != nil {
		return err
	}

	return c.Render("posts/follow", viewmodel.PostList{
		Layout: layout(c, "Your feed"),
		Posts:  posts,
		Pager:  pager,
	}, "layouts/main")
}
