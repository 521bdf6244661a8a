package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"yatube/app/repository"
	"yatube/internal/pkg/constants"
	"yatube/internal/pkg/usercontext"
	"yatube/internal/pkg/viewmodel"
)

var repos *repository.Repositories

// uploadsDir is where post illustrations are stored; tests point it at a
// temporary directory.
var uploadsDir = constants.UploadsPath

// InitializeControllers wires the repository set the handlers run against
func InitializeControllers(r *repository.Repositories) {
	repos = r
}

// SetUploadsDir overrides the uploads directory. Intended for tests.
func SetUploadsDir(dir string) {
	uploadsDir = dir
}

// layout assembles the shared template fields for the current request
func layout(c *fiber.Ctx, page string) viewmodel.Layout {
	uc := usercontext.GetUserContext(c)
	return viewmodel.Layout{
		Page:       page,
		IsLoggedIn: uc.IsLoggedIn,
		Username:   uc.Username,
		Msg:        flash.Get(c),
	}
}

// isNotFound reports whether the storage error means a missing row
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// renderNotFound renders the shared 404 page
func renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", viewmodel.Layout{Page: "Not found"}, "layouts/main")
}

// HandleNotFound is the catch-all for unknown routes
func HandleNotFound(c *fiber.Ctx) error {
	return renderNotFound(c)
}
