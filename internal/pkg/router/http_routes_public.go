package router

import (
	"github.com/gofiber/fiber/v2"

	"yatube/app/controllers"
	"yatube/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Post listings
	app.Get("/", controllers.HandlePostIndex)
	app.Get("/group/:slug", controllers.HandleGroupPosts)
	app.Get("/profile/:username", controllers.HandleProfile)
	app.Get("/posts/:id", controllers.HandlePostDetail)

	// Auth
	app.Get("/login", controllers.HandleAuthLogin)
	app.Post("/login", controllers.HandleAuthLogin)
	app.Get("/register", controllers.HandleAuthRegister)
	app.Post("/register", controllers.HandleAuthRegister)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}

func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	// Posts
	app.Get("/create", middleware.RequireAuth, controllers.HandlePostCreate)
	app.Post("/create", middleware.RequireAuth, controllers.HandlePostCreate)
	app.Get("/posts/:id/edit", middleware.RequireAuth, controllers.HandlePostEdit)
	app.Post("/posts/:id/edit", middleware.RequireAuth, controllers.HandlePostEdit)
	app.Post("/posts/:id/delete", middleware.RequireAuth, controllers.HandlePostDelete)

	// Comments
	app.Post("/posts/:id/comment", middleware.RequireAuth, controllers.HandleAddComment)

	// Follows
	app.Get("/follow", middleware.RequireAuth, controllers.HandleFollowIndex)
	app.Get("/profile/:username/follow", middleware.RequireAuth, controllers.HandleFollow)
	app.Get("/profile/:username/unfollow", middleware.RequireAuth, controllers.HandleUnfollow)
}
