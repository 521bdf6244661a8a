package router

import (
	"github.com/gofiber/fiber/v2"

	"yatube/app/controllers"
	"yatube/app/repository"
	"yatube/internal/pkg/database"
	"yatube/internal/pkg/middleware"
	"yatube/internal/pkg/session"
)

type HttpRouter struct {
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// wire the handlers against the shared database
	repository.InitializeFactory(database.GetDB())
	controllers.InitializeControllers(repository.GetGlobalRepositories())

	// resolve the session into a user context on every request
	app.Use(middleware.UserContext)

	h.registerPublicRoutes(app)
	h.registerProtectedRoutes(app)

	// everything else is a 404
	app.Use(controllers.HandleNotFound)
}
