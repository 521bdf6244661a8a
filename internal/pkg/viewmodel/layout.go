package viewmodel

import "github.com/gofiber/fiber/v2"

// Layout carries the fields every page template needs.
type Layout struct {
	Page       string
	IsLoggedIn bool
	Username   string
	Msg        fiber.Map
}
