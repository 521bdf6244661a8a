package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"yatube/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; anonymous users are sent to
// the login page with a next parameter pointing back at the original
// destination.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
	}
	return c.Next()
}
