package controllers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"yatube/app/models"
	"yatube/internal/pkg/session"
	"yatube/internal/pkg/usercontext"
	"yatube/internal/pkg/viewmodel"
)

// HandleAuthLogin renders the login form and signs the user in. A next
// parameter set by RequireAuth sends the user back to where they came from.
func HandleAuthLogin(c *fiber.Ctx) error {
	next := safeNext(c.Query("next", c.FormValue("next")))

	if c.Method() != fiber.MethodPost {
		return c.Render("auth/login", viewmodel.Auth{
			Layout: layout(c, "Log in"),
			Next:   next,
		}, "layouts/main")
	}

	fm := fiber.Map{"type": "error"}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := repos.User.GetByEmail(c.FormValue("email"))
	if err != nil {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(loginURL(next))
	}

	if !user.CheckPassword(c.FormValue("password")) {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(loginURL(next))
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(loginURL(next))
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Username)

	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(loginURL(next))
	}

	fm = fiber.Map{"type": "success", "message": "Welcome back!"}

	target := "/"
	if next != "" {
		target = next
	}
	return flash.WithSuccess(c, fm).Redirect(target)
}

// HandleAuthRegister renders the signup form and creates the account
func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/register", viewmodel.Auth{
			Layout: layout(c, "Sign up"),
		}, "layouts/main")
	}

	user, err := models.CreateUser(c.FormValue("username"), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/register")
	}

	if err := repos.User.Create(user); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "username or email is already taken",
		}

		return flash.WithError(c, fm).Redirect("/register")
	}

	fm := fiber.Map{"type": "success", "message": "Registration complete, you can log in now"}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleAuthLogout destroys the session
func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{"type": "success", "message": "See you soon!"}

	c.Locals(usercontext.KeyFromProtected, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

func loginURL(next string) string {
	if next == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// safeNext keeps redirects on-site: only relative paths survive
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
