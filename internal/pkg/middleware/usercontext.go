package middleware

import (
	"github.com/gofiber/fiber/v2"

	"yatube/internal/pkg/session"
	"yatube/internal/pkg/usercontext"
)

// UserContext resolves the session into a per-request user context.
// Anonymous requests get a default context; handlers never touch the
// session store directly for identity.
func UserContext(c *fiber.Ctx) error {
	store := session.GetSessionStore()
	if store == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)
	uid, ok := userID.(uint)
	if !ok {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     uid,
		Username:   username,
		IsLoggedIn: true,
	})

	return c.Next()
}
