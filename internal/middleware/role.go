package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/gin-gonic/gin"
)

// Decision is the outcome of the authorization guard
type Decision int

const (
	// Continue lets the request reach the handler
	Continue Decision = iota
	// RedirectToLogin sends an anonymous visitor to the login page
	RedirectToLogin
	// Deny answers 403 to a signed-in user lacking the role
	Deny
)

// Decide is the guard's decision table; models.RoleGuest in allowed admits anonymous visitors.
func Decide(identity *auth.Identity, allowed []string) Decision {
	if identity == nil {
		if contains(allowed, models.RoleGuest) {
			return Continue
		}
		return RedirectToLogin
	}
	if contains(allowed, identity.Role) {
		return Continue
	}
	return Deny
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// GuardOptions tells RequireRole where to send anonymous visitors and how to render a denial
type GuardOptions struct {
	LoginPath string
	OnDenied  gin.HandlerFunc
}

// RequireRole is a middleware that lets the request through only if the user's role is allowed.
func RequireRole(opts GuardOptions, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch Decide(auth.Current(c), allowed) {
		case Continue:
			c.Next()
		case RedirectToLogin:
			if err := auth.AddFlash(c, auth.FlashError, "Ehhez az oldalhoz bejelentkezés szükséges!"); err != nil {
				logger(c).WithError(err).Warn("Could not store flash notice")
			}
			c.Redirect(http.StatusFound, opts.LoginPath)
			c.Abort()
		case Deny:
			c.Abort()
			if opts.OnDenied != nil {
				opts.OnDenied(c)
				return
			}
			c.String(http.StatusForbidden, "Hozzáférés megtagadva.")
		}
	}
}
