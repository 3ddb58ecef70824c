package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookbuddy/bookbuddy-api/internal/application"
	"github.com/bookbuddy/bookbuddy-api/pkg/helpers"
	"github.com/bookbuddy/bookbuddy-api/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserIDKey   = "userID"
	CtxUserNameKey = "userName"
	CtxUserRoleKey = "userRole"
)

// Auth validates the access token cookie and the session slot. The token
// is only transport; the byte store's currentUser snapshot is the truth,
// and both must agree on who is logged in. On success the user's id, name
// and role are set in the Gin context.
func Auth(jwtm *helpers.JWTManager, sessions *application.SessionManager, guard *application.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			abortRedirect(c, http.StatusUnauthorized, "missing access token", application.LoginPath)
			return
		}
		claims, err := jwtm.ParseAccessToken(token)
		if err != nil {
			abortRedirect(c, http.StatusUnauthorized, "invalid access token", application.LoginPath)
			return
		}

		if d := guard.RequireAuth(); !d.Allowed {
			abortRedirect(c, http.StatusUnauthorized, "not logged in", d.RedirectTo)
			return
		}
		_, u := sessions.State()
		if u == nil || u.ID != claims.UserID {
			abortRedirect(c, http.StatusUnauthorized, "session not found", application.LoginPath)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserNameKey, u.Name)
		c.Set(CtxUserRoleKey, string(u.Role))
		c.Next()
	}
}

// RequireOwner gates owner-only routes. Runs after Auth, so a failed check
// means an authenticated non-owner: 403 plus the dashboard redirect the
// legacy client performed.
func RequireOwner(guard *application.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := guard.RequireOwner()
		if !d.Allowed {
			status := http.StatusForbidden
			if d.RedirectTo == application.LoginPath {
				status = http.StatusUnauthorized
			}
			abortRedirect(c, status, "owner account required", d.RedirectTo)
			return
		}
		c.Next()
	}
}

func abortRedirect(c *gin.Context, status int, msg, redirectTo string) {
	response.Error[any](c, status, msg, gin.H{"redirect": redirectTo})
	c.Abort()
}
