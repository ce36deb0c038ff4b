package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/middleware"
	"todoapp/internal/models"
)

func accountFromCtx(c *gin.Context) (*models.Account, bool) {
	v, ok := c.Get("account")
	if !ok {
		return nil, false
	}
	account, ok := v.(*models.Account)
	return account, ok
}

// setSessionCookie delivers the token as an HTTP-only, secure, cross-site
// cookie valid for one hour.
func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, token, 3600, "/", "", true, true)
}

// clearSessionCookie replaces the cookie with an already-expired one.
func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
}
