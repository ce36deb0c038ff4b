package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/repositories"
	"todoapp/internal/services"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// AuthMiddleware validates the session cookie and loads the account behind
// it. Any failure degrades to 401; nothing here ever crashes the request.
func AuthMiddleware(auth services.AuthService, accounts repositories.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token is not present"})
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		// the account may have vanished since the token was minted
		account, err := accounts.GetByID(claims.AccountID)
		if err != nil || account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user doesn't exist"})
			return
		}

		c.Set("account", account)
		c.Next()
	}
}
