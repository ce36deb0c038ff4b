package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/models"
	"todoapp/internal/services"
)

type GoogleAuthHandler struct {
	googleService services.GoogleAuthService
	authService   services.AuthService
}

func NewGoogleAuthHandler(googleService services.GoogleAuthService, authService services.AuthService) *GoogleAuthHandler {
	return &GoogleAuthHandler{googleService: googleService, authService: authService}
}

// @Summary      Google login
// @Description  Signs in an existing account from a Google OAuth authorization code
// @Tags         Auth
// @Produce      json
// @Param        code  query     string  true  "OAuth authorization code"
// @Success      201   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]string
// @Router       /api/user/googleLogin [get]
func (h *GoogleAuthHandler) Login(c *gin.Context) {
	account, err := h.googleService.Login(c.Query("code"))
	if err != nil {
		log.Printf("[google][login] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "error": err.Error()})
		return
	}
	h.reply(c, account, "Login successfully")
}

// @Summary      Google register
// @Description  Creates a verified, passwordless account from a Google OAuth authorization code
// @Tags         Auth
// @Produce      json
// @Param        code  query     string  true  "OAuth authorization code"
// @Success      201   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]string
// @Router       /api/user/googleRegister [get]
func (h *GoogleAuthHandler) Register(c *gin.Context) {
	account, err := h.googleService.Register(c.Query("code"))
	if err != nil {
		log.Printf("[google][register] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "error": err.Error()})
		return
	}
	h.reply(c, account, "Registered successfully")
}

func (h *GoogleAuthHandler) reply(c *gin.Context, account *models.Account, message string) {
	token, err := h.authService.GenerateToken(account.ID, account.Email)
	if err != nil {
		log.Printf("[google][reply] sign token failed id=%d: %v", account.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "error": "failed to generate session token"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"user":    account.Reply(),
		"message": message,
	})
}
