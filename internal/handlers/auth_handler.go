package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapp/internal/models"
	"todoapp/internal/services"
)

type AuthHandler struct {
	accountService services.AccountService
	authService    services.AuthService
}

func NewAuthHandler(accountService services.AccountService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{accountService: accountService, authService: authService}
}

// @Summary      Register a new account
// @Description  Creates (or refreshes) an unverified account and sends an OTP by email or voice call
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      200       {object}  map[string]string
// @Failure      400       {object}  map[string]string
// @Router       /api/user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.Register(&req); err != nil {
		log.Printf("[auth][register] failed email=%q: %v", req.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := fmt.Sprintf("Verification email successfully sent to %s", req.Name)
	if req.VerificationMethod == "phone" {
		message = "OTP sent."
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// @Summary      Verify OTP
// @Description  Confirms the most recently issued code and opens a session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        otp  body      models.VerifyOtpRequest  true  "OTP verification data"
// @Success      201  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/user/otpverification [post]
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// binding already guarantees 5 numeric characters
	otp, err := strconv.Atoi(req.OTP)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OTP format"})
		return
	}

	account, err := h.accountService.VerifyOtp(req.Email, req.Phone, otp)
	if err != nil {
		log.Printf("[auth][verify] failed email=%q phone=%q: %v", req.Email, req.Phone, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.GenerateToken(account.ID, account.Email)
	if err != nil {
		log.Printf("[auth][verify] sign token failed id=%d: %v", account.ID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to generate session token"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"user":    account.Reply(),
		"message": "OTP is verified!",
	})
}

// @Summary      Log in
// @Description  Authenticates a verified account and opens a session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Login data"
// @Success      201    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]string
// @Router       /api/user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("[auth][login] failed email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.GenerateToken(account.ID, account.Email)
	if err != nil {
		log.Printf("[auth][login] sign token failed id=%d: %v", account.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate session token"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"user":    account.Reply(),
		"message": "Login successfully",
	})
}

// @Summary      Log out
// @Description  Clears the session cookie; always succeeds
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/user/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// @Summary      Request a password reset
// @Description  Emails a one-time reset link valid for 15 minutes
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Router       /api/user/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.ForgotPassword(req.Email); err != nil {
		log.Printf("[auth][forgot] failed email=%q: %v", req.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Email sent to %s successfully.", req.Email)})
}

// @Summary      Reset password
// @Description  Consumes a reset token and replaces the account password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                       true  "Raw reset token"
// @Param        reset  body      models.ResetPasswordRequest  true  "New password"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Router       /api/user/resetPassword/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.ResetPassword(c.Param("token"), req.Password, req.ConfirmPassword); err != nil {
		log.Printf("[auth][reset] failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// @Summary      Check session
// @Description  Returns the account behind a valid session cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/user/check [get]
func (h *AuthHandler) Check(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    account.Reply(),
		"message": "Valid user",
	})
}
