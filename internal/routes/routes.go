package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	googleHandler *handlers.GoogleAuthHandler,
	todoHandler *handlers.TodoHandler,
	sessionGuard gin.HandlerFunc,
) *gin.Engine {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "backend is alive"})
	})

	// ---- auth (public except /check)
	user := r.Group("/api/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/otpverification", authHandler.VerifyOtp)
		user.POST("/login", authHandler.Login)
		user.POST("/logout", authHandler.Logout)
		user.POST("/forgotPassword", authHandler.ForgotPassword)
		user.POST("/resetPassword/:token", authHandler.ResetPassword)
		user.GET("/googleLogin", googleHandler.Login)
		user.GET("/googleRegister", googleHandler.Register)
		user.GET("/check", sessionGuard, authHandler.Check)
	}

	// ---- todos (session required)
	todos := r.Group("/api/todo", sessionGuard)
	{
		todos.POST("/", todoHandler.Create)
		todos.GET("/", todoHandler.List)
		todos.GET("/:id", todoHandler.GetByID)
		todos.PUT("/:id", todoHandler.Update)
		todos.PATCH("/:id/toggle", todoHandler.Toggle)
		todos.DELETE("/:id", todoHandler.Delete)
	}

	return r
}
