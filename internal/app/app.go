package app

import (
	"database/sql"
	"fmt"
	"log"

	"todoapp/internal/config"
	"todoapp/internal/handlers"
	"todoapp/internal/middleware"
	"todoapp/internal/migrations"
	"todoapp/internal/repositories"
	"todoapp/internal/routes"
	"todoapp/internal/services"
	"todoapp/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "todoapp/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Migrations ===
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("failed to set migration dialect: ", err)
	}
	if err := goose.Up(db, "."); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	// === Repos ===
	accountRepo := repositories.NewAccountRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	todoRepo := repositories.NewTodoRepository(db)

	// === Provider clients ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	twilioClient := utils.NewTwilioClient(
		cfg.Twilio.AccountSID,
		cfg.Twilio.AuthToken,
		cfg.Twilio.FromNumber,
		cfg.Twilio.DryRun,
	)
	googleClient := utils.NewGoogleClient(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Google.RedirectURL,
	)

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.Auth.JWTKey))
	verificationService := services.NewVerificationService(emailService, twilioClient)
	accountService := services.NewAccountService(
		accountRepo,
		verificationRepo,
		verificationService,
		emailService,
		authService,
		cfg.Frontend.URL,
	)
	googleService := services.NewGoogleAuthService(accountRepo, googleClient)
	todoService := services.NewTodoService(todoRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService, authService)
	googleHandler := handlers.NewGoogleAuthHandler(googleService, authService)
	todoHandler := handlers.NewTodoHandler(todoService)

	sessionGuard := middleware.AuthMiddleware(authService, accountRepo)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware(cfg.Frontend.AllowedOrigins))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, googleHandler, todoHandler, sessionGuard)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening at %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

// corsMiddleware echoes only configured origins and allows credentials so
// the session cookie can travel cross-site.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
