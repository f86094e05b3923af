package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/config"
	"github.com/helplink/api/internal/handler"
	"github.com/helplink/api/internal/middleware"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/repository"
	"github.com/helplink/api/internal/service"
	"github.com/helplink/api/migrations"
	"github.com/helplink/api/pkg/auth"
	"github.com/helplink/api/pkg/mailer"
	"github.com/helplink/api/pkg/storage"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// @title           HelpLink API
// @version         1.0
// @description     Donation and volunteering platform backend: accounts, posts, donations, supporters, comments, chat and moderation.

// @contact.name   API Support
// @contact.email  support@helplink.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5001
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting HelpLink API Server [env=%s]", cfg.App.Env)

	// ==================== Database (PostgreSQL) ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.Env == "production" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	// ==================== Run Migrations ====================
	if err := migrations.Run(cfg.DB.URL()); err != nil {
		log.Printf("⚠️  Migration warning: %v", err)
		log.Println("📦 Falling back to GORM AutoMigrate...")
		if err := db.AutoMigrate(
			&model.User{},
			&model.OTPCode{},
			&model.Post{},
			&model.PostPhoto{},
			&model.PostVideo{},
			&model.PostReaction{},
			&model.Donation{},
			&model.DonationProof{},
			&model.Supporter{},
			&model.SupporterProof{},
			&model.Comment{},
			&model.Chat{},
			&model.ChatParticipant{},
			&model.Message{},
			&model.MessageMedia{},
			&model.MessageReceipt{},
		); err != nil {
			log.Fatalf("❌ Failed to migrate database: %v", err)
		}
	}
	log.Println("✅ Database migrated successfully")

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")

	// ==================== Email (SMTP) ====================
	mailClient := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})
	if mailClient.Configured() {
		log.Printf("📧 SMTP configured: %s:%s", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Println("⚠️  SMTP not configured, verification codes will be echoed to the console")
	}

	// ==================== MinIO Storage ====================
	minioStorage, err := storage.NewMinIO(storage.Config{
		Endpoint:  cfg.MinIO.Endpoint,
		PublicURL: cfg.MinIO.PublicURL,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to MinIO: %v", err)
	}
	log.Println("✅ Connected to MinIO")

	// ==================== Initialize Layers ====================
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	blacklist := auth.NewTokenBlacklist(rdb)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	postRepo := repository.NewPostRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	supporterRepo := repository.NewSupporterRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, minioStorage, blacklist)
	otpService := service.NewOTPService(otpRepo, userRepo, mailClient, cfg.OTP.CodeLength, cfg.OTP.ValidityMinutes)
	credentialService := service.NewCredentialService(userRepo, minioStorage)
	postService := service.NewPostService(postRepo, minioStorage)
	donationService := service.NewDonationService(donationRepo, postRepo, minioStorage)
	supporterService := service.NewSupporterService(supporterRepo, postRepo, minioStorage)
	commentService := service.NewCommentService(commentRepo, postRepo, minioStorage)
	chatService := service.NewChatService(chatRepo, minioStorage)
	adminService := service.NewAdminService(userRepo, postRepo, donationRepo, commentRepo, adminRepo, minioStorage)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, otpService, jwtManager, minioStorage)
	credentialHandler := handler.NewCredentialHandler(credentialService)
	postHandler := handler.NewPostHandler(postService)
	donationHandler := handler.NewDonationHandler(donationService)
	supporterHandler := handler.NewSupporterHandler(supporterService)
	commentHandler := handler.NewCommentHandler(commentService)
	chatHandler := handler.NewChatHandler(chatService)
	adminHandler := handler.NewAdminHandler(adminService)

	// ==================== Gin Router ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes()

	// Swagger UI; serve swagger.json outside the /swagger wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Index & health check
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "HelpLink API",
			"version": "1.0",
			"docs":    "/swagger/index.html",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "helplink-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// ==================== API Routes ====================
	api := router.Group("/api/v1")
	{
		// Auth routes (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.Auth(jwtManager, blacklist, userRepo))
		{
			// Auth & profile
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.Me)
			protected.PUT("/auth/me", authHandler.UpdateProfile)
			protected.PUT("/auth/me/profile-image", authHandler.UploadProfileImage)
			protected.PUT("/auth/me/credentials", authHandler.UpdateCredentials)
			protected.POST("/auth/change-password", authHandler.ChangePassword)

			// Credentials & files
			protected.GET("/users/:id/credentials", credentialHandler.Credentials)
			protected.GET("/files/url", credentialHandler.FileURL)

			// Posts
			protected.POST("/posts", postHandler.Create)
			protected.GET("/posts", postHandler.List)
			protected.GET("/posts/:id", postHandler.Get)
			protected.PUT("/posts/:id", postHandler.Update)
			protected.DELETE("/posts/:id", postHandler.Delete)
			protected.POST("/posts/:id/close", postHandler.Close)
			protected.POST("/posts/:id/react", postHandler.React)
			protected.DELETE("/posts/:id/react", postHandler.Unreact)

			// Donations
			protected.POST("/posts/:id/donate", donationHandler.Donate)
			protected.GET("/donations", donationHandler.List)
			protected.GET("/donations/:id", donationHandler.Get)
			protected.PUT("/donations/:id", donationHandler.Update)
			protected.POST("/donations/:id/proofs", donationHandler.AddProof)

			// Supporters
			protected.POST("/posts/:id/support", supporterHandler.Support)
			protected.GET("/supporters", supporterHandler.List)
			protected.GET("/supporters/:id", supporterHandler.Get)
			protected.PUT("/supporters/:id", supporterHandler.Update)
			protected.POST("/supporters/:id/proofs", supporterHandler.AddProof)

			// Comments
			protected.POST("/posts/:id/comments", commentHandler.Create)
			protected.GET("/posts/:id/comments", commentHandler.List)
			protected.PUT("/comments/:id", commentHandler.Update)
			protected.DELETE("/comments/:id", commentHandler.Delete)

			// Chats
			protected.POST("/chats", chatHandler.Create)
			protected.GET("/chats", chatHandler.List)
			protected.GET("/chats/:id", chatHandler.Get)
			protected.POST("/chats/:id/messages", chatHandler.SendMessage)
			protected.GET("/chats/:id/messages", chatHandler.ListMessages)
			protected.POST("/chats/:id/seen", chatHandler.MarkSeen)
			protected.POST("/chats/:id/participants", chatHandler.AddParticipant)

			// Admin (moderation panel)
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/verification-requests", adminHandler.ListVerificationRequests)
				admin.PUT("/users/:id/badge", adminHandler.UpdateBadge)
				admin.PUT("/users/:id/account-type", adminHandler.UpdateAccountType)
				admin.PUT("/posts/:id/status", adminHandler.UpdatePostStatus)
				admin.PUT("/donations/:id/status", adminHandler.UpdateDonationStatus)
				admin.GET("/comments", adminHandler.ListComments)
				admin.PUT("/comments/:id/status", adminHandler.UpdateCommentStatus)
				admin.GET("/statistics", adminHandler.Statistics)
				admin.GET("/dashboard", adminHandler.Dashboard)
			}
		}
	}

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 HelpLink API running on http://0.0.0.0:%s", cfg.App.Port)
	log.Printf("📋 API docs: http://0.0.0.0:%s/swagger/index.html", cfg.App.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}
	log.Println("✅ Server exited gracefully")
}
