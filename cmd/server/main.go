package main

import (
	"log"
	"net/http"
	"os"

	_ "albumify/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"albumify/internal/auth"
	"albumify/internal/cache"
	"albumify/internal/config"
	"albumify/internal/db"
	"albumify/internal/handler"
	"albumify/internal/mail"
	"albumify/internal/model"
	"albumify/internal/repository"
	"albumify/internal/router"
	"albumify/internal/service"
)

// @title Albumify API
// @version 1.0
// @description REST API for user accounts and photo albums with JWT authentication and email password recovery.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Album{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Album{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	albumRepo := repository.NewAlbumRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.ResetSecret)
	hasher := auth.NewPasswordHasher()
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, hasher, mailer, cfg.APIBaseURL)
	albumService := service.NewAlbumService(albumRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	albumHandler := handler.NewAlbumHandler(albumService)

	// Register routes
	router.Register(e, cfg, authHandler, albumHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
