package main

import (
	"log"
	"net/http"

	_ "cinelog/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cinelog/internal/auth"
	"cinelog/internal/cache"
	"cinelog/internal/config"
	"cinelog/internal/db"
	"cinelog/internal/handler"
	"cinelog/internal/model"
	"cinelog/internal/repository"
	"cinelog/internal/router"
	"cinelog/internal/service"
)

// @title Cinelog API
// @version 1.0
// @description Personal movie collection API with JWT authentication. Every movie belongs to exactly one user.
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
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	// Deleting a user cascades to their movies at the storage layer.
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Movie{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, service.NewUserValidator(), jwtService, tokenStore)
	movieService := service.NewMovieService(movieRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	movieHandler := handler.NewMovieHandler(movieService)

	// Register routes
	router.Register(e, jwtService, authHandler, movieHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
