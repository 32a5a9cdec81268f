package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	_ "buslink/docs" // swagger docs

	"buslink/internal/auth"
	"buslink/internal/cache"
	"buslink/internal/config"
	"buslink/internal/db"
	"buslink/internal/handler"
	"buslink/internal/logger"
	"buslink/internal/model"
	"buslink/internal/repository"
	"buslink/internal/router"
	"buslink/internal/service"
)

// @title BusLink Admin API
// @version 1.0
// @description Administration panel backend for bus transport companies: identity-backed sessions and company-profile management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Company{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	companyRepo := repository.NewCompanyRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	companyService := service.NewCompanyService(companyRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	companyHandler := handler.NewCompanyHandler(companyService)

	var authn auth.Authenticator
	switch cfg.AuthMode {
	case config.AuthModeNone:
		log.Warn().Str("user_id", cfg.DevUserID).Msg("authentication disabled, all requests run as dev user")
		authn = auth.NewStaticAuthenticator(cfg.DevUserID)
	default:
		authn = auth.NewJWTAuthenticator(cfg.JWTSecret)
	}

	router.Register(e, authn, authHandler, companyHandler)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		if strings.HasPrefix(cfg.SwaggerHost, "http://") || strings.HasPrefix(cfg.SwaggerHost, "https://") {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	}
	log.Info().Str("url", swaggerURL).Msg("swagger documentation available")

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
