package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "arenax-backend/docs"
	"arenax-backend/internal/common/cache"
	"arenax-backend/internal/common/config"
	"arenax-backend/internal/common/logger"
	"arenax-backend/internal/common/middleware"
	adminHTTP "arenax-backend/internal/features/admin/delivery/http"
	adminProvider "arenax-backend/internal/features/admin/repository/provider"
	adminService "arenax-backend/internal/features/admin/service"
	referralHTTP "arenax-backend/internal/features/referral/delivery/http"
	referralModels "arenax-backend/internal/features/referral/models"
	referralProvider "arenax-backend/internal/features/referral/repository/provider"
	referralService "arenax-backend/internal/features/referral/service"
	sessionHTTP "arenax-backend/internal/features/session/delivery/http"
	"arenax-backend/internal/features/session/registry"
	sessionProvider "arenax-backend/internal/features/session/repository/provider"
	sessionService "arenax-backend/internal/features/session/service"
	tournamentHTTP "arenax-backend/internal/features/tournament/delivery/http"
	tournamentProvider "arenax-backend/internal/features/tournament/repository/provider"
	tournamentService "arenax-backend/internal/features/tournament/service"
	walletHTTP "arenax-backend/internal/features/wallet/delivery/http"
	walletProvider "arenax-backend/internal/features/wallet/repository/provider"
	walletService "arenax-backend/internal/features/wallet/service"
	"arenax-backend/internal/platform/provider"
	"arenax-backend/internal/platform/redis"
)

// @title           ArenaX API
// @version         1.0
// @description     Backend for the ArenaX esports tournament platform.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey SessionID
// @in header
// @name Authorization
// @description Opaque session ID as a bearer token

// @tag.name auth
// @tag.description Login, signup and session lifecycle

// @tag.name tournaments
// @tag.description Tournament listings, joining and results

// @tag.name wallet
// @tag.description Balances, transactions and withdrawals

// @tag.name referral
// @tag.description Referral program stats and terms

// @tag.name admin
// @tag.description Back-office operations

func main() {
	cfg := config.Load()

	logger.Init("arenax-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting ArenaX backend")

	ctx := context.Background()

	redisClient, err := redis.Open(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.New(redisClient)

	// Anon client runs with row level security under each user's token;
	// the service client bypasses it for back-office operations.
	anonClient := provider.New(cfg.Provider.URL, cfg.Provider.AnonKey, cfg.Provider.Timeout)
	serviceClient := anonClient
	if cfg.Provider.ServiceKey != "" {
		serviceClient = provider.New(cfg.Provider.URL, cfg.Provider.ServiceKey, cfg.Provider.Timeout)
	}

	profileRepo := sessionProvider.NewProviderRepository(anonClient)
	sessionRegistry := registry.New(sessionService.Deps{
		Authenticator: anonClient,
		Profiles:      profileRepo,
		Tokens:        registry.NewTokenStore(cacheService, cfg.Session.TTL),
		RefreshLeeway: cfg.Session.RefreshLeeway,
	})
	defer sessionRegistry.Close()

	tournamentSvc := tournamentService.NewTournamentService(
		tournamentProvider.NewProviderRepository(anonClient), cacheService)
	walletSvc := walletService.NewWalletService(
		walletProvider.NewProviderRepository(anonClient), cfg.Referral.MinimumWithdraw)
	referralSvc := referralService.NewReferralService(
		referralProvider.NewProviderRepository(anonClient), referralModels.Terms{
			MemberBonus:     cfg.Referral.MemberBonus,
			WinningBonus:    cfg.Referral.WinningBonus,
			MinimumWithdraw: cfg.Referral.MinimumWithdraw,
		})
	adminSvc := adminService.NewAdminService(
		adminProvider.NewProviderRepository(serviceClient), cacheService)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Session(sessionRegistry))

	v1 := router.Group("/api/v1")
	sessionHTTP.NewAuthHandler(sessionRegistry).RegisterRoutes(v1)
	tournamentHTTP.NewTournamentHandler(tournamentSvc).RegisterRoutes(v1)
	walletHTTP.NewWalletHandler(walletSvc).RegisterRoutes(v1)
	referralHTTP.NewReferralHandler(referralSvc).RegisterRoutes(v1)
	adminHTTP.NewAdminHandler(adminSvc).RegisterRoutes(v1)

	registerProbes(router, redisClient)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func registerProbes(router *gin.Engine, redisClient *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "arenax-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "redis unavailable",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "arenax-backend",
		})
	})
}
