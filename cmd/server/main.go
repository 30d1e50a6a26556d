package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ministerio-antioquia/antioquia-api/api/swagger"
	"github.com/ministerio-antioquia/antioquia-api/internal/handler"
	"github.com/ministerio-antioquia/antioquia-api/internal/middleware"
	"github.com/ministerio-antioquia/antioquia-api/internal/period"
	"github.com/ministerio-antioquia/antioquia-api/internal/realtime"
	"github.com/ministerio-antioquia/antioquia-api/internal/repository"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	"github.com/ministerio-antioquia/antioquia-api/pkg/cache"
	"github.com/ministerio-antioquia/antioquia-api/pkg/config"
	"github.com/ministerio-antioquia/antioquia-api/pkg/database"
	"github.com/ministerio-antioquia/antioquia-api/pkg/logger"
	corsmiddleware "github.com/ministerio-antioquia/antioquia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ministerio-antioquia/antioquia-api/pkg/middleware/requestid"
)

// @title Ministerio Antioquia API
// @version 1.0.0
// @description Back office for the ministry site: prayer clock, post-it board, suggestions, news and missionaries.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logr.Sugar().Warnw("invalid timezone, falling back to UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}
	resolver := period.NewResolver(loc)

	validate := validator.New()
	broker := realtime.NewBroker(logr)

	// Repositories
	clockRepo := repository.NewClockRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	requestRepo := repository.NewPrayerRequestRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	postItRepo := repository.NewPostItRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	missionaryRepo := repository.NewMissionaryRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}

	// Services
	clockOpts := []service.ClockServiceOption{service.WithSharedHours(cfg.Prayer.AllowSharedHours)}
	boardOpts := []service.BoardServiceOption{}
	suggestionOpts := []service.SuggestionServiceOption{}
	if cacheRepo != nil {
		clockOpts = append(clockOpts, service.WithClockCache(cacheRepo, cfg.Cache.ViewTTL))
		boardOpts = append(boardOpts, service.WithBoardCache(cacheRepo, cfg.Cache.ViewTTL))
		suggestionOpts = append(suggestionOpts, service.WithSuggestionCache(cacheRepo))
	}

	clockSvc := service.NewClockService(clockRepo, volunteerRepo, requestRepo, resolver, validate, logr, clockOpts...)
	boardSvc := service.NewBoardService(boardRepo, postItRepo, resolver, validate, logr, boardOpts...)
	suggestionSvc := service.NewSuggestionService(suggestionRepo, boardSvc, broker, validate, logr, suggestionOpts...)
	newsSvc := service.NewNewsService(newsRepo, validate, logr)
	missionarySvc := service.NewMissionaryService(missionaryRepo, validate, logr)
	settingSvc := service.NewSettingService(settingRepo, validate, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	notificationSvc := service.NewNotificationService(subscriptionRepo, service.PushOptions{
		VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
		Subscriber:      cfg.Push.Subscriber,
		Workers:         cfg.Push.Workers,
	}, validate, logr)

	metricsSvc := service.NewMetricsService(broker.Subscribers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Push.Enabled {
		notificationSvc.Start(ctx)
		defer notificationSvc.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Clock:      handler.NewClockHandler(clockSvc),
		Board:      handler.NewBoardHandler(boardSvc),
		Suggestion: handler.NewSuggestionHandler(suggestionSvc, metricsSvc),
		News:       handler.NewNewsHandler(newsSvc),
		Missionary: handler.NewMissionaryHandler(missionarySvc),
		Setting:    handler.NewSettingHandler(settingSvc),
		Push:       handler.NewPushHandler(notificationSvc, metricsSvc),
		Events:     handler.NewEventsHandler(broker, logr),
	}, authSvc, settingSvc, metricsSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	broker.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
