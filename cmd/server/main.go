package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	bookingapp "github.com/ssrlogistics/backend/internal/application/booking"
	identityapp "github.com/ssrlogistics/backend/internal/application/identity"
	invoiceapp "github.com/ssrlogistics/backend/internal/application/invoice"
	kycapp "github.com/ssrlogistics/backend/internal/application/kyc"
	quotationapp "github.com/ssrlogistics/backend/internal/application/quotation"
	"github.com/ssrlogistics/backend/internal/infrastructure/auth"
	"github.com/ssrlogistics/backend/internal/infrastructure/config"
	"github.com/ssrlogistics/backend/internal/infrastructure/logger"
	"github.com/ssrlogistics/backend/internal/infrastructure/mail"
	"github.com/ssrlogistics/backend/internal/infrastructure/otp"
	"github.com/ssrlogistics/backend/internal/infrastructure/persistence"
	"github.com/ssrlogistics/backend/internal/infrastructure/scheduler"
	"github.com/ssrlogistics/backend/internal/infrastructure/storage"
	"github.com/ssrlogistics/backend/internal/interfaces/http/handler"
	"github.com/ssrlogistics/backend/internal/interfaces/http/middleware"
	"github.com/ssrlogistics/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SSR Logistics backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	kycRepo := persistence.NewGormKYCRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// OTP store: Redis when configured, an in-process map otherwise
	var otpStore otp.Store
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		otpStore = otp.NewRedisStore(redisClient, cfg.OTP.ResetWindow)
		log.Info("Redis OTP store enabled", zap.String("host", cfg.Redis.Host))
	} else {
		otpStore = otp.NewMemoryStore()
	}

	// Outbound mail
	mailer, err := mail.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	// Object storage: S3 when a bucket is configured, the in-memory
	// stub for local development
	var objectStorage kycapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("No storage bucket configured, using in-memory object storage")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	resetService := identityapp.NewPasswordResetService(userRepo, otpStore, mailer, cfg.OTP, log)
	bookingService := bookingapp.NewService(bookingRepo, log)
	customerService := kycapp.NewCustomerService(kycRepo, objectStorage, log)
	invoiceService := invoiceapp.NewService(invoiceRepo, log)
	quotationService := quotationapp.NewService(mailer, log)

	// Background OTP eviction
	runner := scheduler.NewIntervalRunner(log)
	runner.Register(scheduler.Task{
		Name:     "otp-sweep",
		Interval: cfg.OTP.SweepInterval,
		Run:      resetService.SweepExpired,
	})
	if err := runner.Start(context.Background()); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := runner.Stop(stopCtx); err != nil {
			log.Error("Error stopping scheduler", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	// Route middleware
	authMW := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})
	adminMW := middleware.RequireRole("admin")
	sendOTPLimiter := middleware.RateLimit(
		middleware.NewRateLimiter(cfg.RateLimit.SendOTPRequests, cfg.RateLimit.Window))
	verifyOTPLimiter := middleware.RateLimit(
		middleware.NewRateLimiter(cfg.RateLimit.VerifyOTPRequests, cfg.RateLimit.Window))

	// Health check outside API versioning
	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(handler.NewAuthHandler(authService, userService, cfg.Cookie, authMW)).
		Register(handler.NewPasswordResetHandler(resetService, sendOTPLimiter, verifyOTPLimiter)).
		Register(handler.NewUserHandler(userService, authMW, adminMW)).
		Register(handler.NewBookingHandler(bookingService, authMW)).
		Register(handler.NewKYCHandler(customerService, authMW)).
		Register(handler.NewInvoiceHandler(invoiceService, authMW)).
		Register(handler.NewQuotationHandler(quotationService, authMW)).
		Register(handler.NewFilesHandler(objectStorage, authMW, adminMW)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
