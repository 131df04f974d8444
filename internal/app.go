package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"file-share-api/config"
	"file-share-api/internal/application/ports"
	"file-share-api/internal/application/services"
	"file-share-api/internal/infrastructure/db/postgres"
	"file-share-api/internal/infrastructure/db/postgres/file"
	"file-share-api/internal/infrastructure/db/postgres/payment"
	"file-share-api/internal/infrastructure/db/postgres/tier"
	"file-share-api/internal/infrastructure/db/postgres/user"
	"file-share-api/internal/infrastructure/gateway/razorpaygw"
	"file-share-api/internal/infrastructure/gateway/stripegw"
	"file-share-api/internal/infrastructure/jwt"
	"file-share-api/internal/infrastructure/mailer"
	"file-share-api/internal/infrastructure/metrics"
	"file-share-api/internal/infrastructure/mq"
	"file-share-api/internal/infrastructure/s3"
	"file-share-api/internal/interface/api/rest"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	s3         ports.ObjectStorage
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
	sweeper    *services.Sweeper
}

// Bootstrap loads the environment and opens the database, which is all the
// seed command needs.
func Bootstrap(ctx context.Context) (*zap.Logger, config.Config, *pgxpool.Pool) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config
	if err = godotenv.Load(".env"); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Fatal("error loading .env file", zap.Error(err))
		}
		logger.Info("no .env file, using process environment")
	}
	cfg := config.Load()

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err = postgres.Migrate(ctx, logger, dbPool); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	return logger, cfg, dbPool
}

func NewApp(ctx context.Context) (*App, error) {
	logger, cfg, dbPool := Bootstrap(ctx)
	if cfg.App.JWTSecret == "" {
		logger.Fatal("SERVICE_JWT_SECRET is required")
	}

	// metrics
	mCounter := metrics.NewCounter()
	duration := metrics.NewRequestDuration()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogGin(logger, mCounter, duration))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// s3
	s3Client, err := s3.New(ctx, logger, cfg.S3)
	if err != nil {
		logger.Fatal("failed to connect to S3", zap.Error(err))
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger, mCounter)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}

	// mailer + rmqConsumer
	mail, err := mailer.New(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, mail, mCounter)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		s3:         s3Client,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil {
		a.mq.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run launches the HTTP server and the background workers under one context
// and shuts them down together on SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	if a.sweeper != nil {
		g.Go(func() error {
			a.sweeper.Worker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	fileRepo := file.NewRepository(a.db)
	tierRepo := tier.NewRepository(a.db)
	paymentRepo := payment.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	tierService := services.NewTierService(tierRepo)
	fileService := services.NewFileService(fileRepo, tierService, a.s3, a.mq, a.mCounter, a.cfg.Files)
	paymentService := services.NewPaymentService(
		paymentRepo,
		tierRepo,
		fileRepo,
		fileService,
		razorpaygw.New(a.cfg.Razorpay),
		stripegw.New(a.cfg.Stripe),
		a.mq,
		a.mCounter,
		a.logger,
		a.cfg.Files.USDConversionDivisor,
	)
	authService := services.NewAuthService(userRepo, jwtService, a.mq, a.mCounter, a.cfg.App.JWTTTL)
	a.sweeper = services.NewSweeper(fileService, a.logger, a.cfg.Files.SweepInterval)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, jwtService)
	rest.NewFileController(a.router, fileService, a.logger, jwtService)
	rest.NewPaymentController(a.router, paymentService, tierService, a.logger, jwtService)
	rest.NewAdminController(a.router, fileService, a.logger, jwtService, a.cfg.App.AdminAPIKey)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
