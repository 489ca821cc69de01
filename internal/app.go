package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
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
	"golang.org/x/time/rate"

	"user-resource-api/config"
	"user-resource-api/internal/application/ports"
	"user-resource-api/internal/application/services"
	"user-resource-api/internal/infrastructure/db/postgres"
	"user-resource-api/internal/infrastructure/db/postgres/user"
	"user-resource-api/internal/infrastructure/hasher"
	"user-resource-api/internal/infrastructure/jwt"
	"user-resource-api/internal/infrastructure/metrics"
	"user-resource-api/internal/infrastructure/mq"
	"user-resource-api/internal/interface/api/rest"
	"user-resource-api/internal/interface/api/rest/middleware"
	"user-resource-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger      *zap.Logger
	cfg         config.Config
	db          *pgxpool.Pool
	httpSrv     *http.Server
	router      *gin.Engine
	mCounter    *prometheus.CounterVec
	rateLimiter *middleware.RateLimiter
	mq          *mq.RabbitMQ
	mqConsumer  ports.RMQConsumer
}

// NewLogger picks a development logger outside prod.
func NewLogger(cfg config.APP) (*zap.Logger, error) {
	if cfg.IsProd() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// LoadDotEnv reads an optional .env file into the process environment.
func LoadDotEnv() error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func LoadConfig() (config.Config, error) {
	if err := LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	return config.Load()
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	// logger
	logger, err := NewLogger(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, config.EnvProd, "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))
	r.Use(rateLimiter.LimitMiddleware())

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return nil, fmt.Errorf("DB config error: %w", err)
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		return nil, err
	}
	if cfg.App.AutoMigrate {
		if err = postgres.Migrate(ctx, dbPool, "up"); err != nil {
			dbPool.Close()
			return nil, err
		}
		logger.Info("db migrations applied")
	}

	app := &App{
		logger:      logger,
		cfg:         cfg,
		db:          dbPool,
		httpSrv:     httpSrv,
		router:      r,
		mCounter:    mCounter,
		rateLimiter: rateLimiter,
	}

	if !cfg.MQ.Enabled {
		logger.Info("rabbitMQ disabled, user events are not published")
		return app, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	app.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}
	app.mqConsumer = rmqConsumer

	return app, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	// errgroup returns the first worker error and cancels the rest through ctx
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.rateLimiter.CleanupWorker(ctx)
		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
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

	// publisher stays a nil interface when MQ is off
	var publisher ports.RabbitMQ
	if a.mq != nil {
		publisher = a.mq
	}

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	bcryptHasher := hasher.NewBcrypt(a.cfg.App.BcryptCost)
	authService := services.NewAuthService(jwtService, bcryptHasher, a.cfg.App.TokenTTL)
	userService := services.NewUserService(userRepo, bcryptHasher, publisher, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService)
	rest.NewUserController(a.router, userService, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) healthHandler(c *gin.Context) {
	if err := a.db.Ping(c.Request.Context()); err != nil {
		a.logger.Warn("health check: db ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) Logger() *zap.Logger { return a.logger }
