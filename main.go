package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/auth"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/cache"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/config"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/logging"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/metrics"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/middleware"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/sanitize"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "courseapi: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	var courseCache cache.CourseCache = cache.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// the list is always rebuilt from the store on a miss
			logger.Warn("redis unreachable; course cache misses until it returns", zap.Error(err))
		}
		courseCache = cache.NewRedisCourseCache(rdb, cfg.CourseCacheTTL)
		logger.Info("course list cache enabled", zap.Duration("ttl", cfg.CourseCacheTTL))
	}

	var (
		rec      metrics.Recorder = metrics.Nop{}
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewCollector(reg)
		gatherer = reg
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(auth.NewJWTSigner(cfg.JWTSecret, nil), cfg.TokenTTL, nil)
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{PerMinute: cfg.AuthRatePerMinute}, logger)
	defer limiter.Stop()

	gin.SetMode(gin.ReleaseMode)
	router, err := handlers.NewRouter(handlers.Deps{
		Accounts:       service.NewAccountService(service.NewCredentials(st, hasher), tokens, rec, logger),
		Courses:        service.NewCourseService(st, st, courseCache, sanitize.NewText(), rec, logger),
		Users:          service.NewUserService(st, hasher, logger),
		Verifier:       tokens,
		Health:         st,
		Logger:         logger,
		Metrics:        rec,
		Gatherer:       gatherer,
		AuthLimiter:    limiter,
		CORSOrigin:     cfg.CORSOrigin,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
