package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/usergateway/handlers"
	"github.com/gogotex/usergateway/internal/app"
	"github.com/gogotex/usergateway/internal/config"
	"github.com/gogotex/usergateway/internal/credentials"
	"github.com/gogotex/usergateway/internal/users"
	"github.com/gogotex/usergateway/pkg/logger"
	"github.com/gogotex/usergateway/pkg/metrics"
	"github.com/gogotex/usergateway/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s backend=%s", logger.LevelString(), cfg.Store.Backend)

	ctx := context.Background()

	// blocks until the store is connected; exits on failure
	a := app.New(ctx, cfg)

	creds, err := credentials.New(cfg.Security.PasswordHasher, cfg.Security.BcryptCost)
	if err != nil {
		logger.Fatalf("credentials: %v", err)
	}
	if _, plain := creds.(credentials.Plaintext); plain {
		logger.Warnf("PASSWORD_HASHER=none: passwords are stored as submitted")
	}

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.CORS(), gin.Logger(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		var rdb *redis.Client
		if cfg.RateLimit.UseRedis && cfg.RedisAddr() != "" {
			rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warnf("redis %s unreachable, using in-memory rate limiter: %v", cfg.RedisAddr(), err)
				rdb = nil
			}
		}
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		logger.Infof("rate limiter enabled: rps=%v burst=%d redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, rdb != nil)
	}

	handlers.RegisterHealth(r, a.Ready)
	handlers.RegisterSwagger(r)
	handlers.NewUsersHandler(users.NewService(a.Users, creds)).Register(r.Group("/"))

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Infof("Starting user service on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
