package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/config"
	"github.com/oksasatya/portfolio-cms/internal/container"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/jsonstore"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/storage"
	"github.com/oksasatya/portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/portfolio-cms/internal/router"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
	"github.com/oksasatya/portfolio-cms/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// JSON document store
	store, err := jsonstore.Open(cfg.DataDir, logger)
	if err != nil {
		log.Fatalf("failed to open data dir: %v", err)
	}

	// Uploaded assets: local disk unless a GCS bucket is configured
	files, closeFiles, err := openAssetStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init asset storage: %v", err)
	}
	defer closeFiles()

	// Redis is optional; without it the login limiter is per process
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unreachable, falling back to in-memory rate limit")
			_ = rdb.Close()
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	c := container.New(cfg, logger, store, rdb, files)
	if err := c.Bootstrap(); err != nil {
		log.Fatalf("failed to bootstrap admin: %v", err)
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = 12 << 20
	if cfg.GCSBucket == "" {
		r.Static("/uploads", cfg.UploadsDir)
	}

	reg := router.NewRegistry(r)
	if err := router.InitModules(reg, c); err != nil {
		log.Fatalf("failed to init routes: %v", err)
	}
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "data_dir": cfg.DataDir}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func openAssetStorage(ctx context.Context, cfg *config.Config) (storage.AssetStorage, func(), error) {
	if cfg.GCSBucket == "" {
		local, err := storage.NewLocal(cfg.UploadsDir, "/uploads/")
		return local, func() {}, err
	}
	client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewGCS(client, cfg.GCSBucket, cfg.GCSPrefix), func() { _ = client.Close() }, nil
}
