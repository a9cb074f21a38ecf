package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/cache"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/observability"
	"github.com/VitaminP8/yatube/internal/router"
	"github.com/VitaminP8/yatube/internal/storage/gormdb"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/VitaminP8/yatube/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory, postgres или sqlite")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	if zl.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := router.Deps{Config: cfg, Log: zl}

	var db *gorm.DB
	switch *storageType {
	case "postgres", "sqlite":
		dialect, dsn := gormdb.DialectPostgres, cfg.Database.PostgresDSN()
		if *storageType == "sqlite" {
			dialect, dsn = gormdb.DialectSQLite, cfg.Database.SQLitePath
		}

		db, err = gormdb.InitDB(dialect, dsn)
		if err != nil {
			zl.Fatal("failed to open database", zap.Error(err))
		}
		if err := gormdb.Migrate(db); err != nil {
			zl.Fatal("failed to migrate database", zap.Error(err))
		}

		zl.Info("using sql storage", zap.String("dialect", dialect))
		deps.Storages = router.Storages{
			Users:    gormdb.NewUserGormStorage(db),
			Groups:   gormdb.NewGroupGormStorage(db),
			Posts:    gormdb.NewPostGormStorage(db),
			Comments: gormdb.NewCommentGormStorage(db),
			Follows:  gormdb.NewFollowGormStorage(db),
		}
		deps.DB = db.DB()

	case "memory":
		zl.Info("using in-memory storage")
		users := memory.NewUserMemoryStorage()
		posts := memory.NewPostMemoryStorage(users)
		comments := memory.NewCommentMemoryStorage(users)
		posts.CascadeComments(comments)
		deps.Storages = router.Storages{
			Users:    users,
			Groups:   memory.NewGroupMemoryStorage(),
			Posts:    posts,
			Comments: comments,
			Follows:  memory.NewFollowMemoryStorage(users),
		}

	default:
		zl.Fatal("unknown storage type", zap.String("storage", *storageType))
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = cache.NewRedisClient(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := cache.Ping(ctx, rdb)
		cancel()
		if err != nil {
			// без кэша сервер работает, группы читаются из хранилища
			zl.Warn("redis is unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		deps.Redis = rdb
		deps.GroupCache = cache.NewRedisCache(rdb, cache.DefaultPrefix, cfg.Redis.GroupTTL)
	}

	if cfg.MetricsEnabled {
		registry := observability.NewMetricsRegistry()
		deps.Metrics = observability.NewHTTPMetrics(registry, observability.ServiceName)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// строка не возвращается, пока не выполнится server.Shutdown(), поэтому в goroutine
	go func() {
		zl.Info("server started", zap.String("addr", cfg.HTTPAddr), zap.String("api", cfg.APIPrefix))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zl.Error("failed to shut down server", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zl.Error("failed to close redis client", zap.Error(err))
		}
	}
	if err := gormdb.CloseDB(db); err != nil {
		zl.Error("failed to close database", zap.Error(err))
	}

	zl.Info("server stopped")
}
