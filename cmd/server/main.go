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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/api/handler"
	"github.com/albert-jeong/auto-class/internal/api/middleware"
	"github.com/albert-jeong/auto-class/internal/api/router"
	"github.com/albert-jeong/auto-class/internal/repository"
	"github.com/albert-jeong/auto-class/internal/service"
	"github.com/albert-jeong/auto-class/pkg/database"
	applogger "github.com/albert-jeong/auto-class/pkg/logger"
	"github.com/albert-jeong/auto-class/pkg/redis"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "auto-class-server",
		Short:         "课程表推荐 HTTP 服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml 与 ./config.yaml）")

	migrateCmd := &cobra.Command{Use: "migrate", Short: "数据库迁移"}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "执行全部未应用的迁移",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(configPath, func(db *gorm.DB, logger *zap.Logger) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return database.RunMigrations(sqlDB, logger)
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "回滚指定步数的迁移",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps 必须大于 0")
			}
			return withDatabase(configPath, func(db *gorm.DB, logger *zap.Logger) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return database.RollbackMigrations(sqlDB, steps, logger)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "回滚步数")
	migrateCmd.AddCommand(down)

	root.AddCommand(migrateCmd)
	return root
}

// bootstrap 加载 .env 与配置并初始化日志
func bootstrap(configPath string) (*config.Config, *zap.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, logger, nil
}

func withDatabase(configPath string, fn func(db *gorm.DB, logger *zap.Logger) error) error {
	cfg, logger, err := bootstrap(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Error("数据库连接失败", zap.Error(err))
		return err
	}
	defer closeDB(db)

	if err := fn(db, logger); err != nil {
		logger.Error("迁移命令失败", zap.Error(err))
		return err
	}
	return nil
}

func serve(configPath string) error {
	// 1. 加载 .env 与配置，初始化日志
	cfg, logger, err := bootstrap(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Float64("shrinkage_k", cfg.Planner.ShrinkageK),
	)

	// 2. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Error("数据库连接失败", zap.Error(err))
		return err
	}
	defer closeDB(db)
	logger.Info("数据库连接成功")

	// 2.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("获取底层 sql.DB 失败", zap.Error(err))
		return err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Error("数据库迁移失败", zap.Error(err))
		return err
	}

	// 3. 连接 Redis（可选：失败时降级为无缓存、无限流）
	var (
		cache   service.RecommendationCache
		limiter middleware.RateLimiter
	)
	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，推荐缓存与限流将不可用", zap.Error(err))
		} else {
			defer rdb.Close()
			cache = rdb
			limiter = rdb
		}
	}

	// 4. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, cache, logger)
	h := handler.NewHandler(cfg, svc)

	// 5. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, h, limiter, logger)

	// 6. 启动 HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 7. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	case err, ok := <-serveErr:
		if ok {
			logger.Error("HTTP 服务器异常", zap.Error(err))
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
		return err
	}

	logger.Info("服务器已关闭")
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
