package main

import (
	"context"
	"errors"
	"fmt"
	"llm_catalog/config"
	"llm_catalog/internal/extractor"
	"llm_catalog/internal/router"
	"llm_catalog/internal/service"
	"llm_catalog/pkg/db"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "llm-catalog",
		Short: "AI model catalog service",
		Long:  "Stores providers, models, benchmarks and pricing, and extracts candidates from web pages.",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath, "config file")

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		seedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap 读取配置、初始化日志和数据库
func bootstrap() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("init config failed: %w", err)
	}
	config.AppConfig = cfg
	config.InitLogger()

	if err := db.InitDB(); err != nil {
		return fmt.Errorf("init database failed: %w", err)
	}
	return nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(); err != nil {
				return err
			}
			cfg := config.AppConfig

			// 默认使用 release，避免线上以 debug 模式启动
			switch cfg.Server.Mode {
			case gin.DebugMode, gin.TestMode:
				gin.SetMode(cfg.Server.Mode)
			default:
				gin.SetMode(gin.ReleaseMode)
			}

			// redis 只做抽取缓存，连不上时降级为不缓存
			var cache extractor.Cache
			if err := config.InitRedis(); err != nil {
				slog.Warn("redis unavailable, extraction cache disabled", "error", err)
			} else if config.RedisClient != nil {
				cache = extractor.NewRedisCache(config.RedisClient)
				defer config.CloseRedis()
			}

			ext := extractor.NewFromConfig(cfg.Gemini, cache)
			if ext == nil {
				slog.Warn("GEMINI_API_KEY is not set, scraping endpoints will return 500")
			}

			port, _ := cmd.Flags().GetInt("port")
			if port == 0 {
				port = cfg.Server.Port
			}
			if port == 0 {
				port = 8000
			}

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           router.SetupRouter(db.DB, ext),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				slog.Info("server is running", "port", port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server run failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			slog.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().Int("port", 0, "Listen port (default: server.port from config)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			// InitDB 已经执行 EnsureTables
			if err := bootstrap(); err != nil {
				return err
			}
			slog.Info("tables are up to date", "driver", config.AppConfig.DB.Driver)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample providers and models into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(); err != nil {
				return err
			}

			seeded, err := service.NewSeedService(db.DB).Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			if seeded {
				fmt.Println("sample data inserted")
			} else {
				fmt.Println("database already has providers, nothing to do")
			}
			return nil
		},
	}
}
