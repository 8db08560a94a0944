package config

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	AppLogger   *slog.Logger
	loggerInitM sync.Mutex
)

func ensureLogDir(path string) error {
	// path 可能是文件路径（logs/app.log）也可能是目录
	dir := path
	if filepath.Ext(path) != "" {
		dir = filepath.Dir(path)
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(logPath, level string) *slog.Logger {
	if strings.TrimSpace(logPath) == "" {
		logPath = "logs/app.log"
	}

	if err := ensureLogDir(logPath); err != nil {
		fmt.Printf("failed to create log directory: %v\n", err)
		return slog.Default()
	}

	if filepath.Ext(logPath) == "" {
		logPath = filepath.Join(logPath, "app.log")
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	mw := io.MultiWriter(os.Stdout, lumberjackLogger)

	handler := slog.NewTextHandler(mw, &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	})

	logger := slog.New(handler)

	// 标准库 log 也写到同一个输出，避免 gin/gorm 混用时丢日志
	log.SetOutput(mw)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logger.Info("logger initialized", "path", logPath)
	return logger
}

func logSettingsFromConfig() (string, string) {
	if AppConfig == nil {
		return "logs/app.log", "info"
	}
	return strings.TrimSpace(AppConfig.Log.Path), AppConfig.Log.Level
}

// InitLogger 使用当前配置重新初始化全局日志器。
func InitLogger() *slog.Logger {
	loggerInitM.Lock()
	defer loggerInitM.Unlock()

	AppLogger = buildLogger(logSettingsFromConfig())
	slog.SetDefault(AppLogger)
	return AppLogger
}

// EnsureLoggerInitialized 返回全局日志器。未初始化且没有加载配置时（例如单元测试）
// 退回 slog.Default，不创建日志文件。
func EnsureLoggerInitialized() *slog.Logger {
	loggerInitM.Lock()
	defer loggerInitM.Unlock()

	if AppLogger != nil {
		return AppLogger
	}
	if AppConfig == nil {
		return slog.Default()
	}
	AppLogger = buildLogger(logSettingsFromConfig())
	return AppLogger
}

// LayerLogger 返回带 layer 字段的子日志器。
func LayerLogger(layer string) *slog.Logger {
	logger := EnsureLoggerInitialized()
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("layer", layer)
}
