package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Redis  RedisConfig  `yaml:"redis"`
	Gemini GeminiConfig `yaml:"gemini"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Mode           string   `yaml:"mode"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DBConfig struct {
	Driver   string `yaml:"driver"` // mysql | postgres | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"` // sqlite 文件路径
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GeminiConfig 配置抽取服务（Gemini generateContent 接口）。
type GeminiConfig struct {
	APIKey         string  `yaml:"api_key"`
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	FetchPage      bool    `yaml:"fetch_page"`
	MaxPageChars   int     `yaml:"max_page_chars"`
	CacheTTLHours  int     `yaml:"cache_ttl_hours"`
}

var AppConfig *Config

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8000,
			Mode:           "release",
			AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		DB: DBConfig{
			Driver: "sqlite",
			Path:   "data/catalog.db",
		},
		Log: LogConfig{
			Path:  "logs/app.log",
			Level: "info",
		},
		Redis: RedisConfig{
			Port: 6379,
		},
		Gemini: GeminiConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta",
			Model:          "gemini-1.5-flash",
			TimeoutSeconds: 60,
			RatePerSecond:  1,
			FetchPage:      true,
			MaxPageChars:   20000,
			CacheTTLHours:  24,
		},
	}
}

// InitConfig 读取默认路径的配置文件并设置全局 AppConfig。
func InitConfig() error {
	cfg, err := Load(DefaultConfigPath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load 读取 yaml 配置，文件不存在时使用默认值；随后加载 .env 并应用环境变量覆盖。
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config failed: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// 没有配置文件时完全依赖默认值和环境变量
	default:
		return nil, fmt.Errorf("read config file failed: %w", err)
	}

	// .env 只补充未设置的变量
	_ = godotenv.Load()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver: %s", c.DB.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = 60
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", cfg.Gemini.Model)

	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Path = getEnv("LOG_PATH", cfg.Log.Path)

	cfg.DB.Driver = getEnv("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = getEnv("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnvInt("DB_PORT", cfg.DB.Port)
	cfg.DB.User = getEnv("DB_USER", cfg.DB.User)
	cfg.DB.Password = getEnv("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.DBName = getEnv("DB_NAME", cfg.DB.DBName)
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.Path = getEnv("DB_PATH", cfg.DB.Path)

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Host = host
	}
	cfg.Redis.Port = getEnvInt("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
