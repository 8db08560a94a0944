package db

import (
	"errors"
	"fmt"
	"llm_catalog/config"
	"llm_catalog/internal/entity"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() error {
	if config.AppConfig == nil {
		return errors.New("app config is not initialized")
	}

	db, err := Open(config.AppConfig.DB, logger.Default.LogMode(logger.Warn))
	if err != nil {
		return err
	}
	if err := EnsureTables(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Open 根据 driver 打开 gorm 连接并配置连接池
func Open(cfg config.DBConfig, gormLogger logger.Interface) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		Logger:      gormLogger,
		// 唯一索引冲突统一转换为 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf(
			"connect %s failed (host=%s port=%d db=%s user=%s): %w",
			cfg.Driver, cfg.Host, cfg.Port, cfg.DBName, cfg.User, err,
		)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB failed: %w", err)
	}
	if isSQLite(cfg.Driver) {
		// sqlite 只允许一个写连接
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("%s ping failed: %w", cfg.Driver, err)
	}

	return db, nil
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s&readTimeout=10s&writeTimeout=10s",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode,
		)
		return postgres.New(postgres.Config{DSN: dsn}), nil
	case "sqlite":
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = "data/catalog.db"
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory failed: %w", err)
			}
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", cfg.Driver)
	}
}

func isSQLite(driver string) bool {
	return strings.EqualFold(strings.TrimSpace(driver), "sqlite")
}

// Tables 返回所有需要建表的实体
func Tables() []interface{} {
	return []interface{}{
		&entity.Provider{},
		&entity.Model{},
		&entity.Benchmark{},
		&entity.Pricing{},
		&entity.ComparisonTable{},
		&entity.ComparisonItem{},
		&entity.WebSource{},
		&entity.ScrapeRun{},
	}
}

// EnsureTables 只创建缺失的表，不修改已有表结构
func EnsureTables(db *gorm.DB) error {
	for _, m := range Tables() {
		if db.Migrator().HasTable(m) {
			continue
		}
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto migrate missing table failed: %w", err)
		}
	}

	return nil
}
