package dao_test

import (
	"context"
	"llm_catalog/config"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"llm_catalog/pkg/db"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试使用独立的内存 sqlite，互不干扰
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(config.DBConfig{Driver: "sqlite", Path: ":memory:"}, logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.EnsureTables(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func strPtr(s string) *string { return &s }

func seedProvider(t *testing.T, conn *gorm.DB, name string) *entity.Provider {
	t.Helper()
	provider := &entity.Provider{Name: name}
	require.NoError(t, dao.NewProviderDAO(conn).Save(context.Background(), provider))
	return provider
}

func seedModel(t *testing.T, conn *gorm.DB, providerID uint, name string) *entity.Model {
	t.Helper()
	model := &entity.Model{Name: name, ProviderID: providerID, ModelType: strPtr("text")}
	require.NoError(t, dao.NewModelDAO(conn).Save(context.Background(), model))
	return model
}

func countRows(t *testing.T, conn *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(model).Count(&count).Error)
	return count
}
