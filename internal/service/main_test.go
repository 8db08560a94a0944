package service_test

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

func seedModel(t *testing.T, conn *gorm.DB, providerName, modelName string) *entity.Model {
	t.Helper()
	ctx := context.Background()
	provider, err := dao.NewProviderDAO(conn).FindByName(ctx, providerName)
	if err != nil {
		provider = &entity.Provider{Name: providerName}
		require.NoError(t, dao.NewProviderDAO(conn).Save(ctx, provider))
	}
	model := &entity.Model{Name: modelName, ProviderID: provider.ID}
	require.NoError(t, dao.NewModelDAO(conn).Save(ctx, model))
	return model
}
