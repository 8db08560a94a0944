package service_test

import (
	"context"
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOnlyWhenEmpty(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	svc := service.NewSeedService(conn)

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	var providers, models int64
	require.NoError(t, conn.Model(&entity.Provider{}).Count(&providers).Error)
	require.NoError(t, conn.Model(&entity.Model{}).Count(&models).Error)
	assert.EqualValues(t, 5, providers)
	assert.EqualValues(t, 6, models)

	seeded, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}
