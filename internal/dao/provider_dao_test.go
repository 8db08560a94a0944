package dao_test

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProviderDAOSaveRejectsDuplicateName(t *testing.T) {
	conn := newTestDB(t)
	providerDAO := dao.NewProviderDAO(conn)

	seedProvider(t, conn, "OpenAI")
	err := providerDAO.Save(context.Background(), &entity.Provider{Name: "OpenAI"})
	assert.ErrorIs(t, err, dao.ErrAlreadyExists)
	assert.EqualValues(t, 1, countRows(t, conn, &entity.Provider{}))
}

func TestProviderDAOFindWithModels(t *testing.T) {
	conn := newTestDB(t)
	provider := seedProvider(t, conn, "Anthropic")
	seedModel(t, conn, provider.ID, "claude-a")
	seedModel(t, conn, provider.ID, "claude-b")

	got, err := dao.NewProviderDAO(conn).FindWithModels(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anthropic", got.Name)
	require.Len(t, got.Models, 2)
	assert.Equal(t, "claude-a", got.Models[0].Name)
}

func TestProviderDAOFindByIDNotFound(t *testing.T) {
	conn := newTestDB(t)

	_, err := dao.NewProviderDAO(conn).FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.True(t, dao.IsNotFound(err))

	_, err = dao.NewProviderDAO(conn).FindByID(context.Background(), 0)
	assert.ErrorIs(t, err, dao.ErrInvalidID)
}

func TestProviderDAOFindAllPagination(t *testing.T) {
	conn := newTestDB(t)
	for _, name := range []string{"a", "b", "c", "d"} {
		seedProvider(t, conn, name)
	}

	limit := 2
	rows, total, err := dao.NewProviderDAO(conn).FindAll(context.Background(), entity.QueryParams{Skip: 1, Limit: &limit})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Name)
	assert.Equal(t, "c", rows[1].Name)

	// skip 越界返回空列表而不是错误
	rows, _, err = dao.NewProviderDAO(conn).FindAll(context.Background(), entity.QueryParams{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProviderDAOUpdateByID(t *testing.T) {
	conn := newTestDB(t)
	providerDAO := dao.NewProviderDAO(conn)
	provider := seedProvider(t, conn, "Google")
	seedProvider(t, conn, "Meta")

	updated, err := providerDAO.UpdateByID(context.Background(), provider.ID, entity.Updates{
		"website_url": "https://ai.google",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WebsiteURL)
	assert.Equal(t, "https://ai.google", *updated.WebsiteURL)
	assert.Equal(t, "Google", updated.Name)

	// 显式置空
	updated, err = providerDAO.UpdateByID(context.Background(), provider.ID, entity.Updates{"website_url": nil})
	require.NoError(t, err)
	assert.Nil(t, updated.WebsiteURL)

	_, err = providerDAO.UpdateByID(context.Background(), provider.ID, entity.Updates{"name": "Meta"})
	assert.ErrorIs(t, err, dao.ErrAlreadyExists)

	_, err = providerDAO.UpdateByID(context.Background(), 999, entity.Updates{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProviderDAODeleteCascades(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	provider := seedProvider(t, conn, "OpenAI")
	other := seedProvider(t, conn, "Mistral")
	model := seedModel(t, conn, provider.ID, "gpt-x")
	keep := seedModel(t, conn, other.ID, "mistral-large")

	score := 88.5
	require.NoError(t, dao.NewBenchmarkDAO(conn).Save(ctx, &entity.Benchmark{ModelID: model.ID, BenchmarkName: "MMLU", Score: &score}))
	require.NoError(t, dao.NewPricingDAO(conn).Save(ctx, &entity.Pricing{
		ModelID: model.ID, PriceType: "input_tokens", Price: 1, Unit: "per_1k_tokens",
		ValidFrom: entity.NewDate(2024, 1, 1),
	}))
	table := &entity.ComparisonTable{Name: "mixed"}
	require.NoError(t, dao.NewComparisonDAO(conn).CreateWithItems(ctx, table, []uint{model.ID, keep.ID}))

	require.NoError(t, dao.NewProviderDAO(conn).DeleteByID(ctx, provider.ID))

	assert.EqualValues(t, 1, countRows(t, conn, &entity.Provider{}))
	assert.EqualValues(t, 1, countRows(t, conn, &entity.Model{}))
	assert.EqualValues(t, 0, countRows(t, conn, &entity.Benchmark{}))
	assert.EqualValues(t, 0, countRows(t, conn, &entity.Pricing{}))

	got, err := dao.NewComparisonDAO(conn).FindWithItems(ctx, table.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, keep.ID, got.Items[0].ModelID)

	err = dao.NewProviderDAO(conn).DeleteByID(ctx, provider.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
