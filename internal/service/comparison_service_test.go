package service_test

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComparisonRollsBackOnUnknownModel(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	m3 := seedModel(t, conn, "A", "three")
	m5 := seedModel(t, conn, "A", "five")
	svc := service.NewComparisonService(conn)

	_, err := svc.CreateComparison(ctx, entity.ComparisonTableCreate{
		Name: "broken", ModelIDs: []uint{m3.ID, 99, m5.ID},
	})
	assert.ErrorIs(t, err, dao.ErrInvalidReference)

	page, err := svc.GetAllComparisons(ctx, entity.QueryParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	var items int64
	require.NoError(t, conn.Model(&entity.ComparisonItem{}).Count(&items).Error)
	assert.EqualValues(t, 0, items)
}

func TestCreateComparisonRejectsDuplicateModel(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	m3 := seedModel(t, conn, "A", "three")
	m5 := seedModel(t, conn, "A", "five")

	_, err := service.NewComparisonService(conn).CreateComparison(ctx, entity.ComparisonTableCreate{
		Name: "dup", ModelIDs: []uint{m3.ID, m5.ID, m3.ID},
	})
	assert.ErrorIs(t, err, dao.ErrAlreadyExists)
}

func TestAddItemUsesPathTableID(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	m1 := seedModel(t, conn, "A", "one")
	m2 := seedModel(t, conn, "A", "two")
	svc := service.NewComparisonService(conn)

	first, err := svc.CreateComparison(ctx, entity.ComparisonTableCreate{Name: "first", ModelIDs: []uint{m1.ID}})
	require.NoError(t, err)
	second, err := svc.CreateComparison(ctx, entity.ComparisonTableCreate{Name: "second"})
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, second.ID, entity.ComparisonItemCreate{ComparisonTableID: first.ID, ModelID: m2.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, item.ComparisonTableID)
	assert.Equal(t, 0, item.DisplayOrder)

	got, err := svc.GetComparison(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	// 重复添加失败，原条目不变
	_, err = svc.AddItem(ctx, first.ID, entity.ComparisonItemCreate{ModelID: m1.ID})
	assert.ErrorIs(t, err, dao.ErrAlreadyExists)
	got, err = svc.GetComparison(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, first.Items[0].ID, got.Items[0].ID)
}
