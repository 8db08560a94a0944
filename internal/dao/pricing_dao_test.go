package dao_test

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(d entity.Date) *entity.Date { return &d }

func TestPricingDAOSaveValidation(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	provider := seedProvider(t, conn, "A")
	model := seedModel(t, conn, provider.ID, "m")
	pricingDAO := dao.NewPricingDAO(conn)

	tests := []struct {
		name    string
		pricing entity.Pricing
		wantErr error
	}{
		{
			name: "unknown model",
			pricing: entity.Pricing{ModelID: 99, PriceType: "input_tokens", Unit: "per_1k_tokens",
				ValidFrom: entity.NewDate(2024, 1, 1)},
			wantErr: dao.ErrInvalidReference,
		},
		{
			name: "missing valid_from",
			pricing: entity.Pricing{ModelID: model.ID, PriceType: "input_tokens", Unit: "per_1k_tokens"},
			wantErr: dao.ErrInvalidField,
		},
		{
			name: "valid_to before valid_from",
			pricing: entity.Pricing{ModelID: model.ID, PriceType: "input_tokens", Unit: "per_1k_tokens",
				ValidFrom: entity.NewDate(2024, 6, 1), ValidTo: datePtr(entity.NewDate(2024, 5, 31))},
			wantErr: dao.ErrInvalidField,
		},
		{
			name: "single day interval",
			pricing: entity.Pricing{ModelID: model.ID, PriceType: "input_tokens", Unit: "per_1k_tokens",
				ValidFrom: entity.NewDate(2024, 6, 1), ValidTo: datePtr(entity.NewDate(2024, 6, 1))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pricing
			err := pricingDAO.Save(ctx, &p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.DefaultCurrency, p.Currency)
		})
	}
}

func TestPricingDAOValidDateFilterAndCurrent(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	provider := seedProvider(t, conn, "A")
	model := seedModel(t, conn, provider.ID, "m")
	other := seedModel(t, conn, provider.ID, "n")
	pricingDAO := dao.NewPricingDAO(conn)

	rows := []entity.Pricing{
		{ModelID: model.ID, PriceType: "input_tokens", Price: 0.03, Unit: "per_1k_tokens",
			ValidFrom: entity.NewDate(2024, 1, 1), ValidTo: datePtr(entity.NewDate(2024, 3, 31))},
		{ModelID: model.ID, PriceType: "input_tokens", Price: 0.01, Unit: "per_1k_tokens",
			ValidFrom: entity.NewDate(2024, 4, 1)},
		{ModelID: other.ID, PriceType: "output_tokens", Price: 0.02, Unit: "per_1k_tokens",
			ValidFrom: entity.NewDate(2024, 2, 1), ValidTo: datePtr(entity.NewDate(2024, 2, 29))},
	}
	for i := range rows {
		require.NoError(t, pricingDAO.Save(ctx, &rows[i]))
	}

	list, total, err := pricingDAO.FindAll(ctx, entity.QueryParams{ValidDate: "2024-03-31"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, rows[0].ID, list[0].ID)

	current, err := pricingDAO.FindCurrent(ctx, &model.ID, entity.NewDate(2024, 4, 1))
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.InDelta(t, 0.01, current[0].Price, 1e-9)

	current, err = pricingDAO.FindCurrent(ctx, nil, entity.NewDate(2024, 2, 15))
	require.NoError(t, err)
	assert.Len(t, current, 2)

	current, err = pricingDAO.FindCurrent(ctx, nil, entity.NewDate(2023, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, current)

	_, _, err = pricingDAO.FindAll(ctx, entity.QueryParams{ValidDate: "not-a-date"})
	assert.ErrorIs(t, err, dao.ErrInvalidField)
}

func TestPricingDAOUpdateKeepsIntervalValid(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	provider := seedProvider(t, conn, "A")
	model := seedModel(t, conn, provider.ID, "m")
	pricingDAO := dao.NewPricingDAO(conn)

	p := &entity.Pricing{ModelID: model.ID, PriceType: "requests", Price: 2, Unit: "per_request",
		ValidFrom: entity.NewDate(2024, 6, 1)}
	require.NoError(t, pricingDAO.Save(ctx, p))

	_, err := pricingDAO.UpdateByID(ctx, p.ID, entity.Updates{"valid_to": entity.NewDate(2024, 1, 1)})
	assert.ErrorIs(t, err, dao.ErrInvalidField)

	updated, err := pricingDAO.UpdateByID(ctx, p.ID, entity.Updates{"valid_to": entity.NewDate(2024, 12, 31), "price": 1.5})
	require.NoError(t, err)
	require.NotNil(t, updated.ValidTo)
	assert.Equal(t, "2024-12-31", updated.ValidTo.String())
	assert.InDelta(t, 1.5, updated.Price, 1e-9)

	updated, err = pricingDAO.UpdateByID(ctx, p.ID, entity.Updates{"valid_to": nil})
	require.NoError(t, err)
	assert.Nil(t, updated.ValidTo)

	_, err = pricingDAO.UpdateByID(ctx, p.ID, entity.Updates{"model_id": uint(500)})
	assert.ErrorIs(t, err, dao.ErrInvalidReference)
}
