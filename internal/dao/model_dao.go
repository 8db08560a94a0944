package dao

import (
	"context"
	"fmt"
	"llm_catalog/internal/entity"
	"strings"

	"gorm.io/gorm"
)

type ModelDAO struct {
	DB *gorm.DB
}

func NewModelDAO(dbConn *gorm.DB) *ModelDAO {
	return &ModelDAO{DB: dbConn}
}

func ensureModelNameFree(tx *gorm.DB, name string, providerID, excludeID uint) error {
	var count int64
	query := tx.Model(&entity.Model{}).Where("name = ? AND provider_id = ?", name, providerID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check model name failed: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: model %q already exists for provider %d", ErrAlreadyExists, name, providerID)
	}
	return nil
}

func (d *ModelDAO) Save(ctx context.Context, model *entity.Model) error {
	if model == nil {
		return ErrNilEntity
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("save model failed: %w", err)
	}
	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := ensureProviderExists(tx, model.ProviderID); err != nil {
			return err
		}
		if err := ensureModelNameFree(tx, model.Name, model.ProviderID, 0); err != nil {
			return err
		}
		return tx.Create(model).Error
	})
}

func (d *ModelDAO) FindByID(ctx context.Context, id uint) (*entity.Model, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find model by id failed: %w", err)
	}

	var model entity.Model
	if err := findByID(dbConn, &model, "model", id); err != nil {
		return nil, err
	}
	return &model, nil
}

func (d *ModelDAO) FindByIDs(ctx context.Context, ids []uint) (map[uint]entity.Model, error) {
	result := make(map[uint]entity.Model, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, err
	}
	var models []entity.Model
	if err := dbConn.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("query models by ids failed: %w", err)
	}
	for _, m := range models {
		result[m.ID] = m
	}
	return result, nil
}

func (d *ModelDAO) FindWithDetails(ctx context.Context, id uint) (*entity.ModelWithDetails, error) {
	model, err := d.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := d.attachDetails(ctx, []entity.Model{*model})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (d *ModelDAO) FindAll(ctx context.Context, params entity.QueryParams) ([]entity.Model, int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find models failed: %w", err)
	}

	query := dbConn.Model(&entity.Model{})
	if params.ProviderID != nil {
		query = query.Where("provider_id = ?", *params.ProviderID)
	}
	if modelType := strings.TrimSpace(params.ModelType); modelType != "" {
		query = query.Where("model_type = ?", modelType)
	}

	return listPage[entity.Model](query, params, "models")
}

func (d *ModelDAO) FindAllWithDetails(ctx context.Context, params entity.QueryParams) ([]entity.ModelWithDetails, int64, error) {
	models, total, err := d.FindAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	details, err := d.attachDetails(ctx, models)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// attachDetails 批量读取 provider / benchmarks / pricing 后按模型组装
func (d *ModelDAO) attachDetails(ctx context.Context, models []entity.Model) ([]entity.ModelWithDetails, error) {
	result := make([]entity.ModelWithDetails, 0, len(models))
	if len(models) == 0 {
		return result, nil
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, err
	}

	modelIDs := make([]uint, 0, len(models))
	providerIDs := make([]uint, 0, len(models))
	for _, m := range models {
		modelIDs = append(modelIDs, m.ID)
		providerIDs = append(providerIDs, m.ProviderID)
	}

	var providers []entity.Provider
	if err := dbConn.Where("id IN ?", providerIDs).Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("query model providers failed: %w", err)
	}
	providerByID := make(map[uint]entity.Provider, len(providers))
	for _, p := range providers {
		providerByID[p.ID] = p
	}

	var benchmarks []entity.Benchmark
	if err := dbConn.Where("model_id IN ?", modelIDs).Order("id ASC").Find(&benchmarks).Error; err != nil {
		return nil, fmt.Errorf("query model benchmarks failed: %w", err)
	}
	benchmarksByModel := make(map[uint][]entity.Benchmark)
	for _, b := range benchmarks {
		benchmarksByModel[b.ModelID] = append(benchmarksByModel[b.ModelID], b)
	}

	var pricing []entity.Pricing
	if err := dbConn.Where("model_id IN ?", modelIDs).Order("id ASC").Find(&pricing).Error; err != nil {
		return nil, fmt.Errorf("query model pricing failed: %w", err)
	}
	pricingByModel := make(map[uint][]entity.Pricing)
	for _, p := range pricing {
		pricingByModel[p.ModelID] = append(pricingByModel[p.ModelID], p)
	}

	for _, m := range models {
		item := entity.ModelWithDetails{
			Model:      m,
			Benchmarks: benchmarksByModel[m.ID],
			Pricing:    pricingByModel[m.ID],
		}
		if p, ok := providerByID[m.ProviderID]; ok {
			provider := p
			item.Provider = &provider
		}
		if item.Benchmarks == nil {
			item.Benchmarks = []entity.Benchmark{}
		}
		if item.Pricing == nil {
			item.Pricing = []entity.Pricing{}
		}
		result = append(result, item)
	}
	return result, nil
}

func (d *ModelDAO) UpdateByID(ctx context.Context, id uint, updates entity.Updates) (*entity.Model, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("update model failed: %w", err)
	}

	var model entity.Model
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &model, "model", id); err != nil {
			return err
		}

		name, providerID := model.Name, model.ProviderID
		if v, ok := updates["provider_id"].(uint); ok {
			if err := ensureProviderExists(tx, v); err != nil {
				return err
			}
			providerID = v
		}
		if v, ok := updates["name"].(string); ok {
			name = v
		}
		if name != model.Name || providerID != model.ProviderID {
			if err := ensureModelNameFree(tx, name, providerID, id); err != nil {
				return err
			}
		}
		return applyUpdates(tx, &model, updates)
	})
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// DeleteByID 删除模型及其跑分、价格，并把它从所有对比表中移除
func (d *ModelDAO) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("delete model by id failed: %w", err)
	}

	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := deleteModelDependents(tx, []uint{id}); err != nil {
			return err
		}
		result := tx.Delete(&entity.Model{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete model by id failed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound("model", id)
		}
		return nil
	})
}
