package dao

import (
	"context"
	"errors"
	"fmt"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type ProviderDAO struct {
	DB *gorm.DB
}

func NewProviderDAO(dbConn *gorm.DB) *ProviderDAO {
	return &ProviderDAO{DB: dbConn}
}

func ensureProviderNameFree(tx *gorm.DB, name string, excludeID uint) error {
	var count int64
	query := tx.Model(&entity.Provider{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check provider name failed: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: provider with name %q already exists", ErrAlreadyExists, name)
	}
	return nil
}

func (d *ProviderDAO) Save(ctx context.Context, provider *entity.Provider) error {
	if provider == nil {
		return ErrNilEntity
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("save provider failed: %w", err)
	}
	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := ensureProviderNameFree(tx, provider.Name, 0); err != nil {
			return err
		}
		return tx.Create(provider).Error
	})
}

func (d *ProviderDAO) FindByID(ctx context.Context, id uint) (*entity.Provider, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find provider by id failed: %w", err)
	}

	var provider entity.Provider
	if err := findByID(dbConn, &provider, "provider", id); err != nil {
		return nil, err
	}
	return &provider, nil
}

// FindWithModels 组装 Provider 及其下所有模型
func (d *ProviderDAO) FindWithModels(ctx context.Context, id uint) (*entity.ProviderWithModels, error) {
	provider, err := d.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, err
	}
	models := make([]entity.Model, 0)
	if err := dbConn.Where("provider_id = ?", id).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("query provider models failed: %w", err)
	}
	return &entity.ProviderWithModels{Provider: *provider, Models: models}, nil
}

func (d *ProviderDAO) FindAll(ctx context.Context, params entity.QueryParams) ([]entity.Provider, int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find providers failed: %w", err)
	}
	return listPage[entity.Provider](dbConn.Model(&entity.Provider{}), params, "providers")
}

func (d *ProviderDAO) FindByName(ctx context.Context, name string) (*entity.Provider, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find provider by name failed: %w", err)
	}

	var provider entity.Provider
	err = dbConn.Where("name = ?", name).First(&provider).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func (d *ProviderDAO) UpdateByID(ctx context.Context, id uint, updates entity.Updates) (*entity.Provider, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("update provider failed: %w", err)
	}

	var provider entity.Provider
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &provider, "provider", id); err != nil {
			return err
		}
		if name, ok := updates["name"].(string); ok && name != provider.Name {
			if err := ensureProviderNameFree(tx, name, id); err != nil {
				return err
			}
		}
		return applyUpdates(tx, &provider, updates)
	})
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// DeleteByID 删除 Provider，并在同一事务内删除其模型及模型的全部依赖
func (d *ProviderDAO) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("delete provider by id failed: %w", err)
	}

	return dbConn.Transaction(func(tx *gorm.DB) error {
		var provider entity.Provider
		if err := findByID(tx, &provider, "provider", id); err != nil {
			return err
		}
		if err := deleteProviderDependents(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&entity.Provider{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete provider by id failed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound("provider", id)
		}
		return nil
	})
}

// Count 供初始化数据时判断是否为空库
func (d *ProviderDAO) Count(ctx context.Context) (int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := dbConn.Model(&entity.Provider{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count providers failed: %w", err)
	}
	return total, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
