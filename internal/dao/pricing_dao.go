package dao

import (
	"context"
	"fmt"
	"llm_catalog/internal/entity"
	"strings"

	"gorm.io/gorm"
)

// validOnClause 与 entity.Pricing.ValidOn 语义一致，日期以 YYYY-MM-DD 字符串比较
const validOnClause = "valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)"

type PricingDAO struct {
	DB *gorm.DB
}

func NewPricingDAO(dbConn *gorm.DB) *PricingDAO {
	return &PricingDAO{DB: dbConn}
}

func validatePricingInterval(pricing *entity.Pricing) error {
	if pricing.ValidFrom.IsZero() {
		return fmt.Errorf("%w: valid_from is required", ErrInvalidField)
	}
	if pricing.ValidTo != nil && pricing.ValidTo.Before(pricing.ValidFrom) {
		return fmt.Errorf("%w: valid_to %s is before valid_from %s", ErrInvalidField, pricing.ValidTo, pricing.ValidFrom)
	}
	if pricing.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidField)
	}
	return nil
}

func (d *PricingDAO) Save(ctx context.Context, pricing *entity.Pricing) error {
	if pricing == nil {
		return ErrNilEntity
	}
	if strings.TrimSpace(pricing.Currency) == "" {
		pricing.Currency = entity.DefaultCurrency
	}
	if len(pricing.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidField)
	}
	if err := validatePricingInterval(pricing); err != nil {
		return err
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("save pricing failed: %w", err)
	}
	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := ensureModelExists(tx, pricing.ModelID); err != nil {
			return err
		}
		return tx.Create(pricing).Error
	})
}

func (d *PricingDAO) FindByID(ctx context.Context, id uint) (*entity.Pricing, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find pricing by id failed: %w", err)
	}

	var pricing entity.Pricing
	if err := findByID(dbConn, &pricing, "pricing", id); err != nil {
		return nil, err
	}
	return &pricing, nil
}

func (d *PricingDAO) FindAll(ctx context.Context, params entity.QueryParams) ([]entity.Pricing, int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find pricing failed: %w", err)
	}

	query := dbConn.Model(&entity.Pricing{})
	if params.ModelID != nil {
		query = query.Where("model_id = ?", *params.ModelID)
	}
	if priceType := strings.TrimSpace(params.PriceType); priceType != "" {
		query = query.Where("price_type = ?", priceType)
	}
	if raw := strings.TrimSpace(params.ValidDate); raw != "" {
		on, err := entity.ParseDate(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: valid_date: %v", ErrInvalidField, err)
		}
		query = query.Where(validOnClause, on, on)
	}

	return listPage[entity.Pricing](query, params, "pricing")
}

// FindCurrent 返回在 on 当天有效的全部价格，modelID 为空时不限模型
func (d *PricingDAO) FindCurrent(ctx context.Context, modelID *uint, on entity.Date) ([]entity.Pricing, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find current pricing failed: %w", err)
	}

	query := dbConn.Model(&entity.Pricing{}).Where(validOnClause, on, on)
	if modelID != nil {
		query = query.Where("model_id = ?", *modelID)
	}

	rows := make([]entity.Pricing, 0)
	if err := query.Order("model_id ASC").Order("price_type ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query current pricing failed: %w", err)
	}
	return rows, nil
}

// UpdateByID 合并已有值后再校验区间，保证更新后仍满足 valid_to >= valid_from
func (d *PricingDAO) UpdateByID(ctx context.Context, id uint, updates entity.Updates) (*entity.Pricing, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("update pricing failed: %w", err)
	}

	var pricing entity.Pricing
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &pricing, "pricing", id); err != nil {
			return err
		}
		if modelID, ok := updates["model_id"].(uint); ok {
			if err := ensureModelExists(tx, modelID); err != nil {
				return err
			}
		}

		merged := pricing
		if updates.Has("valid_from") {
			v, ok := updates["valid_from"].(entity.Date)
			if !ok {
				return fmt.Errorf("%w: valid_from is required", ErrInvalidField)
			}
			merged.ValidFrom = v
		}
		if updates.Has("valid_to") {
			merged.ValidTo = nil
			if v, ok := updates["valid_to"].(entity.Date); ok {
				merged.ValidTo = &v
			}
		}
		if v, ok := updates["price"].(float64); ok {
			merged.Price = v
		}
		if err := validatePricingInterval(&merged); err != nil {
			return err
		}
		return applyUpdates(tx, &pricing, updates)
	})
	if err != nil {
		return nil, err
	}
	return &pricing, nil
}

func (d *PricingDAO) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("delete pricing by id failed: %w", err)
	}

	result := dbConn.Delete(&entity.Pricing{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete pricing by id failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("pricing", id)
	}
	return nil
}
