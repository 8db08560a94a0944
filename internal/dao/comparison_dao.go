package dao

import (
	"context"
	"fmt"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type ComparisonDAO struct {
	DB *gorm.DB
}

func NewComparisonDAO(dbConn *gorm.DB) *ComparisonDAO {
	return &ComparisonDAO{DB: dbConn}
}

// CreateWithItems 在一个事务内创建对比表及其条目，任一模型不存在或重复时整体回滚。
// 条目的 display_order 等于其在 modelIDs 中的下标。
func (d *ComparisonDAO) CreateWithItems(ctx context.Context, table *entity.ComparisonTable, modelIDs []uint) error {
	if table == nil {
		return ErrNilEntity
	}

	seen := make(map[uint]struct{}, len(modelIDs))
	for _, id := range modelIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: model %d listed more than once", ErrAlreadyExists, id)
		}
		seen[id] = struct{}{}
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("create comparison table failed: %w", err)
	}
	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := ensureModelsExist(tx, modelIDs); err != nil {
			return err
		}
		if err := tx.Create(table).Error; err != nil {
			return fmt.Errorf("create comparison table failed: %w", err)
		}
		if len(modelIDs) == 0 {
			return nil
		}
		items := make([]entity.ComparisonItem, 0, len(modelIDs))
		for i, modelID := range modelIDs {
			items = append(items, entity.ComparisonItem{
				ComparisonTableID: table.ID,
				ModelID:           modelID,
				DisplayOrder:      i,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("create comparison items failed: %w", err)
		}
		return nil
	})
}

func (d *ComparisonDAO) FindByID(ctx context.Context, id uint) (*entity.ComparisonTable, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find comparison table by id failed: %w", err)
	}

	var table entity.ComparisonTable
	if err := findByID(dbConn, &table, "comparison table", id); err != nil {
		return nil, err
	}
	return &table, nil
}

// FindWithItems 返回对比表及按 display_order 排序的条目，每个条目带上模型
func (d *ComparisonDAO) FindWithItems(ctx context.Context, id uint) (*entity.ComparisonTableWithItems, error) {
	table, err := d.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := d.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.ComparisonTableWithItems{ComparisonTable: *table, Items: items}, nil
}

func (d *ComparisonDAO) FindItems(ctx context.Context, tableID uint) ([]entity.ComparisonItemWithModel, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, err
	}

	var items []entity.ComparisonItem
	if err := dbConn.Where("comparison_table_id = ?", tableID).
		Order("display_order ASC").Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("query comparison items failed: %w", err)
	}

	modelIDs := make([]uint, 0, len(items))
	for _, item := range items {
		modelIDs = append(modelIDs, item.ModelID)
	}
	models, err := NewModelDAO(dbConn).FindByIDs(ctx, modelIDs)
	if err != nil {
		return nil, err
	}

	result := make([]entity.ComparisonItemWithModel, 0, len(items))
	for _, item := range items {
		withModel := entity.ComparisonItemWithModel{ComparisonItem: item}
		if m, ok := models[item.ModelID]; ok {
			model := m
			withModel.Model = &model
		}
		result = append(result, withModel)
	}
	return result, nil
}

func (d *ComparisonDAO) FindAll(ctx context.Context, params entity.QueryParams) ([]entity.ComparisonTable, int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find comparison tables failed: %w", err)
	}

	query := dbConn.Model(&entity.ComparisonTable{})
	if params.IsPublic != nil {
		query = query.Where("is_public = ?", *params.IsPublic)
	}
	return listPage[entity.ComparisonTable](query, params, "comparison tables")
}

func (d *ComparisonDAO) UpdateByID(ctx context.Context, id uint, updates entity.Updates) (*entity.ComparisonTable, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("update comparison table failed: %w", err)
	}

	var table entity.ComparisonTable
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &table, "comparison table", id); err != nil {
			return err
		}
		return applyUpdates(tx, &table, updates)
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// DeleteByID 先删条目再删表
func (d *ComparisonDAO) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("delete comparison table by id failed: %w", err)
	}

	return dbConn.Transaction(func(tx *gorm.DB) error {
		var table entity.ComparisonTable
		if err := findByID(tx, &table, "comparison table", id); err != nil {
			return err
		}
		if err := tx.Where("comparison_table_id = ?", id).Delete(&entity.ComparisonItem{}).Error; err != nil {
			return fmt.Errorf("delete comparison items failed: %w", err)
		}
		if err := tx.Delete(&entity.ComparisonTable{}, id).Error; err != nil {
			return fmt.Errorf("delete comparison table failed: %w", err)
		}
		return nil
	})
}

// AddItem 向对比表追加一个模型。表不存在返回 NotFound，模型不存在返回 ErrInvalidReference，
// 模型已在表中返回 ErrAlreadyExists。DisplayOrder 为空时排在末尾。
func (d *ComparisonDAO) AddItem(ctx context.Context, tableID uint, req entity.ComparisonItemCreate) (*entity.ComparisonItem, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("add comparison item failed: %w", err)
	}

	item := entity.ComparisonItem{ComparisonTableID: tableID, ModelID: req.ModelID}
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		var table entity.ComparisonTable
		if err := findByID(tx, &table, "comparison table", tableID); err != nil {
			return err
		}
		if err := ensureModelExists(tx, req.ModelID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&entity.ComparisonItem{}).
			Where("comparison_table_id = ? AND model_id = ?", tableID, req.ModelID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check comparison item failed: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: model %d is already in comparison table %d", ErrAlreadyExists, req.ModelID, tableID)
		}

		if req.DisplayOrder != nil {
			item.DisplayOrder = *req.DisplayOrder
		} else {
			var maxOrder *int
			if err := tx.Model(&entity.ComparisonItem{}).
				Where("comparison_table_id = ?", tableID).
				Select("MAX(display_order)").Scan(&maxOrder).Error; err != nil {
				return fmt.Errorf("query max display_order failed: %w", err)
			}
			if maxOrder != nil {
				item.DisplayOrder = *maxOrder + 1
			}
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem 只删除属于 tableID 的条目，否则返回 NotFound
func (d *ComparisonDAO) RemoveItem(ctx context.Context, tableID, itemID uint) error {
	if tableID == 0 || itemID == 0 {
		return ErrInvalidID
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("remove comparison item failed: %w", err)
	}

	result := dbConn.Where("id = ? AND comparison_table_id = ?", itemID, tableID).Delete(&entity.ComparisonItem{})
	if result.Error != nil {
		return fmt.Errorf("remove comparison item failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("comparison item", itemID)
	}
	return nil
}
