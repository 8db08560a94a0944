package dao

import (
	"fmt"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

// 外键存在性检查。所有检查都在调用方的事务内执行，失败时整个操作回滚。

func exists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func ensureProviderExists(tx *gorm.DB, providerID uint) error {
	ok, err := exists(tx, &entity.Provider{}, providerID)
	if err != nil {
		return fmt.Errorf("check provider %d failed: %w", providerID, err)
	}
	if !ok {
		return fmt.Errorf("%w: provider %d not found", ErrInvalidReference, providerID)
	}
	return nil
}

func ensureModelExists(tx *gorm.DB, modelID uint) error {
	ok, err := exists(tx, &entity.Model{}, modelID)
	if err != nil {
		return fmt.Errorf("check model %d failed: %w", modelID, err)
	}
	if !ok {
		return fmt.Errorf("%w: model %d not found", ErrInvalidReference, modelID)
	}
	return nil
}

// ensureModelsExist 校验一组模型 ID，报告第一个不存在的 ID
func ensureModelsExist(tx *gorm.DB, modelIDs []uint) error {
	if len(modelIDs) == 0 {
		return nil
	}
	var found []uint
	if err := tx.Model(&entity.Model{}).Where("id IN ?", modelIDs).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("check models failed: %w", err)
	}
	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range modelIDs {
		if _, ok := present[id]; !ok {
			return fmt.Errorf("%w: model %d not found", ErrInvalidReference, id)
		}
	}
	return nil
}

// 级联删除：按 Provider → Model → {ComparisonItem, Benchmark, Pricing} 的顺序显式删除依赖行

func deleteModelDependents(tx *gorm.DB, modelIDs []uint) error {
	if len(modelIDs) == 0 {
		return nil
	}
	if err := tx.Where("model_id IN ?", modelIDs).Delete(&entity.ComparisonItem{}).Error; err != nil {
		return fmt.Errorf("delete comparison items failed: %w", err)
	}
	if err := tx.Where("model_id IN ?", modelIDs).Delete(&entity.Benchmark{}).Error; err != nil {
		return fmt.Errorf("delete benchmarks failed: %w", err)
	}
	if err := tx.Where("model_id IN ?", modelIDs).Delete(&entity.Pricing{}).Error; err != nil {
		return fmt.Errorf("delete pricing failed: %w", err)
	}
	return nil
}

func deleteProviderDependents(tx *gorm.DB, providerID uint) error {
	var modelIDs []uint
	if err := tx.Model(&entity.Model{}).Where("provider_id = ?", providerID).Pluck("id", &modelIDs).Error; err != nil {
		return fmt.Errorf("list provider models failed: %w", err)
	}
	if err := deleteModelDependents(tx, modelIDs); err != nil {
		return err
	}
	if len(modelIDs) == 0 {
		return nil
	}
	if err := tx.Where("id IN ?", modelIDs).Delete(&entity.Model{}).Error; err != nil {
		return fmt.Errorf("delete models failed: %w", err)
	}
	return nil
}
