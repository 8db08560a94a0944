package service

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type ComparisonService struct {
	comparisonDAO *dao.ComparisonDAO
}

func NewComparisonService(dbConn *gorm.DB) *ComparisonService {
	return &ComparisonService{
		comparisonDAO: dao.NewComparisonDAO(dbConn),
	}
}

// CreateComparison 创建对比表及初始条目，model_ids 的顺序即展示顺序；任一模型无效或重复时不创建
func (s *ComparisonService) CreateComparison(ctx context.Context, req entity.ComparisonTableCreate) (*entity.ComparisonTableWithItems, error) {
	table := &entity.ComparisonTable{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
		IsPublic:    req.IsPublic,
	}
	if err := s.comparisonDAO.CreateWithItems(ctx, table, req.ModelIDs); err != nil {
		return nil, err
	}
	serviceLogger().Info("comparison table created", "table_id", table.ID, "items", len(req.ModelIDs))
	return s.comparisonDAO.FindWithItems(ctx, table.ID)
}

func (s *ComparisonService) GetComparison(ctx context.Context, id uint) (*entity.ComparisonTableWithItems, error) {
	return s.comparisonDAO.FindWithItems(ctx, id)
}

func (s *ComparisonService) GetAllComparisons(ctx context.Context, params entity.QueryParams) (entity.PageResult[entity.ComparisonTable], error) {
	tables, total, err := s.comparisonDAO.FindAll(ctx, params)
	if err != nil {
		return entity.PageResult[entity.ComparisonTable]{}, err
	}
	return entity.PageResult[entity.ComparisonTable]{Total: total, List: tables}, nil
}

func (s *ComparisonService) UpdateComparison(ctx context.Context, id uint, updates entity.Updates) (*entity.ComparisonTable, error) {
	return s.comparisonDAO.UpdateByID(ctx, id, updates)
}

func (s *ComparisonService) DeleteComparison(ctx context.Context, id uint) error {
	return s.comparisonDAO.DeleteByID(ctx, id)
}

// AddItem 以路径中的表 ID 为准，忽略请求体里的 comparison_table_id
func (s *ComparisonService) AddItem(ctx context.Context, tableID uint, req entity.ComparisonItemCreate) (*entity.ComparisonItem, error) {
	req.ComparisonTableID = tableID
	return s.comparisonDAO.AddItem(ctx, tableID, req)
}

func (s *ComparisonService) RemoveItem(ctx context.Context, tableID, itemID uint) error {
	return s.comparisonDAO.RemoveItem(ctx, tableID, itemID)
}
