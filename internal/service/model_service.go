package service

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type ModelService struct {
	modelDAO *dao.ModelDAO
}

func NewModelService(dbConn *gorm.DB) *ModelService {
	return &ModelService{
		modelDAO: dao.NewModelDAO(dbConn),
	}
}

func (s *ModelService) CreateModel(ctx context.Context, model *entity.Model) error {
	return s.modelDAO.Save(ctx, model)
}

func (s *ModelService) GetModel(ctx context.Context, id uint) (*entity.ModelWithDetails, error) {
	return s.modelDAO.FindWithDetails(ctx, id)
}

func (s *ModelService) GetAllModels(ctx context.Context, params entity.QueryParams) (entity.PageResult[entity.ModelWithDetails], error) {
	models, total, err := s.modelDAO.FindAllWithDetails(ctx, params)
	if err != nil {
		return entity.PageResult[entity.ModelWithDetails]{}, err
	}
	return entity.PageResult[entity.ModelWithDetails]{Total: total, List: models}, nil
}

func (s *ModelService) UpdateModel(ctx context.Context, id uint, updates entity.Updates) (*entity.Model, error) {
	return s.modelDAO.UpdateByID(ctx, id, updates)
}

func (s *ModelService) DeleteModel(ctx context.Context, id uint) error {
	if err := s.modelDAO.DeleteByID(ctx, id); err != nil {
		return err
	}
	serviceLogger().Info("model deleted", "model_id", id)
	return nil
}
