package service

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type ProviderService struct {
	providerDAO *dao.ProviderDAO
}

func NewProviderService(dbConn *gorm.DB) *ProviderService {
	return &ProviderService{
		providerDAO: dao.NewProviderDAO(dbConn),
	}
}

func (s *ProviderService) CreateProvider(ctx context.Context, provider *entity.Provider) error {
	return s.providerDAO.Save(ctx, provider)
}

func (s *ProviderService) GetProvider(ctx context.Context, id uint) (*entity.ProviderWithModels, error) {
	return s.providerDAO.FindWithModels(ctx, id)
}

func (s *ProviderService) GetAllProviders(ctx context.Context, params entity.QueryParams) (entity.PageResult[entity.Provider], error) {
	providers, total, err := s.providerDAO.FindAll(ctx, params)
	if err != nil {
		return entity.PageResult[entity.Provider]{}, err
	}
	return entity.PageResult[entity.Provider]{Total: total, List: providers}, nil
}

func (s *ProviderService) UpdateProvider(ctx context.Context, id uint, updates entity.Updates) (*entity.Provider, error) {
	return s.providerDAO.UpdateByID(ctx, id, updates)
}

// DeleteProvider 级联删除其模型，以及模型的跑分、价格和对比表条目
func (s *ProviderService) DeleteProvider(ctx context.Context, id uint) error {
	if err := s.providerDAO.DeleteByID(ctx, id); err != nil {
		return err
	}
	serviceLogger().Info("provider deleted", "provider_id", id)
	return nil
}
