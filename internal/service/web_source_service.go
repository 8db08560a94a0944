package service

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type WebSourceService struct {
	webSourceDAO *dao.WebSourceDAO
}

func NewWebSourceService(dbConn *gorm.DB) *WebSourceService {
	return &WebSourceService{
		webSourceDAO: dao.NewWebSourceDAO(dbConn),
	}
}

func (s *WebSourceService) CreateWebSource(ctx context.Context, source *entity.WebSource) error {
	if err := validateSourceURL(source.URL); err != nil {
		return err
	}
	return s.webSourceDAO.Save(ctx, source)
}

func (s *WebSourceService) GetWebSource(ctx context.Context, id uint) (*entity.WebSource, error) {
	return s.webSourceDAO.FindByID(ctx, id)
}

func (s *WebSourceService) GetAllWebSources(ctx context.Context, params entity.QueryParams) (entity.PageResult[entity.WebSource], error) {
	sources, total, err := s.webSourceDAO.FindAll(ctx, params)
	if err != nil {
		return entity.PageResult[entity.WebSource]{}, err
	}
	return entity.PageResult[entity.WebSource]{Total: total, List: sources}, nil
}

func (s *WebSourceService) UpdateWebSource(ctx context.Context, id uint, updates entity.Updates) (*entity.WebSource, error) {
	if raw, ok := updates["url"].(string); ok {
		if err := validateSourceURL(raw); err != nil {
			return nil, err
		}
	}
	return s.webSourceDAO.UpdateByID(ctx, id, updates)
}

func (s *WebSourceService) DeleteWebSource(ctx context.Context, id uint) error {
	return s.webSourceDAO.DeleteByID(ctx, id)
}
