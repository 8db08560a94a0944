package service

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"time"

	"gorm.io/gorm"
)

type PricingService struct {
	pricingDAO *dao.PricingDAO
	now        func() time.Time
}

func NewPricingService(dbConn *gorm.DB) *PricingService {
	return &PricingService{
		pricingDAO: dao.NewPricingDAO(dbConn),
		now:        time.Now,
	}
}

// WithClock 替换"今天"的来源，测试用
func (s *PricingService) WithClock(now func() time.Time) *PricingService {
	s.now = now
	return s
}

func (s *PricingService) Today() entity.Date {
	return entity.DateOf(s.now())
}

func (s *PricingService) CreatePricing(ctx context.Context, pricing *entity.Pricing) error {
	return s.pricingDAO.Save(ctx, pricing)
}

func (s *PricingService) GetPricing(ctx context.Context, id uint) (*entity.Pricing, error) {
	return s.pricingDAO.FindByID(ctx, id)
}

func (s *PricingService) GetAllPricing(ctx context.Context, params entity.QueryParams) (entity.PageResult[entity.Pricing], error) {
	pricing, total, err := s.pricingDAO.FindAll(ctx, params)
	if err != nil {
		return entity.PageResult[entity.Pricing]{}, err
	}
	return entity.PageResult[entity.Pricing]{Total: total, List: pricing}, nil
}

// CurrentPricing 返回在 on 当天有效的全部价格（on 为空时取今天）。
// 同一 price_type 可能有多条同时有效，不做取舍，由调用方区分。
func (s *PricingService) CurrentPricing(ctx context.Context, modelID *uint, on *entity.Date) ([]entity.Pricing, error) {
	day := s.Today()
	if on != nil && !on.IsZero() {
		day = *on
	}
	return s.pricingDAO.FindCurrent(ctx, modelID, day)
}

func (s *PricingService) UpdatePricing(ctx context.Context, id uint, updates entity.Updates) (*entity.Pricing, error) {
	return s.pricingDAO.UpdateByID(ctx, id, updates)
}

func (s *PricingService) DeletePricing(ctx context.Context, id uint) error {
	return s.pricingDAO.DeleteByID(ctx, id)
}
