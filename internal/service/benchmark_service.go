package service

import (
	"context"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type BenchmarkService struct {
	benchmarkDAO *dao.BenchmarkDAO
}

func NewBenchmarkService(dbConn *gorm.DB) *BenchmarkService {
	return &BenchmarkService{
		benchmarkDAO: dao.NewBenchmarkDAO(dbConn),
	}
}

func (s *BenchmarkService) CreateBenchmark(ctx context.Context, benchmark *entity.Benchmark) error {
	return s.benchmarkDAO.Save(ctx, benchmark)
}

func (s *BenchmarkService) GetBenchmark(ctx context.Context, id uint) (*entity.Benchmark, error) {
	return s.benchmarkDAO.FindByID(ctx, id)
}

func (s *BenchmarkService) GetAllBenchmarks(ctx context.Context, params entity.QueryParams) (entity.PageResult[entity.Benchmark], error) {
	benchmarks, total, err := s.benchmarkDAO.FindAll(ctx, params)
	if err != nil {
		return entity.PageResult[entity.Benchmark]{}, err
	}
	return entity.PageResult[entity.Benchmark]{Total: total, List: benchmarks}, nil
}

func (s *BenchmarkService) UpdateBenchmark(ctx context.Context, id uint, updates entity.Updates) (*entity.Benchmark, error) {
	return s.benchmarkDAO.UpdateByID(ctx, id, updates)
}

func (s *BenchmarkService) DeleteBenchmark(ctx context.Context, id uint) error {
	return s.benchmarkDAO.DeleteByID(ctx, id)
}
