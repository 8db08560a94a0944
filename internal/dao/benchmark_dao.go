package dao

import (
	"context"
	"fmt"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type BenchmarkDAO struct {
	DB *gorm.DB
}

func NewBenchmarkDAO(dbConn *gorm.DB) *BenchmarkDAO {
	return &BenchmarkDAO{DB: dbConn}
}

func (d *BenchmarkDAO) Save(ctx context.Context, benchmark *entity.Benchmark) error {
	if benchmark == nil {
		return ErrNilEntity
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("save benchmark failed: %w", err)
	}
	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := ensureModelExists(tx, benchmark.ModelID); err != nil {
			return err
		}
		return tx.Create(benchmark).Error
	})
}

func (d *BenchmarkDAO) FindByID(ctx context.Context, id uint) (*entity.Benchmark, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find benchmark by id failed: %w", err)
	}

	var benchmark entity.Benchmark
	if err := findByID(dbConn, &benchmark, "benchmark", id); err != nil {
		return nil, err
	}
	return &benchmark, nil
}

func (d *BenchmarkDAO) FindAll(ctx context.Context, params entity.QueryParams) ([]entity.Benchmark, int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find benchmarks failed: %w", err)
	}

	query := dbConn.Model(&entity.Benchmark{})
	if params.ModelID != nil {
		query = query.Where("model_id = ?", *params.ModelID)
	}
	if name := params.BenchmarkName; name != "" {
		query = containsFilter(query, "benchmark_name", name)
	}

	return listPage[entity.Benchmark](query, params, "benchmarks")
}

func (d *BenchmarkDAO) UpdateByID(ctx context.Context, id uint, updates entity.Updates) (*entity.Benchmark, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("update benchmark failed: %w", err)
	}

	var benchmark entity.Benchmark
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &benchmark, "benchmark", id); err != nil {
			return err
		}
		if modelID, ok := updates["model_id"].(uint); ok {
			if err := ensureModelExists(tx, modelID); err != nil {
				return err
			}
		}
		return applyUpdates(tx, &benchmark, updates)
	})
	if err != nil {
		return nil, err
	}
	return &benchmark, nil
}

func (d *BenchmarkDAO) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("delete benchmark by id failed: %w", err)
	}

	result := dbConn.Delete(&entity.Benchmark{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete benchmark by id failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("benchmark", id)
	}
	return nil
}
