package dao

import (
	"context"
	"fmt"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

// ScrapeRunDAO 保存抓取审计记录，只追加不修改
type ScrapeRunDAO struct {
	DB *gorm.DB
}

func NewScrapeRunDAO(dbConn *gorm.DB) *ScrapeRunDAO {
	return &ScrapeRunDAO{DB: dbConn}
}

func (d *ScrapeRunDAO) Save(ctx context.Context, run *entity.ScrapeRun) error {
	if run == nil {
		return ErrNilEntity
	}
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("save scrape run failed: %w", err)
	}
	return dbConn.Create(run).Error
}

// FindRecent 按时间倒序分页
func (d *ScrapeRunDAO) FindRecent(ctx context.Context, params entity.QueryParams) ([]entity.ScrapeRun, int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find scrape runs failed: %w", err)
	}

	query := dbConn.Model(&entity.ScrapeRun{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count scrape runs failed: %w", err)
	}

	runs := make([]entity.ScrapeRun, 0)
	if err := query.Order("id DESC").Offset(params.GetOffset()).Limit(params.GetLimit()).Find(&runs).Error; err != nil {
		return nil, 0, fmt.Errorf("query scrape runs failed: %w", err)
	}
	return runs, total, nil
}
