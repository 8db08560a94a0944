package dao

import (
	"context"
	"errors"
	"fmt"
	"llm_catalog/internal/entity"
	"strings"
	"time"

	"gorm.io/gorm"
)

type WebSourceDAO struct {
	DB *gorm.DB
}

func NewWebSourceDAO(dbConn *gorm.DB) *WebSourceDAO {
	return &WebSourceDAO{DB: dbConn}
}

func ensureWebSourceURLFree(tx *gorm.DB, url string, excludeID uint) error {
	var count int64
	query := tx.Model(&entity.WebSource{}).Where("url = ?", url)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check web source url failed: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: web source %q already exists", ErrAlreadyExists, url)
	}
	return nil
}

func (d *WebSourceDAO) Save(ctx context.Context, source *entity.WebSource) error {
	if source == nil {
		return ErrNilEntity
	}
	if !entity.IsValidSourceType(source.SourceType) {
		return fmt.Errorf("%w: unknown source_type %q", ErrInvalidField, source.SourceType)
	}
	if source.ScrapingIntervalHours <= 0 {
		source.ScrapingIntervalHours = entity.DefaultScrapingIntervalHours
	}
	if source.IsActive == nil {
		active := true
		source.IsActive = &active
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("save web source failed: %w", err)
	}
	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := ensureWebSourceURLFree(tx, source.URL, 0); err != nil {
			return err
		}
		return tx.Create(source).Error
	})
}

func (d *WebSourceDAO) FindByID(ctx context.Context, id uint) (*entity.WebSource, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find web source by id failed: %w", err)
	}

	var source entity.WebSource
	if err := findByID(dbConn, &source, "web source", id); err != nil {
		return nil, err
	}
	return &source, nil
}

func (d *WebSourceDAO) FindByURL(ctx context.Context, url string) (*entity.WebSource, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("find web source by url failed: %w", err)
	}

	var source entity.WebSource
	if err := dbConn.Where("url = ?", url).First(&source).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

func (d *WebSourceDAO) FindAll(ctx context.Context, params entity.QueryParams) ([]entity.WebSource, int64, error) {
	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find web sources failed: %w", err)
	}

	query := dbConn.Model(&entity.WebSource{})
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if sourceType := strings.TrimSpace(params.SourceType); sourceType != "" {
		query = query.Where("source_type = ?", sourceType)
	}
	return listPage[entity.WebSource](query, params, "web sources")
}

func (d *WebSourceDAO) UpdateByID(ctx context.Context, id uint, updates entity.Updates) (*entity.WebSource, error) {
	if v, ok := updates["source_type"].(string); ok && !entity.IsValidSourceType(v) {
		return nil, fmt.Errorf("%w: unknown source_type %q", ErrInvalidField, v)
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("update web source failed: %w", err)
	}

	var source entity.WebSource
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &source, "web source", id); err != nil {
			return err
		}
		if url, ok := updates["url"].(string); ok && url != source.URL {
			if err := ensureWebSourceURLFree(tx, url, id); err != nil {
				return err
			}
		}
		return applyUpdates(tx, &source, updates)
	})
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (d *WebSourceDAO) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return fmt.Errorf("delete web source by id failed: %w", err)
	}

	result := dbConn.Delete(&entity.WebSource{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete web source by id failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("web source", id)
	}
	return nil
}

// RegisterScraped 记录一次成功抓取：URL 已登记时只刷新 last_scraped，否则新建一条激活的来源
func (d *WebSourceDAO) RegisterScraped(ctx context.Context, url, sourceType string, at time.Time) (*entity.WebSource, error) {
	if !entity.IsValidSourceType(sourceType) {
		return nil, fmt.Errorf("%w: unknown source_type %q", ErrInvalidField, sourceType)
	}

	dbConn, err := withContext(d.DB, ctx)
	if err != nil {
		return nil, fmt.Errorf("register web source failed: %w", err)
	}

	var source entity.WebSource
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("url = ?", url).First(&source).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			active := true
			source = entity.WebSource{
				URL:                   url,
				SourceType:            sourceType,
				IsActive:              &active,
				LastScraped:           &at,
				ScrapingIntervalHours: entity.DefaultScrapingIntervalHours,
			}
			return tx.Create(&source).Error
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&source).Update("last_scraped", at).Error; err != nil {
			return err
		}
		return tx.First(&source).Error
	})
	if err != nil {
		return nil, fmt.Errorf("register web source failed: %w", err)
	}
	return &source, nil
}
