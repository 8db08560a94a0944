package entity

import "time"

const (
	SourceTypePricing   = "pricing"
	SourceTypeBenchmark = "benchmark"
	SourceTypeBoth      = "both"

	DefaultScrapingIntervalHours = 24
)

func IsValidSourceType(sourceType string) bool {
	switch sourceType {
	case SourceTypePricing, SourceTypeBenchmark, SourceTypeBoth:
		return true
	default:
		return false
	}
}

type WebSource struct {
	ID                    uint       `gorm:"primaryKey;column:id" json:"id"`
	URL                   string     `gorm:"column:url;size:500;not null;uniqueIndex:idx_web_sources_url" json:"url" binding:"required"`
	SourceType            string     `gorm:"column:source_type;size:50;not null" json:"source_type" binding:"required"`
	IsActive              *bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastScraped           *time.Time `gorm:"column:last_scraped" json:"last_scraped"`
	ScrapingIntervalHours int        `gorm:"column:scraping_interval_hours;not null;default:24" json:"scraping_interval_hours"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WebSource) TableName() string {
	return "web_sources"
}
