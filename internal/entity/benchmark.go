package entity

import "time"

type Benchmark struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	ModelID       uint      `gorm:"column:model_id;not null;index" json:"model_id" binding:"required"`
	BenchmarkName string    `gorm:"column:benchmark_name;size:255;not null" json:"benchmark_name" binding:"required"`
	Score         *float64  `gorm:"column:score;type:decimal(10,4)" json:"score"`
	Unit          *string   `gorm:"column:unit;size:50" json:"unit"` // accuracy | bleu | rouge ...
	TestDate      *Date     `gorm:"column:test_date" json:"test_date"`
	SourceURL     *string   `gorm:"column:source_url;size:500" json:"source_url"`
	Notes         *string   `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Benchmark) TableName() string {
	return "benchmarks"
}
