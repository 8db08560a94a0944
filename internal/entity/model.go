package entity

import "time"

// Model 是某个 Provider 下的一个 AI 模型版本。(name, provider_id) 唯一。
type Model struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	Name          string    `gorm:"column:name;size:255;not null;uniqueIndex:idx_models_provider_name,priority:2" json:"name" binding:"required"`
	ProviderID    uint      `gorm:"column:provider_id;not null;index;uniqueIndex:idx_models_provider_name,priority:1" json:"provider_id" binding:"required"`
	ModelType     *string   `gorm:"column:model_type;size:100" json:"model_type"` // text | image | multimodal ...
	Description   *string   `gorm:"column:description;type:text" json:"description"`
	ReleaseDate   *Date     `gorm:"column:release_date" json:"release_date"`
	ContextWindow *int      `gorm:"column:context_window" json:"context_window"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Model) TableName() string {
	return "models"
}

// ModelWithDetails 由读路径组装：模型本身 + 所属 Provider + 跑分 + 价格
type ModelWithDetails struct {
	Model
	Provider   *Provider   `json:"provider"`
	Benchmarks []Benchmark `json:"benchmarks"`
	Pricing    []Pricing   `json:"pricing"`
}
