package entity

import "time"

type Provider struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"column:name;size:255;not null;uniqueIndex:idx_providers_name" json:"name" binding:"required"`
	Description *string   `gorm:"column:description;type:text" json:"description"`
	WebsiteURL  *string   `gorm:"column:website_url;size:500" json:"website_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Provider) TableName() string {
	return "providers"
}

// ProviderWithModels 是 GET /providers/:id 的返回结构
type ProviderWithModels struct {
	Provider
	Models []Model `json:"models"`
}
