package entity

import "time"

type ComparisonTable struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name" binding:"required"`
	Description *string   `gorm:"column:description;type:text" json:"description"`
	CreatedBy   *string   `gorm:"column:created_by;size:255" json:"created_by"`
	IsPublic    bool      `gorm:"column:is_public;not null;default:false" json:"is_public"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ComparisonTable) TableName() string {
	return "comparison_tables"
}

// ComparisonItem 一个模型在对比表中最多出现一次
type ComparisonItem struct {
	ID                uint      `gorm:"primaryKey;column:id" json:"id"`
	ComparisonTableID uint      `gorm:"column:comparison_table_id;not null;uniqueIndex:idx_comparison_items_table_model,priority:1" json:"comparison_table_id"`
	ModelID           uint      `gorm:"column:model_id;not null;index;uniqueIndex:idx_comparison_items_table_model,priority:2" json:"model_id"`
	DisplayOrder      int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ComparisonItem) TableName() string {
	return "comparison_items"
}

// ComparisonTableCreate 创建对比表的请求体，ModelIDs 的顺序即 display_order
type ComparisonTableCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	CreatedBy   *string `json:"created_by"`
	IsPublic    bool    `json:"is_public"`
	ModelIDs    []uint  `json:"model_ids"`
}

// ComparisonItemCreate 向已有对比表追加模型。ComparisonTableID 总会被路径中的表 ID 覆盖；
// DisplayOrder 为空时追加到末尾。
type ComparisonItemCreate struct {
	ComparisonTableID uint `json:"comparison_table_id"`
	ModelID           uint `json:"model_id" binding:"required"`
	DisplayOrder      *int `json:"display_order"`
}

type ComparisonItemWithModel struct {
	ComparisonItem
	Model *Model `json:"model"`
}

type ComparisonTableWithItems struct {
	ComparisonTable
	Items []ComparisonItemWithModel `json:"items"`
}
