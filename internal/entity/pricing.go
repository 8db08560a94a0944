package entity

import "time"

const DefaultCurrency = "USD"

// Pricing 是某模型某种计费类型在 [valid_from, valid_to] 区间内的价格。
// ValidTo 为 nil 表示至今有效。
type Pricing struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	ModelID   uint      `gorm:"column:model_id;not null;index" json:"model_id" binding:"required"`
	PriceType string    `gorm:"column:price_type;size:50;not null;index" json:"price_type" binding:"required"` // input_tokens | output_tokens | requests
	Price     float64   `gorm:"column:price;type:decimal(12,6);not null" json:"price" binding:"gte=0"`
	Currency  string    `gorm:"column:currency;size:3;not null;default:USD" json:"currency"`
	Unit      string    `gorm:"column:unit;size:50;not null" json:"unit" binding:"required"` // per_1k_tokens | per_million_tokens ...
	ValidFrom Date      `gorm:"column:valid_from;not null" json:"valid_from"`
	ValidTo   *Date     `gorm:"column:valid_to" json:"valid_to"`
	SourceURL *string   `gorm:"column:source_url;size:500" json:"source_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Pricing) TableName() string {
	return "pricing"
}

// ValidOn 判断价格在日期 d 是否有效：valid_from <= d 且 (valid_to 为空 或 valid_to >= d)
func (p Pricing) ValidOn(d Date) bool {
	if p.ValidFrom.After(d) {
		return false
	}
	return p.ValidTo == nil || !p.ValidTo.Before(d)
}
