package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ScrapeRequest 是 POST /scraper/scrape-url 的请求体
type ScrapeRequest struct {
	URL          string  `json:"url" binding:"required"`
	DataType     string  `json:"data_type" binding:"required"`
	ModelName    *string `json:"model_name"`
	ProviderName *string `json:"provider_name"`
}

// Amount 兼容模型输出的数字或数字字符串，例如 0.03、"0.03"、"$1,000"
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n)
		return nil
	}
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("amount must be number or string: %w", err)
	}
	if raw == nil {
		*a = 0
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "").Replace(strings.TrimSpace(*raw))
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", *raw)
	}
	*a = Amount(n)
	return nil
}

// PricingCandidate 是抽取服务返回的价格候选，不会写入 pricing 表
type PricingCandidate struct {
	ModelName     string  `json:"model_name"`
	Provider      string  `json:"provider"`
	PriceType     string  `json:"price_type"`
	Price         Amount  `json:"price"`
	Currency      string  `json:"currency"`
	Unit          string  `json:"unit"`
	EffectiveDate *string `json:"effective_date"`
	Notes         *string `json:"notes,omitempty"`
}

// BenchmarkCandidate 是抽取服务返回的跑分候选，不会写入 benchmarks 表
type BenchmarkCandidate struct {
	ModelName     string  `json:"model_name"`
	Provider      string  `json:"provider"`
	BenchmarkName string  `json:"benchmark_name"`
	Score         Amount  `json:"score"`
	Unit          string  `json:"unit"`
	TestDate      *string `json:"test_date"`
	Notes         *string `json:"notes,omitempty"`
}

// Extraction 是一次抽取的结构化结果。解析失败时两个列表为空，RawResponse 保留原文。
type Extraction struct {
	RawResponse   string               `json:"raw_response"`
	PricingData   []PricingCandidate   `json:"pricing_data"`
	BenchmarkData []BenchmarkCandidate `json:"benchmark_data"`
	Cached        bool                 `json:"cached"`
}

// IsEmpty 没有任何候选数据，包括模型输出无法解析的情况
func (e *Extraction) IsEmpty() bool {
	return len(e.PricingData) == 0 && len(e.BenchmarkData) == 0
}

type ExtractedInfo struct {
	URL          string    `json:"url"`
	DataType     string    `json:"data_type"`
	ModelName    *string   `json:"model_name"`
	ProviderName *string   `json:"provider_name"`
	WebSourceID  uint      `json:"web_source_id,omitempty"`
	ScrapedAt    time.Time `json:"scraped_at"`
}

// ScrapeResult 区分"抓取失败"(Success=false) 与请求本身非法（HTTP 400）
type ScrapeResult struct {
	Success       bool           `json:"success"`
	Data          *Extraction    `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExtractedInfo *ExtractedInfo `json:"extracted_info,omitempty"`
}

// ScrapeRun 记录每一次抓取尝试
type ScrapeRun struct {
	ID        uint           `gorm:"primaryKey;column:id" json:"id"`
	URL       string         `gorm:"column:url;size:500;not null;index" json:"url"`
	DataType  string         `gorm:"column:data_type;size:50;not null" json:"data_type"`
	Success   bool           `gorm:"column:success;not null" json:"success"`
	Error     *string        `gorm:"column:error;type:text" json:"error"`
	Request   datatypes.JSON `gorm:"column:request" json:"request"`
	Result    datatypes.JSON `gorm:"column:result" json:"result"`
	ElapsedMS int64          `gorm:"column:elapsed_ms" json:"elapsed_ms"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ScrapeRun) TableName() string {
	return "scrape_runs"
}
