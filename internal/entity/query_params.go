package entity

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// QueryParams 定义通用的查询参数。所有列表接口都支持 skip/limit 分页，按 id 升序返回。
type QueryParams struct {
	Skip  int  `form:"skip"`  // 偏移量
	Limit *int `form:"limit"` // 每页数量，缺省 100

	// models 过滤字段
	ProviderID *uint  `form:"provider_id"`
	ModelType  string `form:"model_type"`

	// benchmarks / pricing 过滤字段
	ModelID       *uint  `form:"model_id"`
	BenchmarkName string `form:"benchmark_name"` // 子串匹配，区分大小写
	PriceType     string `form:"price_type"`
	ValidDate     string `form:"valid_date"` // YYYY-MM-DD

	// comparisons 过滤字段
	IsPublic *bool `form:"is_public"`

	// web sources 过滤字段
	IsActive   *bool  `form:"is_active"`
	SourceType string `form:"source_type"`
}

// GetOffset 计算数据库偏移量
func (p *QueryParams) GetOffset() int {
	if p.Skip < 0 {
		return 0
	}
	return p.Skip
}

// GetLimit 获取限制条数
func (p *QueryParams) GetLimit() int {
	if p.Limit == nil || *p.Limit <= 0 {
		return DefaultLimit
	}
	if *p.Limit > MaxLimit {
		return MaxLimit
	}
	return *p.Limit
}

// PageResult 列表查询的结果，Total 通过 X-Total-Count 响应头返回
type PageResult[T any] struct {
	Total int64
	List  []T
}

// Updates 是部分更新的字段集合：只包含请求体里出现过的字段，值可以为 nil（显式置空）
type Updates map[string]interface{}

func (u Updates) Has(field string) bool {
	_, ok := u[field]
	return ok
}

// MessageResponse 是删除接口的返回结构
type MessageResponse struct {
	Message string `json:"message"`
}
