// Package extractor 封装外部抽取服务：抓取页面、拼装提示词、调用 Gemini、解析候选数据。
// 抽取结果只返回给调用方，不写入 benchmarks / pricing 表。
package extractor

import (
	"context"
	"errors"
	"fmt"
	"llm_catalog/config"
	"llm_catalog/internal/entity"
	"log/slog"
	"strings"
	"time"
)

// ErrExternalService 表示抽取服务调用失败（网络错误、超时、非 200、空响应）
var ErrExternalService = errors.New("extraction service failed")

// Extractor 是抽取服务的边界
type Extractor interface {
	Extract(ctx context.Context, req entity.ScrapeRequest) (*entity.Extraction, error)
}

// Generator 调用生成式模型，返回纯文本
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func extractorLogger() *slog.Logger {
	return config.LayerLogger("extractor")
}

// GeminiExtractor 组合页面抓取、提示词、模型调用与结果缓存
type GeminiExtractor struct {
	generator    Generator
	fetcher      *PageFetcher
	cache        Cache
	cacheTTL     time.Duration
	maxPageChars int
}

// Option configures the GeminiExtractor.
type Option func(*GeminiExtractor)

// WithCache 启用结果缓存
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(e *GeminiExtractor) {
		e.cache = cache
		e.cacheTTL = ttl
	}
}

// WithPageFetcher 在提示词中附带页面正文
func WithPageFetcher(fetcher *PageFetcher, maxChars int) Option {
	return func(e *GeminiExtractor) {
		e.fetcher = fetcher
		e.maxPageChars = maxChars
	}
}

func NewGeminiExtractor(generator Generator, opts ...Option) *GeminiExtractor {
	e := &GeminiExtractor{generator: generator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig 按配置组装抽取器。没有配置 API key 时返回 nil，由上层报配置错误。
func NewFromConfig(cfg config.GeminiConfig, cache Cache) Extractor {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	client := NewGeminiClient(cfg.APIKey, cfg.BaseURL, cfg.Model,
		time.Duration(cfg.TimeoutSeconds)*time.Second, cfg.RatePerSecond)

	var opts []Option
	if cfg.FetchPage {
		opts = append(opts, WithPageFetcher(NewPageFetcher(), cfg.MaxPageChars))
	}
	if cache != nil && cfg.CacheTTLHours > 0 {
		opts = append(opts, WithCache(cache, time.Duration(cfg.CacheTTLHours)*time.Hour))
	}
	return NewGeminiExtractor(client, opts...)
}

func (e *GeminiExtractor) Extract(ctx context.Context, req entity.ScrapeRequest) (*entity.Extraction, error) {
	logger := extractorLogger().With("url", req.URL, "data_type", req.DataType)

	key := cacheKey(req)
	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, key); ok {
			logger.Debug("extraction cache hit")
			cached.Cached = true
			return cached, nil
		}
	}

	// 页面抓取失败不影响调用，模型仍可以只根据 URL 作答
	var pageText string
	pageFailed := false
	if e.fetcher != nil {
		text, err := e.fetcher.Text(ctx, req.URL, e.maxPageChars)
		if err != nil {
			logger.Warn("fetch page failed, prompting with url only", "error", err)
			pageFailed = true
		} else {
			pageText = text
		}
	}

	prompt := BuildPrompt(req, pageText)
	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	extraction := ParseResponse(req.DataType, raw)
	logger.Info("extraction finished",
		"pricing", len(extraction.PricingData),
		"benchmarks", len(extraction.BenchmarkData),
	)

	// 空结果和缺少页面内容的结果不缓存，下次请求重新调用模型
	switch {
	case e.cache == nil:
	case pageFailed || extraction.IsEmpty():
		logger.Debug("extraction not cached", "page_failed", pageFailed)
	default:
		if err := e.cache.Set(ctx, key, extraction, e.cacheTTL); err != nil {
			logger.Warn("cache extraction failed", "error", err)
		}
	}
	return extraction, nil
}

func externalError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrExternalService, fmt.Sprintf(format, args...))
}
