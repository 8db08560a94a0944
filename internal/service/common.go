package service

import (
	"errors"
	"fmt"
	"llm_catalog/config"
	"llm_catalog/internal/dao"
	"log/slog"
)

var (
	// ErrExtractorNotConfigured 抽取服务缺少 API key，只影响抓取接口
	ErrExtractorNotConfigured = errors.New("gemini API key not configured")
	ErrInvalidDataType        = fmt.Errorf("%w: data_type must be one of pricing, benchmark, both", dao.ErrInvalidField)
	ErrInvalidURL             = fmt.Errorf("%w: url must be an absolute http(s) URL", dao.ErrInvalidField)
)

func serviceLogger() *slog.Logger {
	return config.LayerLogger("service")
}
