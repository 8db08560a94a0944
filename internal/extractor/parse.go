package extractor

import (
	"encoding/json"
	"llm_catalog/internal/entity"
	"strings"
)

type rawPayload struct {
	PricingData   []json.RawMessage `json:"pricing_data"`
	BenchmarkData []json.RawMessage `json:"benchmark_data"`
}

// extractJSON 去掉 markdown 代码块标记，截取第一个 { 到最后一个 } 之间的内容
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// ParseResponse 解析模型输出。无法解析时返回空列表，RawResponse 始终保留原文；
// 单条候选字段不合法时跳过该条。
func ParseResponse(dataType, raw string) *entity.Extraction {
	result := &entity.Extraction{
		RawResponse:   raw,
		PricingData:   []entity.PricingCandidate{},
		BenchmarkData: []entity.BenchmarkCandidate{},
	}

	var payload rawPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		extractorLogger().Warn("unparseable extraction output, returning empty result", "error", err)
		return result
	}

	if dataType != entity.SourceTypeBenchmark {
		for _, item := range payload.PricingData {
			var candidate entity.PricingCandidate
			if err := json.Unmarshal(item, &candidate); err != nil {
				continue
			}
			if strings.TrimSpace(candidate.Currency) == "" {
				candidate.Currency = entity.DefaultCurrency
			}
			result.PricingData = append(result.PricingData, candidate)
		}
	}
	if dataType != entity.SourceTypePricing {
		for _, item := range payload.BenchmarkData {
			var candidate entity.BenchmarkCandidate
			if err := json.Unmarshal(item, &candidate); err != nil {
				continue
			}
			result.BenchmarkData = append(result.BenchmarkData, candidate)
		}
	}
	return result
}
