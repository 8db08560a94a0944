package extractor

import (
	"fmt"
	"llm_catalog/internal/entity"
	"strings"
)

const pricingSchema = `    "pricing_data": [
        {
            "model_name": "exact model name",
            "provider": "provider name",
            "price_type": "input_tokens|output_tokens|requests",
            "price": 0.0,
            "currency": "USD",
            "unit": "per_1k_tokens|per_million_tokens|per_request",
            "effective_date": "YYYY-MM-DD or null",
            "notes": "any additional pricing notes"
        }
    ]`

const benchmarkSchema = `    "benchmark_data": [
        {
            "model_name": "exact model name",
            "provider": "provider name",
            "benchmark_name": "exact benchmark name",
            "score": 0.0,
            "unit": "accuracy|percentage|score",
            "test_date": "YYYY-MM-DD or null",
            "notes": "any additional benchmark notes"
        }
    ]`

func focusText(req entity.ScrapeRequest) string {
	model := trimmed(req.ModelName)
	provider := trimmed(req.ProviderName)
	switch {
	case model != "" && provider != "":
		return fmt.Sprintf("Focus specifically on %s from %s.", model, provider)
	case model != "":
		return fmt.Sprintf("Focus specifically on %s.", model)
	case provider != "":
		return fmt.Sprintf("Focus specifically on models from %s.", provider)
	default:
		return ""
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// BuildPrompt 按 data_type 生成提示词，pageText 非空时附在末尾
func BuildPrompt(req entity.ScrapeRequest, pageText string) string {
	var b strings.Builder

	switch req.DataType {
	case entity.SourceTypePricing:
		fmt.Fprintf(&b, "Please extract pricing information for AI models from this URL: %s\n\n", req.URL)
		b.WriteString(focusLine(req))
		b.WriteString("Look for model names, input token pricing, output token pricing, request-based pricing, ")
		b.WriteString("the price unit (1K tokens, 1M tokens, per request), currency and effective dates.\n\n")
		b.WriteString("Return the data in valid JSON format only, no other text:\n{\n")
		b.WriteString(pricingSchema)
		b.WriteString("\n}\n\nIf no pricing data is found, return: {\"pricing_data\": []}\n")
	case entity.SourceTypeBenchmark:
		fmt.Fprintf(&b, "Please extract benchmark performance data for AI models from this URL: %s\n\n", req.URL)
		b.WriteString(focusLine(req))
		b.WriteString("Look for model names, benchmark names (MMLU, HellaSwag, TruthfulQA, GSM8K, HumanEval, etc.), ")
		b.WriteString("scores, units (accuracy, percentage, score) and test dates.\n\n")
		b.WriteString("Return the data in valid JSON format only, no other text:\n{\n")
		b.WriteString(benchmarkSchema)
		b.WriteString("\n}\n\nIf no benchmark data is found, return: {\"benchmark_data\": []}\n")
	default:
		fmt.Fprintf(&b, "Please extract both pricing and benchmark data for AI models from this URL: %s\n\n", req.URL)
		b.WriteString(focusLine(req))
		b.WriteString("Extract all available pricing and performance data.\n\n")
		b.WriteString("Return the data in valid JSON format only, no other text:\n{\n")
		b.WriteString(pricingSchema)
		b.WriteString(",\n")
		b.WriteString(benchmarkSchema)
		b.WriteString("\n}\n\nIf no data is found for either category, return empty arrays.\n")
	}

	if pageText != "" {
		b.WriteString("\nPage content:\n\"\"\"\n")
		b.WriteString(pageText)
		b.WriteString("\n\"\"\"\n")
	}
	return b.String()
}

func focusLine(req entity.ScrapeRequest) string {
	if text := focusText(req); text != "" {
		return text + "\n\n"
	}
	return ""
}
