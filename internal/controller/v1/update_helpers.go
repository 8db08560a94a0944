package v1

import (
	"encoding/json"
	"fmt"
	"llm_catalog/internal/entity"
	"math"
	"sort"
	"strconv"
	"strings"
)

// fieldParser 把请求体中的一个字段转换成可以直接写库的值
type fieldParser func(value interface{}, field string) (interface{}, error)

type fieldParsers map[string]fieldParser

var immutableFields = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"updated_at": {},
}

func parseUpdates(payload map[string]interface{}, parsers fieldParsers) (entity.Updates, error) {
	// 空对象视为不修改任何字段，调用方返回原行
	if len(payload) == 0 {
		return entity.Updates{}, nil
	}

	// 按字段名排序，错误信息稳定
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	updates := make(entity.Updates, len(payload))
	for _, key := range keys {
		if _, ok := immutableFields[key]; ok {
			return nil, fmt.Errorf("%s is immutable", key)
		}
		parse, ok := parsers[key]
		if !ok {
			return nil, fmt.Errorf("unsupported field: %s", key)
		}
		value, err := parse(payload[key], key)
		if err != nil {
			return nil, err
		}
		updates[key] = value
	}
	return updates, nil
}

var providerFields = fieldParsers{
	"name":        requiredString,
	"description": nullableString,
	"website_url": nullableString,
}

var modelFields = fieldParsers{
	"name":           requiredString,
	"provider_id":    requiredID,
	"model_type":     nullableString,
	"description":    nullableString,
	"release_date":   nullableDate,
	"context_window": nullableNonNegativeInt,
}

var benchmarkFields = fieldParsers{
	"model_id":       requiredID,
	"benchmark_name": requiredString,
	"score":          nullableFloat,
	"unit":           nullableString,
	"test_date":      nullableDate,
	"source_url":     nullableString,
	"notes":          nullableString,
}

var pricingFields = fieldParsers{
	"model_id":   requiredID,
	"price_type": requiredString,
	"price":      nonNegativeFloat,
	"currency":   currencyCode,
	"unit":       requiredString,
	"valid_from": requiredDate,
	"valid_to":   nullableDate,
	"source_url": nullableString,
}

var comparisonFields = fieldParsers{
	"name":        requiredString,
	"description": nullableString,
	"created_by":  nullableString,
	"is_public":   requiredBool,
}

var webSourceFields = fieldParsers{
	"url":                     requiredString,
	"source_type":             sourceType,
	"is_active":               requiredBool,
	"scraping_interval_hours": positiveInt,
}

func requiredString(value interface{}, field string) (interface{}, error) {
	return parseRequiredStringField(value, field)
}

func nullableString(value interface{}, field string) (interface{}, error) {
	text, err := parseNullableStringField(value, field)
	if err != nil || text == nil {
		return nil, err
	}
	return *text, nil
}

func requiredID(value interface{}, field string) (interface{}, error) {
	id, err := parseUintField(value, field)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("%s must be greater than 0", field)
	}
	return id, nil
}

func nullableFloat(value interface{}, field string) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	return parseFloatField(value, field)
}

func nonNegativeFloat(value interface{}, field string) (interface{}, error) {
	parsed, err := parseFloatField(value, field)
	if err != nil {
		return nil, err
	}
	if parsed < 0 {
		return nil, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return parsed, nil
}

func nullableNonNegativeInt(value interface{}, field string) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := parseUintField(value, field)
	if err != nil {
		return nil, err
	}
	return int(parsed), nil
}

func positiveInt(value interface{}, field string) (interface{}, error) {
	parsed, err := parseUintField(value, field)
	if err != nil {
		return nil, err
	}
	if parsed == 0 {
		return nil, fmt.Errorf("%s must be greater than 0", field)
	}
	return int(parsed), nil
}

func requiredBool(value interface{}, field string) (interface{}, error) {
	flag, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be boolean", field)
	}
	return flag, nil
}

func requiredDate(value interface{}, field string) (interface{}, error) {
	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a YYYY-MM-DD string", field)
	}
	date, err := entity.ParseDate(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return date, nil
}

func nullableDate(value interface{}, field string) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	return requiredDate(value, field)
}

func currencyCode(value interface{}, field string) (interface{}, error) {
	text, err := parseRequiredStringField(value, field)
	if err != nil {
		return nil, err
	}
	text = strings.ToUpper(text)
	if len(text) != 3 {
		return nil, fmt.Errorf("%s must be a 3-letter code", field)
	}
	return text, nil
}

func sourceType(value interface{}, field string) (interface{}, error) {
	text, err := parseRequiredStringField(value, field)
	if err != nil {
		return nil, err
	}
	if !entity.IsValidSourceType(text) {
		return nil, fmt.Errorf("%s must be one of pricing, benchmark, both", field)
	}
	return text, nil
}

func parseRequiredStringField(value interface{}, field string) (string, error) {
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", field)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s cannot be empty", field)
	}
	return text, nil
}

func parseNullableStringField(value interface{}, field string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be string or null", field)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

func parseFloatField(value interface{}, field string) (float64, error) {
	switch typed := value.(type) {
	case float64:
		return typed, nil
	case int:
		return float64(typed), nil
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s must be numeric", field)
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be numeric", field)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%s must be numeric", field)
	}
}

// maxUintField id 和 token 数都落在 32 位范围内，超出的值直接拒绝
const maxUintField = math.MaxUint32

func parseUintField(value interface{}, field string) (uint, error) {
	invalid := fmt.Errorf("%s must be a non-negative integer no greater than %d", field, uint64(maxUintField))
	switch typed := value.(type) {
	case float64:
		if typed < 0 || typed > maxUintField || math.Trunc(typed) != typed {
			return 0, invalid
		}
		return uint(typed), nil
	case int:
		if typed < 0 || int64(typed) > maxUintField {
			return 0, invalid
		}
		return uint(typed), nil
	case json.Number:
		intValue, err := strconv.ParseUint(typed.String(), 10, 32)
		if err != nil {
			return 0, invalid
		}
		return uint(intValue), nil
	case string:
		intValue, err := strconv.ParseUint(strings.TrimSpace(typed), 10, 32)
		if err != nil {
			return 0, invalid
		}
		return uint(intValue), nil
	default:
		return 0, invalid
	}
}
