package v1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestParseUpdatesConvertsValues(t *testing.T) {
	updates, err := parseUpdates(decodePayload(t, `{
		"model_id": 3,
		"price": "0.015",
		"currency": "eur",
		"valid_from": "2024-01-01",
		"valid_to": null,
		"source_url": "  "
	}`), pricingFields)
	require.NoError(t, err)

	assert.Equal(t, uint(3), updates["model_id"])
	assert.InDelta(t, 0.015, updates["price"], 1e-9)
	assert.Equal(t, "EUR", updates["currency"])
	assert.True(t, updates.Has("valid_to"))
	assert.Nil(t, updates["valid_to"])
	assert.True(t, updates.Has("source_url"))
	assert.Nil(t, updates["source_url"])
	assert.NotContains(t, updates, "unit")
}

func TestParseUpdatesRejects(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		parsers fieldParsers
		want    string
	}{
		{"immutable id", `{"id": 1}`, providerFields, "immutable"},
		{"immutable created_at", `{"created_at": "2024-01-01"}`, modelFields, "immutable"},
		{"unknown field", `{"slogan": "x"}`, providerFields, "unsupported field"},
		{"blank required string", `{"name": "  "}`, providerFields, "cannot be empty"},
		{"null required string", `{"name": null}`, providerFields, "must be string"},
		{"fractional id", `{"provider_id": 1.5}`, modelFields, "non-negative integer"},
		{"zero id", `{"provider_id": 0}`, modelFields, "greater than 0"},
		{"negative context window", `{"context_window": -5}`, modelFields, "non-negative integer"},
		{"huge id", `{"provider_id": 1e30}`, modelFields, "non-negative integer"},
		{"id above uint32", `{"provider_id": 4294967296}`, modelFields, "non-negative integer"},
		{"huge context window", `{"context_window": 5e9}`, modelFields, "non-negative integer"},
		{"huge string id", `{"model_id": "99999999999999999999"}`, pricingFields, "non-negative integer"},
		{"bad date", `{"release_date": "March 2024"}`, modelFields, "release_date"},
		{"negative price", `{"price": -1}`, pricingFields, "greater than or equal to 0"},
		{"null valid_from", `{"valid_from": null}`, pricingFields, "valid_from"},
		{"long currency", `{"currency": "EURO"}`, pricingFields, "3-letter"},
		{"non bool", `{"is_public": 1}`, comparisonFields, "boolean"},
		{"bad source type", `{"source_type": "news"}`, webSourceFields, "source_type"},
		{"zero interval", `{"scraping_interval_hours": 0}`, webSourceFields, "greater than 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseUpdates(decodePayload(t, tc.raw), tc.parsers)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseUpdatesNullableNumbers(t *testing.T) {
	updates, err := parseUpdates(decodePayload(t, `{"score": null, "context_window": null}`), fieldParsers{
		"score":          nullableFloat,
		"context_window": nullableNonNegativeInt,
	})
	require.NoError(t, err)
	assert.Nil(t, updates["score"])
	assert.Nil(t, updates["context_window"])

	updates, err = parseUpdates(decodePayload(t, `{"context_window": 128000}`), modelFields)
	require.NoError(t, err)
	assert.Equal(t, 128000, updates["context_window"])
}

func TestParseUpdatesEmptyObject(t *testing.T) {
	updates, err := parseUpdates(decodePayload(t, `{}`), providerFields)
	require.NoError(t, err)
	assert.NotNil(t, updates)
	assert.Empty(t, updates)
}

func TestParseUintFieldBounds(t *testing.T) {
	v, err := parseUintField(float64(4294967295), "context_window")
	require.NoError(t, err)
	assert.Equal(t, uint(4294967295), v)

	v, err = parseUintField(json.Number("4294967295"), "model_id")
	require.NoError(t, err)
	assert.Equal(t, uint(4294967295), v)

	_, err = parseUintField(float64(4294967296), "context_window")
	assert.Error(t, err)
	_, err = parseUintField(json.Number("4294967296"), "model_id")
	assert.Error(t, err)
	_, err = parseUintField(json.Number("-1"), "model_id")
	assert.Error(t, err)
}
