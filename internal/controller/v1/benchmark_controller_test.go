package v1_test

import (
	"fmt"
	"llm_catalog/internal/entity"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmarkAPI(t *testing.T) {
	r := newTestRouter(t, nil)
	provider := createProvider(t, r, "Anthropic")
	model := createModel(t, r, provider.ID, "Claude 3 Opus")
	other := createModel(t, r, provider.ID, "Claude 3 Haiku")

	var benchmark entity.Benchmark

	t.Run("Create Benchmark", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/benchmarks", jsonBody(t, gin.H{
			"model_id": model.ID, "benchmark_name": "MMLU", "score": 86.8, "unit": "accuracy", "test_date": "2024-03-04",
		}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		benchmark = decodeBody[entity.Benchmark](t, w)
		require.NotNil(t, benchmark.Score)
		assert.InDelta(t, 86.8, *benchmark.Score, 1e-9)

		w = performRequest(r, http.MethodPost, "/api/benchmarks", jsonBody(t, gin.H{
			"model_id": other.ID, "benchmark_name": "HumanEval", "score": 75.9,
		}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("Create For Missing Model", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/benchmarks", jsonBody(t, gin.H{"model_id": 9999, "benchmark_name": "MMLU"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Filter Benchmarks", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/benchmarks?benchmark_name=Eval", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decodeBody[[]entity.Benchmark](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, "HumanEval", list[0].BenchmarkName)

		w = performRequest(r, http.MethodGet, fmt.Sprintf("/api/benchmarks?model_id=%d", model.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	})

	t.Run("Update Benchmark", func(t *testing.T) {
		path := fmt.Sprintf("/api/benchmarks/%d", benchmark.ID)

		w := performRequest(r, http.MethodPut, path, jsonBody(t, gin.H{"score": nil, "notes": "re-run pending"}))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeBody[entity.Benchmark](t, w)
		assert.Nil(t, resp.Score)
		require.NotNil(t, resp.Notes)
		assert.Equal(t, "MMLU", resp.BenchmarkName)

		w = performRequest(r, http.MethodPut, path, jsonBody(t, gin.H{"model_id": 9999}))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = performRequest(r, http.MethodPut, path, jsonBody(t, gin.H{"score": "high"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete Benchmark", func(t *testing.T) {
		path := fmt.Sprintf("/api/benchmarks/%d", benchmark.ID)
		w := performRequest(r, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Benchmark deleted successfully", decodeBody[entity.MessageResponse](t, w).Message)

		w = performRequest(r, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
