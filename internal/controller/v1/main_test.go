package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"llm_catalog/config"
	"llm_catalog/internal/entity"
	"llm_catalog/internal/extractor"
	"llm_catalog/internal/router"
	"llm_catalog/pkg/db"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	// 设置 Gin 为测试模式
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter 每个测试使用独立的内存数据库
func newTestRouter(t *testing.T, ext extractor.Extractor) *gin.Engine {
	t.Helper()
	conn, err := db.Open(config.DBConfig{Driver: "sqlite", Path: ":memory:"}, logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.EnsureTables(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return router.SetupRouter(conn, ext)
}

// performRequest 执行请求的辅助函数
func performRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, w)["error"]
}

func createProvider(t *testing.T, r http.Handler, name string) entity.Provider {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/providers", jsonBody(t, gin.H{"name": name}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[entity.Provider](t, w)
}

func createModel(t *testing.T, r http.Handler, providerID uint, name string) entity.Model {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/models", jsonBody(t, gin.H{
		"name":        name,
		"provider_id": providerID,
		"model_type":  "text",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[entity.Model](t, w)
}

type fakeExtractor struct {
	result *entity.Extraction
	err    error
}

func (f *fakeExtractor) Extract(_ context.Context, _ entity.ScrapeRequest) (*entity.Extraction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
