package extractor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClientGenerate(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		body, _ := io.ReadAll(r.Body)
		var req geminiRequest
		_ = json.Unmarshal(body, &req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"pricing_data\":"},{"text":"[]}"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("secret", server.URL, "gemini-test", time.Second, 0)
	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, `{"pricing_data":[]}`, text)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "hello", gotPrompt)
}

func TestGeminiClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"api error", http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`, "API key not valid"},
		{"plain error", http.StatusBadGateway, `upstream down`, "status 502"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "empty response"},
		{"bad json", http.StatusOK, `<html>`, "unmarshaling response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewGeminiClient("k", server.URL, "", time.Second, 0).Generate(context.Background(), "p")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExternalService)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGeminiClientTimeoutDoesNotLeakKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	_, err := NewGeminiClient("super-secret", server.URL, "", 50*time.Millisecond, 0).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExternalService)
	assert.NotContains(t, err.Error(), "super-secret")
}
