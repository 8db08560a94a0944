package service_test

import (
	"context"
	"encoding/json"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"llm_catalog/internal/extractor"
	"llm_catalog/internal/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	calls  int
	result *entity.Extraction
	err    error
	delay  time.Duration
}

func (f *fakeExtractor) Extract(ctx context.Context, req entity.ScrapeRequest) (*entity.Extraction, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func TestScrapeURLNotConfigured(t *testing.T) {
	conn := newTestDB(t)
	svc := service.NewScraperService(conn, nil, time.Second)

	_, err := svc.ScrapeURL(context.Background(), entity.ScrapeRequest{URL: "https://x.dev", DataType: "pricing"})
	assert.ErrorIs(t, err, service.ErrExtractorNotConfigured)
}

func TestScrapeURLRejectsBadInput(t *testing.T) {
	conn := newTestDB(t)
	ext := &fakeExtractor{result: &entity.Extraction{}}
	svc := service.NewScraperService(conn, ext, time.Second)

	_, err := svc.ScrapeURL(context.Background(), entity.ScrapeRequest{URL: "https://x.dev", DataType: "news"})
	assert.ErrorIs(t, err, service.ErrInvalidDataType)
	assert.ErrorIs(t, err, dao.ErrInvalidField)

	_, err = svc.ScrapeURL(context.Background(), entity.ScrapeRequest{URL: "ftp://x.dev/file", DataType: "both"})
	assert.ErrorIs(t, err, service.ErrInvalidURL)

	assert.Zero(t, ext.calls)
}

func TestScrapeURLSuccessRegistersSource(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	ext := &fakeExtractor{result: &entity.Extraction{
		RawResponse: `{"pricing_data":[]}`,
		PricingData: []entity.PricingCandidate{{ModelName: "GPT-4o", Price: 2.5}},
	}}
	svc := service.NewScraperService(conn, ext, time.Second)

	modelName := "GPT-4o"
	result, err := svc.ScrapeURL(ctx, entity.ScrapeRequest{URL: "https://openai.com/api/pricing", DataType: "Pricing", ModelName: &modelName})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.ExtractedInfo)
	assert.Equal(t, "pricing", result.ExtractedInfo.DataType)
	assert.NotZero(t, result.ExtractedInfo.WebSourceID)
	assert.Len(t, result.Data.PricingData, 1)

	// 再抓一次只刷新 last_scraped
	_, err = svc.ScrapeURL(ctx, entity.ScrapeRequest{URL: "https://openai.com/api/pricing", DataType: "pricing"})
	require.NoError(t, err)

	sources, _, err := dao.NewWebSourceDAO(conn).FindAll(ctx, entity.QueryParams{})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.NotNil(t, sources[0].LastScraped)

	// 候选数据不落库
	var pricingRows int64
	require.NoError(t, conn.Model(&entity.Pricing{}).Count(&pricingRows).Error)
	assert.Zero(t, pricingRows)

	runs, err := svc.GetRecentRuns(ctx, entity.QueryParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, runs.Total)
	assert.True(t, runs.List[0].Success)

	var recorded entity.ScrapeResult
	require.NoError(t, json.Unmarshal(runs.List[1].Result, &recorded))
	assert.True(t, recorded.Success)
}

func TestScrapeURLFailureIsStructured(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	ext := &fakeExtractor{err: extractorError()}
	svc := service.NewScraperService(conn, ext, time.Second)

	result, err := svc.ScrapeURL(ctx, entity.ScrapeRequest{URL: "https://example.com", DataType: "both"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "extraction service failed")
	assert.Nil(t, result.ExtractedInfo)

	var sources int64
	require.NoError(t, conn.Model(&entity.WebSource{}).Count(&sources).Error)
	assert.Zero(t, sources)

	runs, err := svc.GetRecentRuns(ctx, entity.QueryParams{})
	require.NoError(t, err)
	require.Len(t, runs.List, 1)
	assert.False(t, runs.List[0].Success)
	require.NotNil(t, runs.List[0].Error)
}

func TestScrapeURLTimeout(t *testing.T) {
	conn := newTestDB(t)
	ext := &fakeExtractor{delay: time.Second, result: &entity.Extraction{}}
	svc := service.NewScraperService(conn, ext, 20*time.Millisecond)

	result, err := svc.ScrapeURL(context.Background(), entity.ScrapeRequest{URL: "https://slow.example.com", DataType: "benchmark"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "deadline exceeded")
}

func extractorError() error {
	return &wrappedExternal{}
}

type wrappedExternal struct{}

func (*wrappedExternal) Error() string { return "extraction service failed: upstream 503" }
func (*wrappedExternal) Unwrap() error { return extractor.ErrExternalService }
