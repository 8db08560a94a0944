package service

import (
	"context"
	"encoding/json"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"llm_catalog/internal/extractor"
	"net/url"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultScrapeTimeout = 60 * time.Second

type ScraperService struct {
	extractor    extractor.Extractor
	webSourceDAO *dao.WebSourceDAO
	scrapeRunDAO *dao.ScrapeRunDAO
	timeout      time.Duration
	now          func() time.Time
}

// NewScraperService ext 为 nil 表示没有配置 API key，此时 ScrapeURL 直接返回 ErrExtractorNotConfigured
func NewScraperService(dbConn *gorm.DB, ext extractor.Extractor, timeout time.Duration) *ScraperService {
	if timeout <= 0 {
		timeout = DefaultScrapeTimeout
	}
	return &ScraperService{
		extractor:    ext,
		webSourceDAO: dao.NewWebSourceDAO(dbConn),
		scrapeRunDAO: dao.NewScrapeRunDAO(dbConn),
		timeout:      timeout,
		now:          time.Now,
	}
}

func validateSourceURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}

// ScrapeURL 调用抽取服务。请求非法或未配置时返回 error；
// 抽取服务本身失败时返回 Success=false 的结果而不是 error。
// 只有抽取成功才登记 WebSource，候选数据不写入 benchmarks / pricing。
func (s *ScraperService) ScrapeURL(ctx context.Context, req entity.ScrapeRequest) (*entity.ScrapeResult, error) {
	if s.extractor == nil {
		return nil, ErrExtractorNotConfigured
	}
	req.URL = strings.TrimSpace(req.URL)
	req.DataType = strings.ToLower(strings.TrimSpace(req.DataType))
	if !entity.IsValidSourceType(req.DataType) {
		return nil, ErrInvalidDataType
	}
	if err := validateSourceURL(req.URL); err != nil {
		return nil, err
	}

	logger := serviceLogger().With("url", req.URL, "data_type", req.DataType)
	started := s.now()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	extraction, err := s.extractor.Extract(callCtx, req)
	cancel()

	var result *entity.ScrapeResult
	if err != nil {
		logger.Warn("scrape failed", "error", err)
		result = &entity.ScrapeResult{Success: false, Error: err.Error()}
	} else {
		scrapedAt := s.now()
		info := &entity.ExtractedInfo{
			URL:          req.URL,
			DataType:     req.DataType,
			ModelName:    req.ModelName,
			ProviderName: req.ProviderName,
			ScrapedAt:    scrapedAt,
		}
		source, regErr := s.webSourceDAO.RegisterScraped(ctx, req.URL, req.DataType, scrapedAt)
		if regErr != nil {
			logger.Error("register web source failed", "error", regErr)
		} else {
			info.WebSourceID = source.ID
		}
		result = &entity.ScrapeResult{Success: true, Data: extraction, ExtractedInfo: info}
	}

	s.recordRun(ctx, req, result, s.now().Sub(started))
	return result, nil
}

func (s *ScraperService) recordRun(ctx context.Context, req entity.ScrapeRequest, result *entity.ScrapeResult, elapsed time.Duration) {
	run := &entity.ScrapeRun{
		URL:       req.URL,
		DataType:  req.DataType,
		Success:   result.Success,
		ElapsedMS: elapsed.Milliseconds(),
	}
	if result.Error != "" {
		msg := result.Error
		run.Error = &msg
	}
	if raw, err := json.Marshal(req); err == nil {
		run.Request = datatypes.JSON(raw)
	}
	if raw, err := json.Marshal(result); err == nil {
		run.Result = datatypes.JSON(raw)
	}
	if err := s.scrapeRunDAO.Save(ctx, run); err != nil {
		serviceLogger().Warn("save scrape run failed", "url", req.URL, "error", err)
	}
}

func (s *ScraperService) GetRecentRuns(ctx context.Context, params entity.QueryParams) (entity.PageResult[entity.ScrapeRun], error) {
	runs, total, err := s.scrapeRunDAO.FindRecent(ctx, params)
	if err != nil {
		return entity.PageResult[entity.ScrapeRun]{}, err
	}
	return entity.PageResult[entity.ScrapeRun]{Total: total, List: runs}, nil
}
