package v1

import (
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type ScraperController struct {
	scraperService   *service.ScraperService
	webSourceService *service.WebSourceService
}

func NewScraperController(scraperService *service.ScraperService, webSourceService *service.WebSourceService) *ScraperController {
	return &ScraperController{
		scraperService:   scraperService,
		webSourceService: webSourceService,
	}
}

// ScrapeURL handles POST /api/scraper/scrape-url
// 抽取服务失败时仍返回 200，body 中 success=false
func (c *ScraperController) ScrapeURL(ctx *gin.Context) {
	var req entity.ScrapeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	result, err := c.scraperService.ScrapeURL(ctx.Request.Context(), req)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetScrapeRuns handles GET /api/scraper/runs
func (c *ScraperController) GetScrapeRuns(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	result, err := c.scraperService.GetRecentRuns(ctx.Request.Context(), params)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeList(ctx, result)
}

// GetWebSources handles GET /api/scraper/web-sources
func (c *ScraperController) GetWebSources(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	result, err := c.webSourceService.GetAllWebSources(ctx.Request.Context(), params)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeList(ctx, result)
}

// GetWebSource handles GET /api/scraper/web-sources/:id
func (c *ScraperController) GetWebSource(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	source, err := c.webSourceService.GetWebSource(ctx.Request.Context(), id)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, source)
}

// CreateWebSource handles POST /api/scraper/web-sources
// 同时支持 JSON 请求体和 ?url=&source_type= 查询参数
func (c *ScraperController) CreateWebSource(ctx *gin.Context) {
	var source entity.WebSource
	if rawURL, ok := ctx.GetQuery("url"); ok {
		source.URL = strings.TrimSpace(rawURL)
		source.SourceType = strings.TrimSpace(ctx.Query("source_type"))
		if raw := ctx.Query("scraping_interval_hours"); raw != "" {
			hours, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(ctx, err)
				return
			}
			source.ScrapingIntervalHours = hours
		}
	} else if err := ctx.ShouldBindJSON(&source); err != nil {
		badRequest(ctx, err)
		return
	}
	source.ID = 0
	source.LastScraped = nil

	if err := c.webSourceService.CreateWebSource(ctx.Request.Context(), &source); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, source)
}

// UpdateWebSource handles PUT /api/scraper/web-sources/:id
func (c *ScraperController) UpdateWebSource(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	updates, ok := bindUpdates(ctx, webSourceFields)
	if !ok {
		return
	}

	source, err := c.webSourceService.UpdateWebSource(ctx.Request.Context(), id, updates)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, source)
}

// DeleteWebSource handles DELETE /api/scraper/web-sources/:id
func (c *ScraperController) DeleteWebSource(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	if err := c.webSourceService.DeleteWebSource(ctx.Request.Context(), id); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeDeleted(ctx, "Web source")
}
