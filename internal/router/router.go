package router

import (
	"llm_catalog/config"
	v1 "llm_catalog/internal/controller/v1"
	"llm_catalog/internal/extractor"
	"llm_catalog/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 组装所有 /api 路由。ext 为 nil 时抓取接口返回 500
func SetupRouter(dbConn *gorm.DB, ext extractor.Extractor) *gin.Engine {
	allowedOrigins := config.DefaultConfig().Server.AllowedOrigins
	scrapeTimeout := service.DefaultScrapeTimeout
	if cfg := config.AppConfig; cfg != nil {
		allowedOrigins = cfg.Server.AllowedOrigins
		if cfg.Gemini.TimeoutSeconds > 0 {
			scrapeTimeout = time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
		}
	}

	providerController := v1.NewProviderController(service.NewProviderService(dbConn))
	modelController := v1.NewModelController(service.NewModelService(dbConn))
	benchmarkController := v1.NewBenchmarkController(service.NewBenchmarkService(dbConn))
	pricingController := v1.NewPricingController(service.NewPricingService(dbConn))
	comparisonController := v1.NewComparisonController(service.NewComparisonService(dbConn))
	scraperController := v1.NewScraperController(
		service.NewScraperService(dbConn, ext, scrapeTimeout),
		service.NewWebSourceService(dbConn),
	)

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(), cors(allowedOrigins))

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "LLM Catalog API", "version": "1.0.0"})
	})
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		providers := api.Group("/providers")
		{
			providers.POST("", providerController.CreateProvider)
			providers.GET("", providerController.GetAllProviders)
			providers.GET("/:id", providerController.GetProvider)
			providers.PUT("/:id", providerController.UpdateProvider)
			providers.PATCH("/:id", providerController.UpdateProvider)
			providers.DELETE("/:id", providerController.DeleteProvider)
		}

		models := api.Group("/models")
		{
			models.POST("", modelController.CreateModel)
			models.GET("", modelController.GetAllModels)
			models.GET("/:id", modelController.GetModel)
			models.PUT("/:id", modelController.UpdateModel)
			models.PATCH("/:id", modelController.UpdateModel)
			models.DELETE("/:id", modelController.DeleteModel)
		}

		benchmarks := api.Group("/benchmarks")
		{
			benchmarks.POST("", benchmarkController.CreateBenchmark)
			benchmarks.GET("", benchmarkController.GetAllBenchmarks)
			benchmarks.GET("/:id", benchmarkController.GetBenchmark)
			benchmarks.PUT("/:id", benchmarkController.UpdateBenchmark)
			benchmarks.PATCH("/:id", benchmarkController.UpdateBenchmark)
			benchmarks.DELETE("/:id", benchmarkController.DeleteBenchmark)
		}

		pricing := api.Group("/pricing")
		{
			pricing.POST("", pricingController.CreatePricing)
			pricing.GET("", pricingController.GetAllPricing)
			pricing.GET("/current", pricingController.GetCurrentPricing)
			pricing.GET("/:id", pricingController.GetPricing)
			pricing.PUT("/:id", pricingController.UpdatePricing)
			pricing.PATCH("/:id", pricingController.UpdatePricing)
			pricing.DELETE("/:id", pricingController.DeletePricing)
		}

		comparisons := api.Group("/comparisons")
		{
			comparisons.POST("", comparisonController.CreateComparison)
			comparisons.GET("", comparisonController.GetAllComparisons)
			comparisons.GET("/:id", comparisonController.GetComparison)
			comparisons.PUT("/:id", comparisonController.UpdateComparison)
			comparisons.PATCH("/:id", comparisonController.UpdateComparison)
			comparisons.DELETE("/:id", comparisonController.DeleteComparison)
			comparisons.POST("/:id/items", comparisonController.AddItem)
			comparisons.DELETE("/:id/items/:item_id", comparisonController.RemoveItem)
		}

		scraper := api.Group("/scraper")
		{
			scraper.POST("/scrape-url", scraperController.ScrapeURL)
			scraper.GET("/runs", scraperController.GetScrapeRuns)
			scraper.GET("/web-sources", scraperController.GetWebSources)
			scraper.POST("/web-sources", scraperController.CreateWebSource)
			scraper.GET("/web-sources/:id", scraperController.GetWebSource)
			scraper.PUT("/web-sources/:id", scraperController.UpdateWebSource)
			scraper.PATCH("/web-sources/:id", scraperController.UpdateWebSource)
			scraper.DELETE("/web-sources/:id", scraperController.DeleteWebSource)
		}
	}

	return r
}
