package v1

import (
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BenchmarkController struct {
	benchmarkService *service.BenchmarkService
}

func NewBenchmarkController(benchmarkService *service.BenchmarkService) *BenchmarkController {
	return &BenchmarkController{benchmarkService: benchmarkService}
}

// CreateBenchmark handles POST /api/benchmarks
func (c *BenchmarkController) CreateBenchmark(ctx *gin.Context) {
	var benchmark entity.Benchmark
	if err := ctx.ShouldBindJSON(&benchmark); err != nil {
		badRequest(ctx, err)
		return
	}
	benchmark.ID = 0

	if err := c.benchmarkService.CreateBenchmark(ctx.Request.Context(), &benchmark); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, benchmark)
}

// GetAllBenchmarks handles GET /api/benchmarks
func (c *BenchmarkController) GetAllBenchmarks(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	result, err := c.benchmarkService.GetAllBenchmarks(ctx.Request.Context(), params)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeList(ctx, result)
}

// GetBenchmark handles GET /api/benchmarks/:id
func (c *BenchmarkController) GetBenchmark(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	benchmark, err := c.benchmarkService.GetBenchmark(ctx.Request.Context(), id)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, benchmark)
}

// UpdateBenchmark handles PUT /api/benchmarks/:id
func (c *BenchmarkController) UpdateBenchmark(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	updates, ok := bindUpdates(ctx, benchmarkFields)
	if !ok {
		return
	}

	benchmark, err := c.benchmarkService.UpdateBenchmark(ctx.Request.Context(), id, updates)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, benchmark)
}

// DeleteBenchmark handles DELETE /api/benchmarks/:id
func (c *BenchmarkController) DeleteBenchmark(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	if err := c.benchmarkService.DeleteBenchmark(ctx.Request.Context(), id); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeDeleted(ctx, "Benchmark")
}
