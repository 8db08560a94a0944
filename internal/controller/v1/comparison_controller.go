package v1

import (
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ComparisonController struct {
	comparisonService *service.ComparisonService
}

func NewComparisonController(comparisonService *service.ComparisonService) *ComparisonController {
	return &ComparisonController{comparisonService: comparisonService}
}

// CreateComparison handles POST /api/comparisons
func (c *ComparisonController) CreateComparison(ctx *gin.Context) {
	var req entity.ComparisonTableCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	table, err := c.comparisonService.CreateComparison(ctx.Request.Context(), req)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, table)
}

// GetAllComparisons handles GET /api/comparisons
func (c *ComparisonController) GetAllComparisons(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	result, err := c.comparisonService.GetAllComparisons(ctx.Request.Context(), params)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeList(ctx, result)
}

// GetComparison handles GET /api/comparisons/:id
func (c *ComparisonController) GetComparison(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	table, err := c.comparisonService.GetComparison(ctx.Request.Context(), id)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, table)
}

// UpdateComparison handles PUT /api/comparisons/:id
func (c *ComparisonController) UpdateComparison(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	updates, ok := bindUpdates(ctx, comparisonFields)
	if !ok {
		return
	}

	table, err := c.comparisonService.UpdateComparison(ctx.Request.Context(), id, updates)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, table)
}

// DeleteComparison handles DELETE /api/comparisons/:id
func (c *ComparisonController) DeleteComparison(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	if err := c.comparisonService.DeleteComparison(ctx.Request.Context(), id); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeDeleted(ctx, "Comparison table")
}

// AddItem handles POST /api/comparisons/:id/items
func (c *ComparisonController) AddItem(ctx *gin.Context) {
	tableID, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	var req entity.ComparisonItemCreate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.comparisonService.AddItem(ctx.Request.Context(), tableID, req)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// RemoveItem handles DELETE /api/comparisons/:id/items/:item_id
func (c *ComparisonController) RemoveItem(ctx *gin.Context) {
	tableID, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	itemID, err := parseIDParam(ctx, "item_id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	if err := c.comparisonService.RemoveItem(ctx.Request.Context(), tableID, itemID); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeDeleted(ctx, "Comparison item")
}
