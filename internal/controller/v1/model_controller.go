package v1

import (
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ModelController struct {
	modelService *service.ModelService
}

func NewModelController(modelService *service.ModelService) *ModelController {
	return &ModelController{modelService: modelService}
}

// CreateModel handles POST /api/models
func (c *ModelController) CreateModel(ctx *gin.Context) {
	var model entity.Model
	if err := ctx.ShouldBindJSON(&model); err != nil {
		badRequest(ctx, err)
		return
	}
	model.ID = 0

	if err := c.modelService.CreateModel(ctx.Request.Context(), &model); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, model)
}

// GetAllModels handles GET /api/models
func (c *ModelController) GetAllModels(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	result, err := c.modelService.GetAllModels(ctx.Request.Context(), params)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeList(ctx, result)
}

// GetModel handles GET /api/models/:id
func (c *ModelController) GetModel(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	model, err := c.modelService.GetModel(ctx.Request.Context(), id)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, model)
}

// UpdateModel handles PUT /api/models/:id
func (c *ModelController) UpdateModel(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	updates, ok := bindUpdates(ctx, modelFields)
	if !ok {
		return
	}

	model, err := c.modelService.UpdateModel(ctx.Request.Context(), id, updates)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, model)
}

// DeleteModel handles DELETE /api/models/:id
func (c *ModelController) DeleteModel(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	if err := c.modelService.DeleteModel(ctx.Request.Context(), id); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeDeleted(ctx, "Model")
}
