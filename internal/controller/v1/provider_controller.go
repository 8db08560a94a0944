package v1

import (
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProviderController struct {
	providerService *service.ProviderService
}

func NewProviderController(providerService *service.ProviderService) *ProviderController {
	return &ProviderController{providerService: providerService}
}

// CreateProvider handles POST /api/providers
func (c *ProviderController) CreateProvider(ctx *gin.Context) {
	var provider entity.Provider
	if err := ctx.ShouldBindJSON(&provider); err != nil {
		badRequest(ctx, err)
		return
	}
	provider.ID = 0

	if err := c.providerService.CreateProvider(ctx.Request.Context(), &provider); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, provider)
}

// GetAllProviders handles GET /api/providers
func (c *ProviderController) GetAllProviders(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	result, err := c.providerService.GetAllProviders(ctx.Request.Context(), params)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeList(ctx, result)
}

// GetProvider handles GET /api/providers/:id
func (c *ProviderController) GetProvider(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	provider, err := c.providerService.GetProvider(ctx.Request.Context(), id)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, provider)
}

// UpdateProvider handles PUT /api/providers/:id
func (c *ProviderController) UpdateProvider(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	updates, ok := bindUpdates(ctx, providerFields)
	if !ok {
		return
	}

	provider, err := c.providerService.UpdateProvider(ctx.Request.Context(), id, updates)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, provider)
}

// DeleteProvider handles DELETE /api/providers/:id
func (c *ProviderController) DeleteProvider(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	if err := c.providerService.DeleteProvider(ctx.Request.Context(), id); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeDeleted(ctx, "Provider")
}
