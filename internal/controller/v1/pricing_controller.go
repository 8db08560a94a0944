package v1

import (
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type PricingController struct {
	pricingService *service.PricingService
}

func NewPricingController(pricingService *service.PricingService) *PricingController {
	return &PricingController{pricingService: pricingService}
}

// CreatePricing handles POST /api/pricing
func (c *PricingController) CreatePricing(ctx *gin.Context) {
	var pricing entity.Pricing
	if err := ctx.ShouldBindJSON(&pricing); err != nil {
		badRequest(ctx, err)
		return
	}
	pricing.ID = 0
	pricing.Currency = strings.ToUpper(strings.TrimSpace(pricing.Currency))

	if err := c.pricingService.CreatePricing(ctx.Request.Context(), &pricing); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pricing)
}

// GetAllPricing handles GET /api/pricing
func (c *PricingController) GetAllPricing(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	result, err := c.pricingService.GetAllPricing(ctx.Request.Context(), params)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeList(ctx, result)
}

// GetCurrentPricing handles GET /api/pricing/current?model_id=&date=
func (c *PricingController) GetCurrentPricing(ctx *gin.Context) {
	params, ok := bindQueryParams(ctx)
	if !ok {
		return
	}

	var on *entity.Date
	if raw := strings.TrimSpace(ctx.Query("date")); raw != "" {
		parsed, err := entity.ParseDate(raw)
		if err != nil {
			badRequest(ctx, err)
			return
		}
		on = &parsed
	}

	pricing, err := c.pricingService.CurrentPricing(ctx.Request.Context(), params.ModelID, on)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pricing)
}

// GetPricing handles GET /api/pricing/:id
func (c *PricingController) GetPricing(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	pricing, err := c.pricingService.GetPricing(ctx.Request.Context(), id)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pricing)
}

// UpdatePricing handles PUT /api/pricing/:id
func (c *PricingController) UpdatePricing(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	updates, ok := bindUpdates(ctx, pricingFields)
	if !ok {
		return
	}

	pricing, err := c.pricingService.UpdatePricing(ctx.Request.Context(), id, updates)
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pricing)
}

// DeletePricing handles DELETE /api/pricing/:id
func (c *PricingController) DeletePricing(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		writeHTTPError(ctx, err)
		return
	}

	if err := c.pricingService.DeletePricing(ctx.Request.Context(), id); err != nil {
		writeHTTPError(ctx, err)
		return
	}
	writeDeleted(ctx, "Pricing")
}
