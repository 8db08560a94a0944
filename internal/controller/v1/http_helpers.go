package v1

import (
	"errors"
	"fmt"
	"llm_catalog/config"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"
	"llm_catalog/internal/service"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const TotalCountHeader = "X-Total-Count"

func handlerLogger() *slog.Logger {
	return config.LayerLogger("handler")
}

func parseIDParam(ctx *gin.Context, paramName string) (uint, error) {
	rawID := ctx.Param(paramName)
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s", dao.ErrInvalidID, rawID)
	}
	return uint(id), nil
}

func bindQueryParams(ctx *gin.Context) (entity.QueryParams, bool) {
	var params entity.QueryParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return params, false
	}
	return params, true
}

// writeList 列表接口统一返回 JSON 数组，总数放在 X-Total-Count 响应头
func writeList[T any](ctx *gin.Context, page entity.PageResult[T]) {
	ctx.Header(TotalCountHeader, strconv.FormatInt(page.Total, 10))
	list := page.List
	if list == nil {
		list = []T{}
	}
	ctx.JSON(http.StatusOK, list)
}

func writeDeleted(ctx *gin.Context, kind string) {
	ctx.JSON(http.StatusOK, entity.MessageResponse{Message: kind + " deleted successfully"})
}

func writeHTTPError(ctx *gin.Context, err error) {
	logger := handlerLogger().With(
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
	)

	switch {
	case errors.Is(err, dao.ErrInvalidID), errors.Is(err, dao.ErrNilEntity), errors.Is(err, dao.ErrInvalidField),
		errors.Is(err, dao.ErrInvalidReference), errors.Is(err, dao.ErrAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		logger.Warn("request failed", "status", http.StatusBadRequest, "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.Warn("request failed", "status", http.StatusNotFound, "error", err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExtractorNotConfigured):
		logger.Error("request failed", "status", http.StatusInternalServerError, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "status", http.StatusInternalServerError, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// bindUpdates 读取部分更新的请求体，只保留出现过的字段
func bindUpdates(ctx *gin.Context, parsers fieldParsers) (entity.Updates, bool) {
	var payload map[string]interface{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		badRequest(ctx, err)
		return nil, false
	}
	updates, err := parseUpdates(payload, parsers)
	if err != nil {
		badRequest(ctx, err)
		return nil, false
	}
	return updates, true
}
