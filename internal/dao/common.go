package dao

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"llm_catalog/config"
	"llm_catalog/internal/entity"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDBNotInitialized = errors.New("gorm db is not initialized")
	ErrInvalidID        = errors.New("invalid id")
	ErrNilEntity        = errors.New("entity is nil")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidField     = errors.New("invalid field value")
)

func daoLogger() *slog.Logger {
	return config.LayerLogger("dao")
}

// withContext 安全增加上下文
func withContext(dbConn *gorm.DB, ctx context.Context) (*gorm.DB, error) {
	if dbConn == nil {
		daoLogger().Error("db is nil")
		return nil, ErrDBNotInitialized
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return dbConn.WithContext(ctx), nil
}

// paginate 统一追加排序与分页，id 升序保证重复查询时分页稳定
func paginate(dbConn *gorm.DB, params entity.QueryParams) *gorm.DB {
	return dbConn.Order("id ASC").Offset(params.GetOffset()).Limit(params.GetLimit())
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("%s %d: %w", kind, id, gorm.ErrRecordNotFound)
}

// findByID 读取单行，不存在时返回包装过的 gorm.ErrRecordNotFound
func findByID(tx *gorm.DB, dest interface{}, kind string, id uint) error {
	if id == 0 {
		return ErrInvalidID
	}
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, id)
	}
	if err != nil {
		return fmt.Errorf("find %s %d failed: %w", kind, id, err)
	}
	return nil
}

// listPage 统计总数后执行分页查询
func listPage[T any](query *gorm.DB, params entity.QueryParams, kind string) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s failed: %w", kind, err)
	}

	rows := make([]T, 0)
	if err := paginate(query, params).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("query %s failed: %w", kind, err)
	}
	return rows, total, nil
}

// applyUpdates 只更新 updates 中出现的字段，然后重新读取整行
func applyUpdates(tx *gorm.DB, row interface{}, updates entity.Updates) error {
	if len(updates) == 0 {
		return nil
	}
	if err := tx.Model(row).Updates(map[string]interface{}(updates)).Error; err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return tx.First(row).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsFilter 区分大小写的子串匹配。sqlite 的 LIKE 和 mysql 默认排序规则都忽略大小写，
// 所以按方言分别生成条件；value 中的 % 和 _ 按字面匹配。
func containsFilter(query *gorm.DB, column, value string) *gorm.DB {
	switch query.Dialector.Name() {
	case "sqlite":
		return query.Where("instr("+column+", ?) > 0", value)
	case "mysql":
		return query.Where(column+" LIKE BINARY ?", "%"+likeEscaper.Replace(value)+"%")
	default:
		return query.Where(column+" LIKE ?", "%"+likeEscaper.Replace(value)+"%")
	}
}
