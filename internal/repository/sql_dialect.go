package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// jsonTextExpr 构建 JSON 字段文本提取表达式，兼容 sqlite 与 postgres。
func jsonTextExpr(db *gorm.DB, column, key string) string {
	return jsonTextExprByDialect(dbDialectName(db), column, key)
}

func jsonTextExprByDialect(dialect, column, key string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		// postgres 统一转 jsonb 后再使用 ->> 提取文本
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, key)
	default:
		return fmt.Sprintf("json_extract(%s, '$.%s')", column, key)
	}
}

// jsonColumnKey JSON 列搜索目标（列名 + 键名）
type jsonColumnKey struct {
	Column string
	Key    string
}

// buildJSONLikeCondition 构建普通列 + JSON 列键的 LIKE 条件，并返回参数数量。
func buildJSONLikeCondition(db *gorm.DB, plainColumns []string, jsonKeys []jsonColumnKey) (string, int) {
	return buildJSONLikeConditionByDialect(dbDialectName(db), plainColumns, jsonKeys)
}

func buildJSONLikeConditionByDialect(dialect string, plainColumns []string, jsonKeys []jsonColumnKey) (string, int) {
	parts := make([]string, 0, len(plainColumns)+len(jsonKeys))
	argCount := 0
	operator := likeOperatorByDialect(dialect)

	for _, column := range plainColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
		argCount++
	}

	for _, target := range jsonKeys {
		column := strings.TrimSpace(target.Column)
		key := strings.TrimSpace(target.Key)
		if column == "" || key == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", jsonTextExprByDialect(dialect, column, key), operator))
		argCount++
	}

	return strings.Join(parts, " OR "), argCount
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
