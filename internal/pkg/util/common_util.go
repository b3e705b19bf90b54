package util

import (
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SplitHashtags 按逗号拆分话题串, 去除首尾空白与空项, 同一帖子内去重并保持首次出现顺序
func SplitHashtags(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	tags := make([]string, 0, len(parts))

	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		if _, exists := seen[tag]; exists {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

// NormalizePage 修正分页参数: limit 非正数取默认值并限制上限, offset 不小于 0
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern 构造子串匹配模式, 搜索词中的通配符按字面量处理
func LikePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// PtrString 空字符串返回 nil
func PtrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}
