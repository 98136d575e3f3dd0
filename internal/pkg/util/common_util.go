package util

import (
	"time"

	"Inkwell/internal/pkg/consts"
)

// MonthKey 由给定时间得到 "YYYY-MM" 月度聚合键，统一按 UTC 归档
func MonthKey(asOf time.Time) string {
	return asOf.UTC().Format(consts.MonthLayout)
}

// NormalizeTags 去重并剔除空标签，保持原有顺序
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
