package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", MonthKey(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)))

	// 非 UTC 时间按 UTC 归档，东八区的月初前夜归入上一个月
	cst := time.FixedZone("CST", 8*3600)
	assert.Equal(t, "2025-02", MonthKey(time.Date(2025, 3, 1, 4, 0, 0, 0, cst)))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, NormalizeTags([]string{"go", "", "web", "go"}))
	assert.Empty(t, NormalizeTags(nil))
	assert.Empty(t, NormalizeTags([]string{"", ""}))
}
