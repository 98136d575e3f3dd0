package util

import (
	"regexp"
	"strings"
)

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenCollapse = regexp.MustCompile(`-{2,}`)
)

// DeriveSlug 根据标题生成 slug：小写、连字符分词、剔除非字母数字字符
func DeriveSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = hyphenCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidateSlug 校验显式提供的 slug 是否符合允许的字符集
func ValidateSlug(slug string) bool {
	if slug == "" || len(slug) > 200 {
		return false
	}
	return slugPattern.MatchString(slug)
}
