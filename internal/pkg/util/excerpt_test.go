package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExcerpt(t *testing.T) {
	html := "<h1>标题</h1><p>first   paragraph</p><script>alert(1)</script>"
	got := ExtractExcerpt(html, 200)
	assert.Equal(t, "标题first paragraph", got)
	assert.NotContains(t, got, "alert")
}

func TestExtractExcerptTruncate(t *testing.T) {
	long := "<p>" + strings.Repeat("字", 300) + "</p>"
	got := ExtractExcerpt(long, 10)
	assert.Equal(t, strings.Repeat("字", 10)+"...", got)
}

func TestExtractExcerptPlainText(t *testing.T) {
	assert.Equal(t, "plain text", ExtractExcerpt("plain   text", 50))
}
