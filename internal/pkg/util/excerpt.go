package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractExcerpt 从正文 HTML 中提取纯文本摘要，用于列表页和简报。
// 解析失败时退回原始内容截断。
func ExtractExcerpt(htmlContent string, maxRunes int) string {
	text := htmlContent

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err == nil {
		doc.Find("script,style").Remove()
		text = doc.Text()
	}

	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}
