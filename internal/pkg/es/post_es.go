package es

import (
	"time"
)

// PostES 搜索索引中的文章文档。只有 approved 状态的文章会被写入索引，
// 因此查询侧无需再做状态过滤。
type PostES struct {
	ID        string    `json:"id"` // Mongo ObjectID 十六进制
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Tags      []string  `json:"tags"`
	Category  string    `json:"category"`
	Language  string    `json:"language"`
	Author    string    `json:"author"` // 作者邮箱
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
