package dto

import "time"

// SitemapEntryDTO 站点地图条目，只包含 approved 状态的文章
type SitemapEntryDTO struct {
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updatedAt"`
}
