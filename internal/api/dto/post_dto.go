package dto

import "time"

// PostBaseDTO 创建/编辑文章的入参。slug 缺省时由标题派生。
type PostBaseDTO struct {
	Slug     string   `json:"slug,omitempty"`
	Title    string   `json:"title" binding:"required" validate:"min=1,max=255"`
	Content  string   `json:"content" binding:"required" validate:"min=1"`
	Category string   `json:"category" binding:"required" validate:"min=1,max=64"`
	Language string   `json:"language" binding:"required" validate:"min=2,max=16"`
	Tags     []string `json:"tags" validate:"max=20"`
	CoverURL string   `json:"coverUrl,omitempty"`
}

type PostDTO struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	Language  string    `json:"language"`
	Tags      []string  `json:"tags"`
	CoverURL  string    `json:"coverUrl"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	Likes     int64     `json:"likes"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransitionDTO 状态流转入参
type TransitionDTO struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note,omitempty"`
}

// PostListDTO 列表查询入参
type PostListDTO struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=10"`
}
