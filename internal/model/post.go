package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 文章文档
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug      string             `bson:"slug" json:"slug"`            // 全局唯一，URL 标识
	Title     string             `bson:"title" json:"title"`          // 标题
	Content   string             `bson:"content" json:"content"`      // 正文 HTML
	Excerpt   string             `bson:"excerpt" json:"excerpt"`      // 摘要，由正文提取
	Category  string             `bson:"category" json:"category"`    // 分类
	Language  string             `bson:"language" json:"language"`    // 语言
	Tags      []string           `bson:"tags" json:"tags"`            // 标签集合
	CoverURL  string             `bson:"cover_url" json:"coverUrl"`   // 封面图地址
	Status    string             `bson:"status" json:"status"`        // 见 consts.PostStatus*
	CreatedBy string             `bson:"created_by" json:"createdBy"` // 作者邮箱
	Likes     int64              `bson:"likes" json:"likes"`          // 累计点赞，不会为负
	Views     int64              `bson:"views" json:"views"`          // 累计浏览
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
