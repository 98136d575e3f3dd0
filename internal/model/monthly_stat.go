package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonthlyStat 按 (post_id, month) 唯一的月度聚合。
// 首次事件到达时懒创建，之后只做原子自增，永不删除。
type MonthlyStat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"postId"`
	Month     string             `bson:"month" json:"month"` // "YYYY-MM"
	Views     int64              `bson:"views" json:"views"`
	Likes     int64              `bson:"likes" json:"likes"` // 报表口径，并发取消点赞时可为负
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
