package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification 站内通知
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Receiver  string             `bson:"receiver" json:"receiver"` // 接收者邮箱
	Type      string             `bson:"type" json:"type"`         // 见 consts.Event*
	PostID    primitive.ObjectID `bson:"post_id,omitempty" json:"postId"`
	PostSlug  string             `bson:"post_slug,omitempty" json:"postSlug"`
	Content   string             `bson:"content" json:"content"` // 通知文案
	IsRead    bool               `bson:"is_read" json:"isRead"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
