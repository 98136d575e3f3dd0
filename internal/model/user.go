package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户文档。社交账号登录的用户没有密码哈希。
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"` // 全局唯一
	Username         *string            `bson:"username,omitempty" json:"username,omitempty"`
	Password         *string            `bson:"password,omitempty" json:"-"` // bcrypt 哈希
	Roles            []string           `bson:"roles" json:"roles"`
	EmailVerified    bool               `bson:"email_verified" json:"emailVerified"`
	VerifyToken      string             `bson:"verify_token,omitempty" json:"-"`
	ResetToken       string             `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry time.Time          `bson:"reset_token_expiry,omitempty" json:"-"`
	IsBanned         bool               `bson:"is_banned" json:"isBanned"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
