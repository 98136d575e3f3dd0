package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber 简报订阅者
type Subscriber struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"` // 唯一
	UnsubscribeToken string             `bson:"unsubscribe_token" json:"-"`
	SubscribedAt     time.Time          `bson:"subscribed_at" json:"subscribedAt"`
}
