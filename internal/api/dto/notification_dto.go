package dto

import "time"

type NotificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	PostSlug  string    `json:"postSlug,omitempty"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type UnreadCountDTO struct {
	Count int64 `json:"count"`
}
