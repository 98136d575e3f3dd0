package events

import (
	"time"
)

// Event 领域事件，由服务层在状态变更/互动发生后发出。
// 消费侧据此生成站内通知并触发 Web Push。
type Event struct {
	Type       string    `json:"type"`            // 见 consts.Event*
	PostID     string    `json:"post_id"`         // ObjectID 十六进制
	PostSlug   string    `json:"post_slug"`
	PostTitle  string    `json:"post_title"`
	Author     string    `json:"author"`          // 文章作者邮箱，即通知接收者
	Actor      string    `json:"actor,omitempty"` // 动作发起者，匿名浏览时为空
	Note       string    `json:"note,omitempty"`  // 附言，如驳回原因
	OccurredAt time.Time `json:"occurred_at"`
}
