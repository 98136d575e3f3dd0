package consts

// 文章状态枚举（空串为隐式默认值，等价于草稿）
const (
	PostStatusDefault       = ""
	PostStatusDraft         = "draft"
	PostStatusPendingReview = "pending_review"
	PostStatusApproved      = "approved"
	PostStatusRejected      = "rejected"
	PostStatusPrivate       = "private"
	PostStatusArchived      = "archived"
	PostStatusDeleted       = "deleted"
)

// 用户角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// 领域事件类型
const (
	EventPostLiked    = "post.liked"
	EventPostApproved = "post.approved"
	EventPostRejected = "post.rejected"
)

// MonthLayout 月度聚合键格式 "YYYY-MM"
const MonthLayout = "2006-01"
