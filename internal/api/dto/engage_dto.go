package dto

// EngageResultDTO 互动操作后的最新计数
type EngageResultDTO struct {
	Likes int64 `json:"likes"`
	Views int64 `json:"views"`
}

// MonthlyStatDTO 单月聚合
type MonthlyStatDTO struct {
	Month string `json:"month"`
	Views int64  `json:"views"`
	Likes int64  `json:"likes"`
}
