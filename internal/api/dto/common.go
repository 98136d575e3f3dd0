package dto

// Response 统一响应体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageQueryDTO 通用分页查询入参
type PageQueryDTO struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=10"`
}

// PageDTO 通用分页包装
type PageDTO[T any] struct {
	List     []T   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}
