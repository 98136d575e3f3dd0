package handler

import (
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

// principalFrom 从鉴权中间件注入的上下文里还原会话身份。
// 可选鉴权路由上未登录时各字段为零值。
func principalFrom(c *gin.Context) service.Principal {
	return service.Principal{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("email"),
		Roles:  c.GetStringSlice("roles"),
	}
}
