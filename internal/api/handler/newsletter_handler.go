package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletterSvc service.NewsletterService
}

func NewNewsletterHandler(newsletterSvc service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterSvc: newsletterSvc,
	}
}

func (s *NewsletterHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	created, err := s.newsletterSvc.Subscribe(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !created {
		response.SuccessMsg(c, "该邮箱已订阅", nil)
		return
	}
	response.Success(c, nil)
}

func (s *NewsletterHandler) Unsubscribe(c *gin.Context) {
	if err := s.newsletterSvc.Unsubscribe(c.Request.Context(), c.Query("token")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// TriggerDigest 管理员手动触发简报发送
func (s *NewsletterHandler) TriggerDigest(c *gin.Context) {
	posts, recipients, err := s.newsletterSvc.SendDigest(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"posts":      posts,
		"recipients": recipients,
	})
}
