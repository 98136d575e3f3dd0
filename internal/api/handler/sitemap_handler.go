package handler

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type SitemapHandler struct {
	sitemapSvc service.SitemapService
}

func NewSitemapHandler(sitemapSvc service.SitemapService) *SitemapHandler {
	return &SitemapHandler{
		sitemapSvc: sitemapSvc,
	}
}

func (s *SitemapHandler) GetEntries(c *gin.Context) {
	entries, err := s.sitemapSvc.ListEntries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}
