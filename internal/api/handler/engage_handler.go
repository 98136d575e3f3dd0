package handler

import (
	"strconv"
	"time"

	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type EngageHandler struct {
	engageSvc service.EngageService
}

func NewEngageHandler(engageSvc service.EngageService) *EngageHandler {
	return &EngageHandler{
		engageSvc: engageSvc,
	}
}

// asOfFrom 计数归档月份的参考时间，默认取当前时间，
// 可用 as_of 查询参数（RFC3339）覆盖以支持补录
func asOfFrom(c *gin.Context) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, service.ErrParamInvalid
	}
	return t, nil
}

func (s *EngageHandler) RecordView(c *gin.Context) {
	asOf, err := asOfFrom(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.engageSvc.RecordView(c.Request.Context(), c.Param("ref"), asOf)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *EngageHandler) RecordLike(c *gin.Context) {
	asOf, err := asOfFrom(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.engageSvc.RecordLike(c.Request.Context(), principalFrom(c).Email, c.Param("ref"), asOf)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *EngageHandler) RecordUnlike(c *gin.Context) {
	asOf, err := asOfFrom(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.engageSvc.RecordUnlike(c.Request.Context(), c.Param("ref"), asOf)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *EngageHandler) GetMonthlyStats(c *gin.Context) {
	months := int64(12)
	if raw := c.Query("months"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			months = v
		}
	}

	stats, err := s.engageSvc.GetMonthlyStats(c.Request.Context(), c.Param("ref"), months)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
