package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// confirmMutation 管理员替他人操作时返回可区分的确认文案，
// 操作者身份不落盘
func confirmMutation(c *gin.Context, principal service.Principal, owner string, data interface{}) {
	if principal.IsAdmin() && principal.Email != owner {
		response.SuccessMsg(c, "操作成功（管理员）", data)
		return
	}
	response.Success(c, data)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), principalFrom(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), principalFrom(c), c.Param("ref"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	var req dto.PostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	principal := principalFrom(c)
	post, err := s.postSvc.UpdatePost(c.Request.Context(), principal, c.Param("ref"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	confirmMutation(c, principal, post.CreatedBy, post)
}

func (s *PostHandler) TransitionPost(c *gin.Context) {
	var req dto.TransitionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	principal := principalFrom(c)
	post, err := s.postSvc.TransitionPost(c.Request.Context(), principal, c.Param("ref"), req.Status, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	confirmMutation(c, principal, post.CreatedBy, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	principal := principalFrom(c)
	if err := s.postSvc.DeletePost(c.Request.Context(), principal, c.Param("ref")); err != nil {
		response.Error(c, err)
		return
	}
	if principal.IsAdmin() {
		response.SuccessMsg(c, "操作成功（管理员）", nil)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) ListPublicPosts(c *gin.Context) {
	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.postSvc.ListPublicPosts(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) ListAuthorPosts(c *gin.Context) {
	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.postSvc.ListAuthorPosts(c.Request.Context(), principalFrom(c), c.Param("author"), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// ListOwnPosts 当前登录用户的全部文章
func (s *PostHandler) ListOwnPosts(c *gin.Context) {
	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	principal := principalFrom(c)
	page, err := s.postSvc.ListAuthorPosts(c.Request.Context(), principal, principal.Email, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) ListReviewQueue(c *gin.Context) {
	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.postSvc.ListReviewQueue(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) SearchPosts(c *gin.Context) {
	var req dto.PostListDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.SearchPosts(c.Request.Context(), req.Keyword, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) LatestPosts(c *gin.Context) {
	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.LatestPosts(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
