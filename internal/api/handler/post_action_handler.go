package handler

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/api/middleware"
	"Pinwall/internal/pkg/response"
	"Pinwall/internal/service"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postActionSvc service.PostActionService
}

func NewPostActionHandler(postActionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		postActionSvc: postActionSvc,
	}
}

func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.postActionSvc.ToggleLike(c.Request.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SharePost 请求体可以为空
func (s *PostActionHandler) SharePost(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ShareReq
	if err = c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err)
		return
	}

	res, err := s.postActionSvc.SharePost(c.Request.Context(), middleware.CurrentUserID(c), postID, &req, middleware.BaseURL(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
