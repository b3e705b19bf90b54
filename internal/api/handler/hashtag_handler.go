package handler

import (
	"Pinwall/internal/pkg/response"
	"Pinwall/internal/service"

	"github.com/gin-gonic/gin"
)

type HashtagHandler struct {
	hashtagSvc service.HashtagService
}

func NewHashtagHandler(hashtagSvc service.HashtagService) *HashtagHandler {
	return &HashtagHandler{hashtagSvc: hashtagSvc}
}

func (s *HashtagHandler) GetTrending(c *gin.Context) {
	var q struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	tags, err := s.hashtagSvc.GetTrending(c.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}
