package handler

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/api/middleware"
	"Pinwall/internal/pkg/response"
	"Pinwall/internal/service"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead 表单字段与边界占用的额外空间
const multipartOverhead = 1 << 20

type PostHandler struct {
	postSvc        service.PostService
	maxUploadBytes int64
}

func NewPostHandler(postSvc service.PostService, maxUploadBytes int64) *PostHandler {
	return &PostHandler{
		postSvc:        postSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *PostHandler) GetPosts(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	posts, err := s.postSvc.GetPosts(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetMyPosts userId 缺省时使用当前登录用户
func (s *PostHandler) GetMyPosts(c *gin.Context) {
	var q dto.MyPostQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	viewerID := middleware.CurrentUserID(c)
	ownerID := q.UserID
	if ownerID == "" {
		ownerID = viewerID
	}

	posts, err := s.postSvc.GetUserPosts(c.Request.Context(), viewerID, ownerID, q.PageQuery)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetSharedPost(c *gin.Context) {
	post, err := s.postSvc.GetSharedPost(c.Request.Context(), middleware.CurrentUserID(c), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes+multipartOverhead)
	if err := c.Request.ParseMultipartForm(s.maxUploadBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, service.ErrFileTooLarge)
			return
		}
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CreatePostDTO
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}

	image, err := s.readImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), &req, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.postSvc.DeletePost(c.Request.Context(), middleware.CurrentUserID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": postID})
}

// readImage 读取 multipart 中的 image 字段, 大小在读取前后各校验一次
func (s *PostHandler) readImage(c *gin.Context) (*dto.ImageUpload, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, service.ErrImageRequired
		}
		return nil, service.ErrParamInvalid
	}
	if header.Size > s.maxUploadBytes {
		return nil, service.ErrFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, service.ErrFileTooLarge
	}

	return &dto.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
