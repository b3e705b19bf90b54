package handler

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/pkg/consts"
	"Pinwall/internal/service"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser 模拟鉴权中间件注入当前用户
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(consts.UserIDKey, userID)
		}
		c.Set(consts.BaseURL, "http://pinwall.test")
		c.Next()
	}
}

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) GetPosts(ctx context.Context, viewerID string, q dto.PageQuery) ([]*dto.PostDTO, error) {
	args := m.Called(ctx, viewerID, q)
	res, _ := args.Get(0).([]*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) GetUserPosts(ctx context.Context, viewerID, ownerID string, q dto.PageQuery) ([]*dto.PostDTO, error) {
	args := m.Called(ctx, viewerID, ownerID, q)
	res, _ := args.Get(0).([]*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) GetPost(ctx context.Context, viewerID string, postID uint64) (*dto.PostDTO, error) {
	args := m.Called(ctx, viewerID, postID)
	res, _ := args.Get(0).(*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) GetSharedPost(ctx context.Context, viewerID, token string) (*dto.PostDTO, error) {
	args := m.Called(ctx, viewerID, token)
	res, _ := args.Get(0).(*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) CreatePost(ctx context.Context, userID string, req *dto.CreatePostDTO, image *dto.ImageUpload) (*dto.PostDTO, error) {
	args := m.Called(ctx, userID, req, image)
	res, _ := args.Get(0).(*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) DeletePost(ctx context.Context, userID string, postID uint64) error {
	return m.Called(ctx, userID, postID).Error(0)
}

type mockPostActionService struct {
	mock.Mock
}

func (m *mockPostActionService) ToggleLike(ctx context.Context, userID string, postID uint64) (*dto.LikeToggleDTO, error) {
	args := m.Called(ctx, userID, postID)
	res, _ := args.Get(0).(*dto.LikeToggleDTO)
	return res, args.Error(1)
}

func (m *mockPostActionService) SharePost(ctx context.Context, userID string, postID uint64, req *dto.ShareReq, baseURL string) (*dto.ShareDTO, error) {
	args := m.Called(ctx, userID, postID, req, baseURL)
	res, _ := args.Get(0).(*dto.ShareDTO)
	return res, args.Error(1)
}

type mockHashtagService struct {
	mock.Mock
}

func (m *mockHashtagService) GetTrending(ctx context.Context, limit int) ([]*dto.HashtagCountDTO, error) {
	args := m.Called(ctx, limit)
	res, _ := args.Get(0).([]*dto.HashtagCountDTO)
	return res, args.Error(1)
}

func (m *mockHashtagService) RefreshTrending(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockHashtagService) InvalidateTrending(ctx context.Context) {
	m.Called(ctx)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) BeginLogin(ctx context.Context) (*service.LoginRedirect, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*service.LoginRedirect)
	return res, args.Error(1)
}

func (m *mockAuthService) CompleteLogin(ctx context.Context, code, state, cookieNonce string) (*service.SessionTicket, error) {
	args := m.Called(ctx, code, state, cookieNonce)
	res, _ := args.Get(0).(*service.SessionTicket)
	return res, args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, sid string) (string, error) {
	args := m.Called(ctx, sid)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

func (m *mockAuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*dto.UserDTO, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.UserDTO)
	return res, args.Error(1)
}

func (m *mockUserService) UpsertIdentity(ctx context.Context, identity *dto.Identity) (*dto.UserDTO, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).(*dto.UserDTO)
	return res, args.Error(1)
}

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) HandleEvent(ctx context.Context, event dto.EngagementEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockNotificationService) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]*dto.NotificationDTO, error) {
	args := m.Called(ctx, userID, limit, offset)
	res, _ := args.Get(0).([]*dto.NotificationDTO)
	return res, args.Error(1)
}

func (m *mockNotificationService) GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountDTO, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*dto.UnreadCountDTO)
	return res, args.Error(1)
}

func (m *mockNotificationService) MarkAsRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
