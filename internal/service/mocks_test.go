package service

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/mongo"
	"Pinwall/internal/repository"
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) ListPosts(ctx context.Context, q repository.PostQuery) ([]*model.PostWithStats, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]*model.PostWithStats)
	return rows, args.Error(1)
}

func (m *mockPostRepo) GetPost(ctx context.Context, id uint64) (*model.PostWithStats, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*model.PostWithStats)
	return row, args.Error(1)
}

func (m *mockPostRepo) ExistsPost(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) CreatePostWithTags(ctx context.Context, post *model.Post, tags []string) error {
	args := m.Called(ctx, post, tags)
	return args.Error(0)
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id uint64, ownerID string) (*model.Post, error) {
	args := m.Called(ctx, id, ownerID)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) UpsertUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

type mockActionRepo struct{ mock.Mock }

func (m *mockActionRepo) ToggleLike(ctx context.Context, userID string, postID uint64) (bool, int64, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *mockActionRepo) GetLikedPostIDs(ctx context.Context, userID string, postIDs []uint64) (map[uint64]bool, error) {
	args := m.Called(ctx, userID, postIDs)
	liked, _ := args.Get(0).(map[uint64]bool)
	return liked, args.Error(1)
}

func (m *mockActionRepo) CountLikes(ctx context.Context, postID uint64) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockActionRepo) CreateShareLog(ctx context.Context, log *model.ShareLog) error {
	return m.Called(ctx, log).Error(0)
}

type mockTagRepo struct{ mock.Mock }

func (m *mockTagRepo) TrendingHashtags(ctx context.Context, limit int) ([]*model.HashtagCount, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]*model.HashtagCount)
	return rows, args.Error(1)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) GetSession(ctx context.Context, sid string) (*model.Session, error) {
	args := m.Called(ctx, sid)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, n *mongo.NotificationModel) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, receiverID string, limit, offset int64) ([]*mongo.NotificationModel, error) {
	args := m.Called(ctx, receiverID, limit, offset)
	list, _ := args.Get(0).([]*mongo.NotificationModel)
	return list, args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, receiverID, id string) error {
	return m.Called(ctx, receiverID, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, receiverID string) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) UnreadCount(ctx context.Context, receiverID string) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, name, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type mockHashtagService struct{ mock.Mock }

func (m *mockHashtagService) GetTrending(ctx context.Context, limit int) ([]*dto.HashtagCountDTO, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]*dto.HashtagCountDTO)
	return rows, args.Error(1)
}

func (m *mockHashtagService) RefreshTrending(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockHashtagService) InvalidateTrending(ctx context.Context) {
	m.Called(ctx)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event dto.EngagementEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	if fn, ok := args.Get(0).(func(string) string); ok {
		return fn(state)
	}
	return args.String(0)
}

func (m *mockProvider) Exchange(ctx context.Context, code string) (*dto.Identity, error) {
	args := m.Called(ctx, code)
	identity, _ := args.Get(0).(*dto.Identity)
	return identity, args.Error(1)
}
