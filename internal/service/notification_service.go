package service

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/mongo"
	"Pinwall/internal/pkg/util"
	"Pinwall/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

type NotificationService interface {
	HandleEvent(ctx context.Context, event dto.EngagementEvent) error
	GetNotifications(ctx context.Context, userID string, limit, offset int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountDTO, error)
	MarkAsRead(ctx context.Context, userID, id string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
	postRepo         repository.PostRepo
	userRepo         repository.UserRepo
}

func NewNotificationService(notificationRepo mongo.NotificationRepo, postRepo repository.PostRepo, userRepo repository.UserRepo) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
	}
}

// HandleEvent 为帖子作者生成通知, 自己的互动与已删除的帖子不通知
func (s *notificationServiceImpl) HandleEvent(ctx context.Context, event dto.EngagementEvent) error {
	post, err := s.postRepo.GetPost(ctx, event.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.InfoContext(ctx, "skip notification for missing post", "post_id", event.PostID)
			return nil
		}
		return err
	}
	if event.ActorID != "" && event.ActorID == post.UserID {
		return nil
	}

	actor := "Someone"
	if event.ActorID != "" {
		user, err := s.userRepo.GetUserByID(ctx, event.ActorID)
		if err != nil {
			return err
		}
		actor = displayName(user, actor)
	}

	n := &mongo.NotificationModel{
		ReceiverID: post.UserID,
		SenderID:   event.ActorID,
		Type:       event.Type,
		PostID:     event.PostID,
		CreatedAt:  event.OccurredAt,
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	switch event.Type {
	case dto.EventLike:
		n.Title = "New like"
		n.Message = fmt.Sprintf("%s liked your post %q", actor, post.Title)
	case dto.EventShare:
		n.Title = "Post shared"
		n.Message = fmt.Sprintf("%s shared your post %q", actor, post.Title)
	default:
		log.WarnContext(ctx, "unknown engagement event", "type", event.Type)
		return nil
	}

	return s.notificationRepo.Create(ctx, n)
}

func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]*dto.NotificationDTO, error) {
	limit, offset = util.NormalizePage(limit, offset)
	list, err := s.notificationRepo.List(ctx, userID, int64(limit), int64(offset))
	if err != nil {
		return nil, err
	}

	out := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, &dto.NotificationDTO{
			ID:         n.ID.Hex(),
			Type:       n.Type,
			Title:      n.Title,
			Message:    n.Message,
			PostID:     n.PostID,
			FromUserID: n.SenderID,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
		})
	}
	return out, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountDTO, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{UnreadCount: count}, nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID, id string) error {
	err := s.notificationRepo.MarkAsRead(ctx, userID, id)
	if errors.Is(err, mongo.ErrNotificationNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	_, err := s.notificationRepo.MarkAllAsRead(ctx, userID)
	return err
}

func displayName(user *model.User, fallback string) string {
	if user == nil {
		return fallback
	}
	var parts []string
	if user.FirstName != nil {
		parts = append(parts, *user.FirstName)
	}
	if user.LastName != nil {
		parts = append(parts, *user.LastName)
	}
	name := strings.TrimSpace(strings.Join(parts, " "))
	if name == "" {
		return fallback
	}
	return name
}
