package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotificationNotFound 通知不存在或不属于该用户
var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepo interface {
	Create(ctx context.Context, n *NotificationModel) error
	List(ctx context.Context, receiverID string, limit, offset int64) ([]*NotificationModel, error)
	MarkAsRead(ctx context.Context, receiverID, id string) error
	MarkAllAsRead(ctx context.Context, receiverID string) (int64, error)
	UnreadCount(ctx context.Context, receiverID string) (int64, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection(NotificationCollection),
	}
}

func (s *notificationRepoImpl) Create(ctx context.Context, n *NotificationModel) error {
	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = id
	}
	return nil
}

// List 按时间倒序分页
func (s *notificationRepoImpl) List(ctx context.Context, receiverID string, limit, offset int64) ([]*NotificationModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, bson.M{"user_id": receiverID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*NotificationModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, receiverID, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotificationNotFound
	}
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": receiverID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, receiverID string) (int64, error) {
	result, err := s.col.UpdateMany(ctx,
		bson.M{"user_id": receiverID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *notificationRepoImpl) UnreadCount(ctx context.Context, receiverID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"user_id": receiverID, "is_read": false})
}
