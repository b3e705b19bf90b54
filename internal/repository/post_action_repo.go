package repository

import (
	"Pinwall/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostActionRepo interface {
	ToggleLike(ctx context.Context, userID string, postID uint64) (bool, int64, error)
	GetLikedPostIDs(ctx context.Context, userID string, postIDs []uint64) (map[uint64]bool, error)
	CountLikes(ctx context.Context, postID uint64) (int64, error)
	CreateShareLog(ctx context.Context, log *model.ShareLog) error
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

// ToggleLike 先删后插, 唯一索引保证并发切换时每对 (user, post) 至多一行
func (s *PostActionRepoImpl) ToggleLike(ctx context.Context, userID string, postID uint64) (bool, int64, error) {
	var liked bool
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			like := model.Like{UserID: userID, PostID: postID}
			err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
					DoNothing: true,
				}).
				Create(&like).Error
			if err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// GetLikedPostIDs 批量查询用户在给定帖子中点赞过的集合
func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID string, postIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool, len(postIDs))
	if userID == "" || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (s *PostActionRepoImpl) CountLikes(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CreateShareLog(ctx context.Context, log *model.ShareLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}
