package repository

import (
	"Pinwall/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	UpsertUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

// UpsertUser 登录时整体覆盖可变字段
func (s *UserRepoImpl) UpsertUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "first_name", "last_name", "profile_image_url", "updated_at",
			}),
		}).
		Create(user).Error
	if err != nil {
		return err
	}

	// 冲突更新时 created_at 以库中为准
	return s.db.WithContext(ctx).Select("created_at").Where("id = ?", user.ID).Take(user).Error
}

// GetUserByID 用户不存在时返回 nil, nil
func (s *UserRepoImpl) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *UserRepoImpl) GetUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
