package repository

import (
	"Pinwall/internal/model"
	"context"

	"gorm.io/gorm"
)

type TagRepo interface {
	TrendingHashtags(ctx context.Context, limit int) ([]*model.HashtagCount, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

// TrendingHashtags 按使用帖子数倒序, 同数量按名称升序
func (s *tagRepoImpl) TrendingHashtags(ctx context.Context, limit int) ([]*model.HashtagCount, error) {
	rows := make([]*model.HashtagCount, 0)
	err := s.db.WithContext(ctx).
		Table("post_tags").
		Select("tags.name AS name, COUNT(*) AS count").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Group("tags.name").
		Order("count DESC").
		Order("name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
