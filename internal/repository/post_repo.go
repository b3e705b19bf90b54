package repository

import (
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/util"
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotOwner 帖子存在但不属于当前用户
var ErrNotOwner = errors.New("post owned by another user")

const maxTagLength = 100

// PostQuery 列表查询条件, Limit 与 Offset 由调用方修正
type PostQuery struct {
	Limit   int
	Offset  int
	Search  string
	OwnerID string
}

type PostRepo interface {
	ListPosts(ctx context.Context, q PostQuery) ([]*model.PostWithStats, error)
	GetPost(ctx context.Context, id uint64) (*model.PostWithStats, error)
	ExistsPost(ctx context.Context, id uint64) (bool, error)
	CreatePostWithTags(ctx context.Context, post *model.Post, tags []string) error
	DeletePost(ctx context.Context, id uint64, ownerID string) (*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// withStats 帖子与点赞数的聚合查询
func (s *PostRepoImpl) withStats(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("posts.*, COUNT(likes.id) AS likes_count").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Group("posts.id")
}

// ListPosts 按创建时间倒序分页, search 对标题、描述、话题做区分大小写的子串匹配
func (s *PostRepoImpl) ListPosts(ctx context.Context, q PostQuery) ([]*model.PostWithStats, error) {
	tx := s.withStats(ctx)

	if q.OwnerID != "" {
		tx = tx.Where("posts.user_id = ?", q.OwnerID)
	}
	if q.Search != "" {
		op := "LIKE"
		if s.db.Dialector.Name() == "mysql" {
			op = "LIKE BINARY"
		}
		pattern := util.LikePattern(q.Search)
		tx = tx.Where(
			"posts.title "+op+" ? OR posts.description "+op+" ? OR posts.hashtags "+op+" ?",
			pattern, pattern, pattern,
		)
	}

	posts := make([]*model.PostWithStats, 0)
	err := tx.Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.PostWithStats, error) {
	var posts []*model.PostWithStats
	err := s.withStats(ctx).Where("posts.id = ?", id).Limit(1).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return posts[0], nil
}

func (s *PostRepoImpl) ExistsPost(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Limit(1).Count(&count).Error
	return count > 0, err
}

// CreatePostWithTags 帖子与话题关联在同一事务中写入
func (s *PostRepoImpl) CreatePostWithTags(ctx context.Context, post *model.Post, tags []string) error {
	names := normalizeTags(tags)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}

		rows := make([]model.Tag, 0, len(names))
		for _, name := range names {
			rows = append(rows, model.Tag{Name: name})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}

		var saved []model.Tag
		if err := tx.Where("name IN ?", names).Find(&saved).Error; err != nil {
			return err
		}

		links := make([]model.PostTag, 0, len(saved))
		seen := make(map[uint64]struct{}, len(saved))
		for _, t := range saved {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			links = append(links, model.PostTag{PostID: post.ID, TagID: t.ID})
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

// DeletePost 锁定帖子后校验归属, 依次删除点赞、话题关联与帖子本身
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64, ownerID string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "user_id", "image_url").
			Where("id = ?", id).
			Take(&post).Error
		if err != nil {
			return err
		}
		if post.UserID != ownerID {
			return ErrNotOwner
		}

		if err = tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err = tx.Where("post_id = ?", id).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// normalizeTags 截断超长话题后再次去重
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if utf8.RuneCountInString(t) > maxTagLength {
			t = string([]rune(t)[:maxTagLength])
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
