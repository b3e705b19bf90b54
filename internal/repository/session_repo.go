package repository

import (
	"Pinwall/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SessionRepo interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sid string) (*model.Session, error)
	DeleteSession(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return &sessionRepoImpl{db: db}
}

func (s *sessionRepoImpl) CreateSession(ctx context.Context, session *model.Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

// GetSession 不存在时返回 nil, nil, 过期判断由调用方完成
func (s *sessionRepoImpl) GetSession(ctx context.Context, sid string) (*model.Session, error) {
	var session model.Session
	err := s.db.WithContext(ctx).Where("sid = ?", sid).Take(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (s *sessionRepoImpl) DeleteSession(ctx context.Context, sid string) error {
	return s.db.WithContext(ctx).Where("sid = ?", sid).Delete(&model.Session{}).Error
}

func (s *sessionRepoImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
