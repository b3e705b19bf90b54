package service

import (
	"Pinwall/internal/api/config"
	"Pinwall/internal/api/dto"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/database"
	"Pinwall/internal/pkg/security"
	"Pinwall/internal/pkg/util"
	"Pinwall/internal/repository"
	"context"
	log "log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultShareType = "copy_link"

type PostActionService interface {
	ToggleLike(ctx context.Context, userID string, postID uint64) (*dto.LikeToggleDTO, error)
	SharePost(ctx context.Context, userID string, postID uint64, req *dto.ShareReq, baseURL string) (*dto.ShareDTO, error)
}

type postActionServiceImpl struct {
	postRepo   repository.PostRepo
	actionRepo repository.PostActionRepo
	publisher  EventPublisher
	shareCfg   config.ShareConfig
	masker     *security.IDMasker
}

func NewPostActionService(
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	publisher EventPublisher,
	shareCfg config.ShareConfig,
	masker *security.IDMasker,
) PostActionService {
	return &postActionServiceImpl{
		postRepo:   postRepo,
		actionRepo: actionRepo,
		publisher:  publisher,
		shareCfg:   shareCfg,
		masker:     masker,
	}
}

// ToggleLike 切换点赞状态并返回最新点赞数, 点赞时投递通知事件
func (s *postActionServiceImpl) ToggleLike(ctx context.Context, userID string, postID uint64) (*dto.LikeToggleDTO, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	liked, count, err := s.actionRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if liked {
		publishQuietly(ctx, s.publisher, dto.EngagementEvent{
			Type:       dto.EventLike,
			PostID:     postID,
			ActorID:    userID,
			OccurredAt: time.Now(),
		})
	}
	return &dto.LikeToggleDTO{IsLiked: liked, LikesCount: count}, nil
}

// SharePost 记录分享并生成带来源标记的分享链接, 匿名用户也可分享
func (s *postActionServiceImpl) SharePost(ctx context.Context, userID string, postID uint64, req *dto.ShareReq, baseURL string) (*dto.ShareDTO, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	if req == nil {
		req = &dto.ShareReq{}
	}

	shareType := strings.TrimSpace(req.ShareType)
	if shareType == "" {
		shareType = s.defaultShareType()
	}

	shareLog := &model.ShareLog{
		PostID:    postID,
		UserID:    util.PtrString(userID),
		ShareType: shareType,
		Referrer:  util.PtrString(req.Referrer),
	}
	if err := s.actionRepo.CreateShareLog(ctx, shareLog); err != nil {
		return nil, err
	}

	publishQuietly(ctx, s.publisher, dto.EngagementEvent{
		Type:       dto.EventShare,
		PostID:     postID,
		ActorID:    userID,
		ShareType:  shareType,
		OccurredAt: time.Now(),
	})

	return &dto.ShareDTO{ShareURL: s.shareURL(ctx, baseURL, postID)}, nil
}

func (s *postActionServiceImpl) ensurePost(ctx context.Context, postID uint64) error {
	exists, err := s.postRepo.ExistsPost(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}
	return nil
}

func (s *postActionServiceImpl) defaultShareType() string {
	if s.shareCfg.DefaultType != "" {
		return s.shareCfg.DefaultType
	}
	return DefaultShareType
}

// shareURL <base>/posts/<id 或令牌>?ref=<来源标记>
func (s *postActionServiceImpl) shareURL(ctx context.Context, baseURL string, postID uint64) string {
	ident := strconv.FormatUint(postID, 10)
	if s.masker != nil {
		token, err := s.masker.Encode(postID)
		if err != nil {
			log.WarnContext(ctx, "mask post id failed, falling back to numeric id", "post_id", postID, "err", err)
		} else {
			ident = token
		}
	}

	link := strings.TrimRight(baseURL, "/") + "/posts/" + ident
	if s.shareCfg.RefTag != "" {
		link += "?ref=" + url.QueryEscape(s.shareCfg.RefTag)
	}
	return link
}
