package service

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/security"
	"Pinwall/internal/pkg/storage"
	"Pinwall/internal/pkg/util"
	"Pinwall/internal/repository"
	"bytes"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type PostService interface {
	GetPosts(ctx context.Context, viewerID string, q dto.PageQuery) ([]*dto.PostDTO, error)
	GetUserPosts(ctx context.Context, viewerID, ownerID string, q dto.PageQuery) ([]*dto.PostDTO, error)
	GetPost(ctx context.Context, viewerID string, postID uint64) (*dto.PostDTO, error)
	GetSharedPost(ctx context.Context, viewerID, token string) (*dto.PostDTO, error)
	CreatePost(ctx context.Context, userID string, req *dto.CreatePostDTO, image *dto.ImageUpload) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID string, postID uint64) error
}

type postServiceImpl struct {
	postRepo       repository.PostRepo
	userRepo       repository.UserRepo
	actionRepo     repository.PostActionRepo
	imageStore     storage.ImageStore
	hashtagService HashtagService
	masker         *security.IDMasker
	maxUploadBytes int64
}

// NewPostService masker 为 nil 时分享链接使用数字 ID
func NewPostService(
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	actionRepo repository.PostActionRepo,
	imageStore storage.ImageStore,
	hashtagService HashtagService,
	masker *security.IDMasker,
	maxUploadBytes int64,
) PostService {
	return &postServiceImpl{
		postRepo:       postRepo,
		userRepo:       userRepo,
		actionRepo:     actionRepo,
		imageStore:     imageStore,
		hashtagService: hashtagService,
		masker:         masker,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *postServiceImpl) GetPosts(ctx context.Context, viewerID string, q dto.PageQuery) ([]*dto.PostDTO, error) {
	return s.listPosts(ctx, viewerID, "", q)
}

func (s *postServiceImpl) GetUserPosts(ctx context.Context, viewerID, ownerID string, q dto.PageQuery) ([]*dto.PostDTO, error) {
	if ownerID == "" {
		return nil, ErrParamInvalid
	}
	return s.listPosts(ctx, viewerID, ownerID, q)
}

func (s *postServiceImpl) listPosts(ctx context.Context, viewerID, ownerID string, q dto.PageQuery) ([]*dto.PostDTO, error) {
	limit, offset := util.NormalizePage(q.Limit, q.Offset)
	rows, err := s.postRepo.ListPosts(ctx, repository.PostQuery{
		Limit:   limit,
		Offset:  offset,
		Search:  q.Search,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, viewerID, rows)
}

func (s *postServiceImpl) GetPost(ctx context.Context, viewerID string, postID uint64) (*dto.PostDTO, error) {
	row, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	posts, err := s.compose(ctx, viewerID, []*model.PostWithStats{row})
	if err != nil {
		return nil, err
	}
	return posts[0], nil
}

// GetSharedPost 先按加密令牌解析, 失败时兼容数字 ID
func (s *postServiceImpl) GetSharedPost(ctx context.Context, viewerID, token string) (*dto.PostDTO, error) {
	var postID uint64
	if s.masker != nil {
		if id, err := s.masker.Decode(token); err == nil {
			postID = id
		}
	}
	if postID == 0 {
		id, err := strconv.ParseUint(token, 10, 64)
		if err != nil || id == 0 {
			return nil, ErrShareTokenInvalid
		}
		postID = id
	}

	post, err := s.GetPost(ctx, viewerID, postID)
	if errors.Is(err, ErrPostNotFound) {
		return nil, ErrShareTokenInvalid
	}
	return post, err
}

// CreatePost 先存图再写库, 写库失败时删除已存的图片
func (s *postServiceImpl) CreatePost(ctx context.Context, userID string, req *dto.CreatePostDTO, image *dto.ImageUpload) (*dto.PostDTO, error) {
	if image == nil || len(image.Data) == 0 {
		return nil, ErrImageRequired
	}
	if s.maxUploadBytes > 0 && int64(len(image.Data)) > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if !util.IsImageContentType(image.ContentType) {
		return nil, ErrFileNotSupported
	}

	name := util.UploadFileName(image.FileName, image.ContentType, time.Now())
	imageURL, err := s.imageStore.Save(ctx, name, bytes.NewReader(image.Data), int64(len(image.Data)), image.ContentType)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:      userID,
		Title:       req.Title,
		Description: util.PtrString(req.Description),
		Hashtags:    util.PtrString(req.Hashtags),
		ImageURL:    imageURL,
		Link:        util.PtrString(req.Link),
		NotifyEmail: util.PtrString(req.NotifyEmail),
		CreatedAt:   time.Now(),
	}
	if w, h, ok := storage.ProbeDimensions(image.Data); ok {
		post.ImageWidth = util.PtrInt(w)
		post.ImageHeight = util.PtrInt(h)
	}

	if err = s.postRepo.CreatePostWithTags(ctx, post, util.SplitHashtags(req.Hashtags)); err != nil {
		if delErr := s.imageStore.Delete(context.WithoutCancel(ctx), imageURL); delErr != nil {
			log.WarnContext(ctx, "remove orphan image failed", "url", imageURL, "err", delErr)
		}
		return nil, err
	}
	s.hashtagService.InvalidateTrending(ctx)

	log.InfoContext(ctx, "post created", "post_id", post.ID, "user_id", userID)

	posts, err := s.compose(ctx, userID, []*model.PostWithStats{{Post: *post}})
	if err != nil {
		return nil, err
	}
	return posts[0], nil
}

// DeletePost 只有作者可以删除, 图片清理失败不影响结果
func (s *postServiceImpl) DeletePost(ctx context.Context, userID string, postID uint64) error {
	deleted, err := s.postRepo.DeletePost(ctx, postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrPostNotFound
		case errors.Is(err, repository.ErrNotOwner):
			return ErrPostForbidden
		default:
			return err
		}
	}

	if err = s.imageStore.Delete(context.WithoutCancel(ctx), deleted.ImageURL); err != nil {
		log.WarnContext(ctx, "remove post image failed", "post_id", postID, "url", deleted.ImageURL, "err", err)
	}
	s.hashtagService.InvalidateTrending(ctx)

	log.InfoContext(ctx, "post deleted", "post_id", postID, "user_id", userID)
	return nil
}

// compose 批量补充作者资料与当前用户的点赞状态
func (s *postServiceImpl) compose(ctx context.Context, viewerID string, rows []*model.PostWithStats) ([]*dto.PostDTO, error) {
	out := make([]*dto.PostDTO, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	userIDs := make([]string, 0, len(rows))
	postIDs := make([]uint64, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		postIDs = append(postIDs, r.ID)
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
	}

	var users []*model.User
	liked := map[uint64]bool{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.GetUsersByIDs(gCtx, userIDs)
		return err
	})
	if viewerID != "" {
		g.Go(func() error {
			var err error
			liked, err = s.actionRepo.GetLikedPostIDs(gCtx, viewerID, postIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	owners := make(map[string]*dto.UserDTO, len(users))
	for _, u := range users {
		owners[u.ID] = toUserDTO(u)
	}

	for _, r := range rows {
		var p dto.PostDTO
		if err := copier.Copy(&p, &r.Post); err != nil {
			return nil, err
		}
		p.User = owners[r.UserID]
		if p.User == nil {
			log.ErrorContext(ctx, "post owner missing", "post_id", r.ID, "user_id", r.UserID)
		}
		p.LikesCount = r.LikesCount
		p.IsLiked = liked[r.ID]
		out = append(out, &p)
	}
	return out, nil
}
