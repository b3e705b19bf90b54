package service

import (
	"Pinwall/internal/api/config"
	"Pinwall/internal/api/dto"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/consts"
	"Pinwall/internal/pkg/database"
	"Pinwall/internal/pkg/oauth"
	"Pinwall/internal/pkg/redis"
	"Pinwall/internal/pkg/security"
	"Pinwall/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
)

const (
	sessionIDBytes = 32
	nonceBytes     = 16

	sessionCreateAttempts = 3
)

// AuthConfig 构造时注入的登录与会话配置
type AuthConfig struct {
	OAuth   config.OAuthConfig
	Session config.SessionConfig
}

// LoginRedirect 登录跳转地址与需要写入 Cookie 的随机数
type LoginRedirect struct {
	URL   string
	Nonce string
}

// SessionTicket 新建会话的 sid 与过期时间
type SessionTicket struct {
	SID       string
	ExpiresAt time.Time
	User      *dto.UserDTO
}

type AuthService interface {
	BeginLogin(ctx context.Context) (*LoginRedirect, error)
	CompleteLogin(ctx context.Context, code, state, cookieNonce string) (*SessionTicket, error)
	Authenticate(ctx context.Context, sid string) (string, error)
	Logout(ctx context.Context, sid string) error
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

type authServiceImpl struct {
	cfg         AuthConfig
	provider    oauth.Provider
	userService UserService
	sessionRepo repository.SessionRepo
	now         func() time.Time
}

func NewAuthService(cfg AuthConfig, provider oauth.Provider, userService UserService, sessionRepo repository.SessionRepo) AuthService {
	return &authServiceImpl{
		cfg:         cfg,
		provider:    provider,
		userService: userService,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// BeginLogin 生成随机数并签入 state, 回调时与 Cookie 中的随机数比对
func (s *authServiceImpl) BeginLogin(_ context.Context) (*LoginRedirect, error) {
	nonce, err := security.RandomToken(nonceBytes)
	if err != nil {
		return nil, err
	}
	state, err := security.GenerateStateToken(s.cfg.OAuth.StateSecret, nonce, s.now())
	if err != nil {
		return nil, err
	}
	return &LoginRedirect{URL: s.provider.AuthCodeURL(state), Nonce: nonce}, nil
}

func (s *authServiceImpl) CompleteLogin(ctx context.Context, code, state, cookieNonce string) (*SessionTicket, error) {
	if code == "" {
		return nil, ErrOAuthState
	}
	if err := security.ValidateStateToken(s.cfg.OAuth.StateSecret, state, cookieNonce); err != nil {
		log.WarnContext(ctx, "oauth state rejected", "err", err)
		return nil, ErrOAuthState
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		log.WarnContext(ctx, "oauth exchange failed", "err", err)
		return nil, ErrUnauthorized
	}

	user, err := s.userService.UpsertIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.cacheSession(ctx, session)

	log.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &SessionTicket{SID: session.SID, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// createSession sid 冲突时重新生成
func (s *authServiceImpl) createSession(ctx context.Context, userID string) (*model.Session, error) {
	var lastErr error
	for attempt := 0; attempt < sessionCreateAttempts; attempt++ {
		sid, err := security.RandomToken(sessionIDBytes)
		if err != nil {
			return nil, err
		}
		session := &model.Session{
			SID:       sid,
			UserID:    userID,
			ExpiresAt: s.now().Add(s.cfg.Session.TTL()),
		}
		lastErr = s.sessionRepo.CreateSession(ctx, session)
		if lastErr == nil {
			return session, nil
		}
		if !database.IsUniqueViolation(lastErr) {
			return nil, lastErr
		}
		log.WarnContext(ctx, "session id collision, regenerating")
	}
	return nil, lastErr
}

// Authenticate 先查 Redis, 未命中再查库并回填, 返回会话对应的用户ID
func (s *authServiceImpl) Authenticate(ctx context.Context, sid string) (string, error) {
	if sid == "" {
		return "", ErrUnauthorized
	}

	userID, err := redis.GetValue(ctx, consts.SessionKey+sid)
	if err == nil && userID != "" {
		return userID, nil
	}
	if err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "read session cache failed", "err", err)
	}

	session, err := s.sessionRepo.GetSession(ctx, sid)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrUnauthorized
	}
	if session.Expired(s.now()) {
		if err = s.sessionRepo.DeleteSession(ctx, sid); err != nil {
			log.WarnContext(ctx, "delete expired session failed", "err", err)
		}
		return "", ErrUnauthorized
	}

	s.cacheSession(ctx, session)
	return session.UserID, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := redis.DeleteKey(ctx, consts.SessionKey+sid); err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "delete session cache failed", "err", err)
	}
	return s.sessionRepo.DeleteSession(ctx, sid)
}

func (s *authServiceImpl) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, s.now())
}

// cacheSession 缓存有效期与会话剩余时间一致
func (s *authServiceImpl) cacheSession(ctx context.Context, session *model.Session) {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	err := redis.SetWithExpiration(ctx, consts.SessionKey+session.SID, session.UserID, ttl)
	if err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "write session cache failed", "err", err)
	}
}
