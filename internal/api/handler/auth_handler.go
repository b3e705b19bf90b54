package handler

import (
	"Pinwall/internal/api/middleware"
	"Pinwall/internal/pkg/response"
	"Pinwall/internal/pkg/security"
	"Pinwall/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig 会话与 OAuth state Cookie 设置
type CookieConfig struct {
	SessionName       string
	StateName         string
	Secure            bool
	PostLoginRedirect string
}

type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
	cookies CookieConfig
}

func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService, cookies CookieConfig) *AuthHandler {
	if cookies.PostLoginRedirect == "" {
		cookies.PostLoginRedirect = "/"
	}
	return &AuthHandler{
		authSvc: authSvc,
		userSvc: userSvc,
		cookies: cookies,
	}
}

// Login 跳转到授权页, nonce 写入短期 Cookie
func (s *AuthHandler) Login(c *gin.Context) {
	redirect, err := s.authSvc.BeginLogin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	s.setCookie(c, s.cookies.StateName, redirect.Nonce, int(security.StateExpiration.Seconds()))
	c.Redirect(http.StatusFound, redirect.URL)
}

// Callback 校验 state 后建立会话
func (s *AuthHandler) Callback(c *gin.Context) {
	nonce, _ := c.Cookie(s.cookies.StateName)
	s.setCookie(c, s.cookies.StateName, "", -1)

	if providerErr := c.Query("error"); providerErr != "" {
		log.WarnContext(c.Request.Context(), "oauth provider returned error", "error", providerErr)
		response.Error(c, service.ErrOAuthState)
		return
	}

	ticket, err := s.authSvc.CompleteLogin(c.Request.Context(), c.Query("code"), c.Query("state"), nonce)
	if err != nil {
		response.Error(c, err)
		return
	}

	s.setCookie(c, s.cookies.SessionName, ticket.SID, int(time.Until(ticket.ExpiresAt).Seconds()))
	c.Redirect(http.StatusFound, s.cookies.PostLoginRedirect)
}

func (s *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(s.cookies.SessionName); err == nil {
		if err = s.authSvc.Logout(c.Request.Context(), sid); err != nil {
			log.WarnContext(c.Request.Context(), "logout failed", "err", err)
		}
	}
	s.setCookie(c, s.cookies.SessionName, "", -1)
	c.Redirect(http.StatusFound, "/")
}

// GetCurrentUser 会话有效但用户记录缺失时同样视为未登录
func (s *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := s.userSvc.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, service.ErrUnauthorized)
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", s.cookies.Secure, true)
}
