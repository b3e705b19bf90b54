package handler

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/api/middleware"
	"Pinwall/internal/pkg/response"
	"Pinwall/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationSvc: s,
	}
}

// GetNotifications 获取通知列表
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	list, err := h.notificationSvc.GetNotifications(c.Request.Context(), middleware.CurrentUserID(c), q.Limit, q.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUnreadCount 获取未读数
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	unread, err := h.notificationSvc.GetUnreadCount(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, unread)
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.notificationSvc.MarkAsRead(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllRead 全部标记已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationSvc.MarkAllAsRead(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
