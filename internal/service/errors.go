package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid         = errors.New("invalid parameter")
	ErrFileNotSupported     = errors.New("only image files are allowed")
	ErrFileTooLarge         = errors.New("image exceeds the upload size limit")
	ErrImageRequired        = errors.New("image is required")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrPostForbidden        = errors.New("you can only delete your own posts")
	ErrPostNotFound         = errors.New("post not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrOAuthState           = errors.New("invalid oauth state")
	ErrShareTokenInvalid    = errors.New("shared post not found")
	UnExpectedError         = errors.New("internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         http.StatusBadRequest,
	ErrFileNotSupported:     http.StatusBadRequest,
	ErrFileTooLarge:         http.StatusBadRequest,
	ErrImageRequired:        http.StatusBadRequest,
	ErrUnauthorized:         http.StatusUnauthorized,
	ErrPostForbidden:        http.StatusForbidden,
	ErrPostNotFound:         http.StatusNotFound,
	ErrUserNotFound:         http.StatusNotFound,
	ErrNotificationNotFound: http.StatusNotFound,
	ErrOAuthState:           http.StatusUnauthorized,
	ErrShareTokenInvalid:    http.StatusNotFound,
	UnExpectedError:         http.StatusInternalServerError,
}

// StatusOf 返回错误对应的 HTTP 状态码, 未登记的错误返回 false
func StatusOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}
