package response

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/pkg/util"
	"Pinwall/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功返回封装
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

// Fail 失败返回封装, HTTP 状态码与 code 一致
func Fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.Response{
		Code:    code,
		Message: message,
	})
}

// Error 将错误转换为统一响应
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Response{
			Code:    http.StatusBadRequest,
			Message: "validation failed",
			Errors:  util.FieldErrors(ve),
		})
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError
	if errors.As(err, &unmarshalTypeError) || errors.As(err, &syntaxError) {
		Fail(c, http.StatusBadRequest, "malformed json body")
		return
	}

	code, ok := service.StatusOf(err)
	if !ok || code == http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "unhandled error", "path", c.FullPath(), "err", err)
		Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, unwrapSentinel(err).Error())
}

// unwrapSentinel 对外只暴露登记过的错误文案, 不泄露包装的内部细节
func unwrapSentinel(err error) error {
	for sentinel := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}

// BindError 参数绑定失败: 校验错误带字段明细, 其余格式错误统一 400
func BindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Error(c, err)
		return
	}
	log.DebugContext(c.Request.Context(), "bind failed", "err", err)
	Fail(c, http.StatusBadRequest, service.ErrParamInvalid.Error())
}
