package util

import (
	"Pinwall/internal/api/dto"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 使用 validate 标签校验结构体
func ValidateDTO(v any) error {
	return validate.Struct(v)
}

// FieldErrors 将校验错误转换为响应中的字段明细
func FieldErrors(err error) []dto.FieldError {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil
	}

	out := make([]dto.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		out = append(out, dto.FieldError{
			Field:   lowerFirst(fe.Field()),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s failed on the %q rule", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
