package dto

// Response 统一响应结构, Code 与 HTTP 状态码一致
type Response struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    any          `json:"data"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError 参数校验失败的字段明细
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// PageQuery 通用分页与搜索参数
type PageQuery struct {
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
	Search string `form:"search"`
}
