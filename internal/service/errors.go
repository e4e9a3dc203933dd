package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// 业务哨兵错误，由 HTTP 层映射为对应状态码
var (
	ErrNotFound                   = errors.New("resource not found")
	ErrEmailExists                = errors.New("email already registered")
	ErrInvalidEmail               = errors.New("invalid email address")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrUserDisabled               = errors.New("user account disabled")
	ErrEmailNotVerified           = errors.New("email not verified")
	ErrEmailAlreadyVerified       = errors.New("email already verified")
	ErrInvalidVerifyPurpose       = errors.New("unsupported verify purpose")
	ErrVerifyCodeInvalid          = errors.New("verify code invalid")
	ErrVerifyCodeExpired          = errors.New("verify code expired")
	ErrVerifyCodeAttemptsExceeded = errors.New("verify code attempts exceeded")
	ErrVerifyCodeTooFrequent      = errors.New("verify code requested too frequently")
	ErrWeakPassword               = errors.New("password does not meet policy")
	ErrInvalidPassword            = errors.New("current password incorrect")
	ErrProfileEmpty               = errors.New("no profile fields to update")
	ErrInvalidCurrency            = errors.New("unsupported preferred currency")
	ErrEmailServiceDisabled       = errors.New("email service disabled")
	ErrEmailServiceNotConfigured  = errors.New("email service not configured")
	ErrEmailRecipientRejected     = errors.New("email recipient rejected")
	ErrCaptchaRequired            = errors.New("captcha required")
	ErrCaptchaInvalid             = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid       = errors.New("captcha config invalid")
)

// FieldErrors 字段级校验错误集合，key 为请求字段名
type FieldErrors map[string][]string

// Add 追加一条字段错误
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// ValidationError 单对象校验错误
type ValidationError struct {
	Fields FieldErrors
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

// BulkValidationError 批量校验错误，Items 与输入顺序一一对齐，
// 通过校验的条目对应空的 FieldErrors
type BulkValidationError struct {
	Items []FieldErrors
}

// Error 实现 error 接口
func (e *BulkValidationError) Error() string {
	invalid := 0
	for _, item := range e.Items {
		if len(item) > 0 {
			invalid++
		}
	}
	return fmt.Sprintf("validation failed for %d of %d items", invalid, len(e.Items))
}
