package service

import (
	"fmt"
	"unicode"

	"github.com/sandro988/E-commerce/internal/config"
)

type passwordPolicyError struct {
	message string
}

func (e passwordPolicyError) Error() string {
	return e.message
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{message: fmt.Sprintf("Password must be at least %d characters long.", policy.MinLength)}
		}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	letters, specials, total := 0, 0, 0
	for _, r := range password {
		total++
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
			letters++
		case unicode.IsLower(r):
			hasLower = true
			letters++
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
			specials++
		}
	}

	// 纯字母或纯特殊字符的密码一律拒绝，与策略开关无关
	if total > 0 && letters == total {
		return passwordPolicyError{message: "This password consists only of alphabetic characters."}
	}
	if total > 0 && specials == total {
		return passwordPolicyError{message: "This password consists only of special characters."}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{message: "Password must contain at least one uppercase letter."}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{message: "Password must contain at least one lowercase letter."}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{message: "Password must contain at least one number."}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{message: "Password must contain at least one special character."}
	}

	return nil
}
