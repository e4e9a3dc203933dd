package models

import (
	"strings"
	"time"

	"github.com/sandro988/E-commerce/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultStaff 初始化默认员工账号
func InitDefaultStaff(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("is_staff = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	staff := User{
		Email:           strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:    string(hash),
		IsStaff:         true,
		Status:          "active",
		EmailVerifiedAt: &now,
	}

	if err := DB.Create(&staff).Error; err != nil {
		return err
	}

	if password == "admin12345" {
		logger.Warnw("default_staff_created_with_default_password", "email", staff.Email, "password", password)
		logger.Warnw("default_staff_password_change_required", "email", staff.Email)
	} else {
		logger.Warnw("default_staff_created", "email", staff.Email, "password_hidden", true)
	}

	return nil
}
