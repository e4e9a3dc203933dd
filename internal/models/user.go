package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                       uint           `gorm:"primarykey" json:"id"`                        // 主键
	Email                    string         `gorm:"uniqueIndex;not null" json:"email"`           // 邮箱
	PasswordHash             string         `gorm:"not null" json:"-"`                           // 密码哈希（不返回给前端）
	FullName                 string         `gorm:"default:''" json:"full_name"`                 // 姓名
	PhoneNumber              string         `gorm:"default:''" json:"phone_number"`              // 手机号
	Address                  string         `gorm:"default:''" json:"address"`                   // 收货地址
	PreferredCurrency        string         `gorm:"default:'GEL'" json:"preferred_currency"`     // 结算币种偏好
	IsSubscribedToNewsletter bool           `gorm:"default:false" json:"is_subscribed_to_newsletter"` // 是否订阅邮件
	IsStaff                  bool           `gorm:"default:false" json:"is_staff"`               // 是否为员工（分类管理权限）
	Status                   string         `gorm:"default:'active'" json:"status"`              // 账号状态
	TokenVersion             uint64         `gorm:"not null;default:0" json:"-"`                 // Token 版本（用于全量失效）
	TokenInvalidBefore       *time.Time     `gorm:"index" json:"-"`                              // 该时间点前签发的 Token 失效
	EmailVerifiedAt          *time.Time     `json:"email_verified_at"`                           // 邮箱验证时间
	LastLoginAt              *time.Time     `json:"last_login_at"`                               // 最后登录时间
	CreatedAt                time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt                time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsEmailVerified 邮箱是否已通过验证
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
