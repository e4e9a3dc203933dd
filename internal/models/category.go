package models

import "time"

// Category 商品分类表。父子关系只存 parent_id，子分类一律按需查询。
// 分类为硬删除：删除后名称和 slug 必须可以复用，软删除会占住唯一索引。
type Category struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                     // 主键
	Name           string    `gorm:"type:varchar(128);not null" json:"name"`                   // 名称（标题格式）
	NameNormalized string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`          // 小写名称（数据库层大小写不敏感唯一兜底）
	Slug           string    `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"`       // 唯一标识（由名称派生）
	Description    string    `gorm:"type:text" json:"description"`                             // 描述
	Image          string    `gorm:"type:varchar(500)" json:"image"`                           // 分类图片路径
	ParentID       *uint     `gorm:"index" json:"parent"`                                      // 父分类ID（顶级为 null）
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt      time.Time `gorm:"index" json:"updated_at"`                                  // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
