package cache

import (
	"context"
	"time"

	"github.com/sandro988/E-commerce/internal/models"
)

const (
	categoryListKey      = "catalog:categories"
	categoryListCacheTTL = 60 * time.Second
)

// GetCategoryList 读取分类列表缓存
func GetCategoryList(ctx context.Context) ([]models.Category, bool) {
	var categories []models.Category
	hit, err := GetJSON(ctx, categoryListKey, &categories)
	if err != nil || !hit {
		return nil, false
	}
	return categories, true
}

// SetCategoryList 写入分类列表缓存
func SetCategoryList(ctx context.Context, categories []models.Category) error {
	return SetJSON(ctx, categoryListKey, categories, categoryListCacheTTL)
}

// InvalidateCategoryList 分类发生写入后删除列表缓存
func InvalidateCategoryList(ctx context.Context) error {
	return Del(ctx, categoryListKey)
}
