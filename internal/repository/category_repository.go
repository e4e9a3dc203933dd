package repository

import (
	"errors"

	"github.com/sandro988/E-commerce/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	ListByParent(parentID uint) ([]models.Category, error)
	FindByNameFold(name string, excludeID uint) (*models.Category, error)
	Count() (int64, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	DeleteByIDs(ids []uint) error
	Transaction(fn func(tx CategoryRepository) error) error
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlug 根据 slug 获取分类
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListByParent 获取某分类的直接子分类
func (r *GormCategoryRepository) ListByParent(parentID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("parent_id = ?", parentID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByNameFold 按名称做大小写不敏感查找，excludeID 大于 0 时排除自身
func (r *GormCategoryRepository) FindByNameFold(name string, excludeID uint) (*models.Category, error) {
	var category models.Category
	query := r.db.Where("name_normalized = lower(?)", name)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Count 分类总数
func (r *GormCategoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// DeleteByIDs 按 ID 批量删除（分类为硬删除）
func (r *GormCategoryRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Category{}).Error
}

// Transaction 在单个事务内执行 fn，fn 收到绑定事务连接的仓库
func (r *GormCategoryRepository) Transaction(fn func(tx CategoryRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormCategoryRepository{db: tx})
	})
}
