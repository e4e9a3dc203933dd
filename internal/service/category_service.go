package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sandro988/E-commerce/internal/cache"
	"github.com/sandro988/E-commerce/internal/constants"
	"github.com/sandro988/E-commerce/internal/models"
	"github.com/sandro988/E-commerce/internal/repository"

	"gorm.io/gorm"
)

// 分类校验文案，直接作为 API 字段错误返回
const (
	msgFieldRequired    = "This field is required."
	msgFieldBlank       = "This field may not be blank."
	msgNameSpecialChars = "Category name cannot contain special characters."
	msgNameDuplicate    = "category with this name already exists."
	msgSelfParent       = "A category cannot be its own parent."
	msgCircularParent   = "This change would create a circular relationship."
)

var categorySpecialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入。
// 指针字段区分「未提供」与「空值」；ParentProvided 标记请求里是否
// 显式携带了 parent 字段（包括显式的 null）。
type CategoryInput struct {
	Name           *string
	Description    *string
	Image          *string
	ParentID       *uint
	ParentProvided bool
}

// List 获取全部分类
func (s *CategoryService) List() ([]models.Category, error) {
	ctx := context.Background()
	if cached, hit := cache.GetCategoryList(ctx); hit {
		return cached, nil
	}
	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	_ = cache.SetCategoryList(ctx, categories)
	return categories, nil
}

// GetBySlug 根据 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// ListSubcategories 获取直接子分类，父分类不存在时返回 ErrNotFound
func (s *CategoryService) ListSubcategories(slug string) ([]models.Category, error) {
	category, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByParent(category.ID)
}

// Create 批量创建分类，单个对象包装成单元素批次走同一条路径。
// 整批在一个事务内先全部校验再全部写入，任何一条失败整批回滚。
func (s *CategoryService) Create(inputs []CategoryInput) ([]models.Category, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Fields: FieldErrors{"non_field_errors": {"Empty payload."}}}
	}

	var created []models.Category
	err := s.repo.Transaction(func(tx repository.CategoryRepository) error {
		items := make([]FieldErrors, len(inputs))
		prepared := make([]models.Category, len(inputs))
		seen := make(map[string]bool, len(inputs))
		invalid := false

		for i, input := range inputs {
			fields := FieldErrors{}
			items[i] = fields

			name, ok := requireName(input.Name, fields)
			if ok {
				if err := validateCategoryName(tx, name, 0, fields); err != nil {
					return err
				}
				// 批内名称同样大小写不敏感去重
				lower := strings.ToLower(name)
				if seen[lower] {
					fields.Add("name", msgNameDuplicate)
				}
				seen[lower] = true
			}

			if input.ParentID != nil {
				parent, err := tx.GetByID(*input.ParentID)
				if err != nil {
					return err
				}
				if parent == nil {
					fields.Add("parent", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, *input.ParentID))
				}
			}

			if len(fields) > 0 {
				invalid = true
				continue
			}

			title := TitleCase(name)
			prepared[i] = models.Category{
				Name:           title,
				NameNormalized: strings.ToLower(title),
				Slug:           Slugify(title),
				Description:    derefString(input.Description),
				Image:          derefString(input.Image),
				ParentID:       input.ParentID,
			}
		}

		if invalid {
			return &BulkValidationError{Items: items}
		}

		for i := range prepared {
			if err := tx.Create(&prepared[i]); err != nil {
				// 唯一索引兜底：并发竞争越过预检查时按重名处理
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					items[i].Add("name", msgNameDuplicate)
					return &BulkValidationError{Items: items}
				}
				return err
			}
		}

		created = prepared
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = cache.InvalidateCategoryList(context.Background())
	return created, nil
}

// Update 更新分类，partial 为 true 时缺省字段保持原值
func (s *CategoryService) Update(slug string, input CategoryInput, partial bool) (*models.Category, error) {
	var updated *models.Category
	err := s.repo.Transaction(func(tx repository.CategoryRepository) error {
		category, err := tx.GetBySlug(strings.TrimSpace(slug))
		if err != nil {
			return err
		}
		if category == nil {
			return ErrNotFound
		}

		fields := FieldErrors{}

		nameChanged := false
		mergedName := category.Name
		if input.Name == nil {
			if !partial {
				fields.Add("name", msgFieldRequired)
			}
		} else {
			trimmed := strings.TrimSpace(*input.Name)
			if trimmed == "" {
				fields.Add("name", msgFieldBlank)
			} else if trimmed != category.Name {
				nameChanged = true
				mergedName = trimmed
			}
		}

		mergedParent := category.ParentID
		if input.ParentProvided {
			mergedParent = input.ParentID
		}
		parentChanged := !uintPtrEqual(mergedParent, category.ParentID)

		// 名称未变化时跳过名称校验
		if nameChanged {
			if err := validateCategoryName(tx, mergedName, category.ID, fields); err != nil {
				return err
			}
		}

		// 名称和父分类都没变时整段父分类校验跳过，不重新走环检测
		if (nameChanged || parentChanged) && mergedParent != nil {
			if *mergedParent == category.ID {
				fields.Add("parent", msgSelfParent)
			} else {
				parent, err := tx.GetByID(*mergedParent)
				if err != nil {
					return err
				}
				if parent == nil {
					fields.Add("parent", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, *mergedParent))
				} else {
					circular, err := wouldCreateCycle(tx, category.ID, parent)
					if err != nil {
						return err
					}
					if circular {
						fields.Add("parent", msgCircularParent)
					}
				}
			}
		}

		if len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}

		descChanged := input.Description != nil && *input.Description != category.Description
		imageChanged := input.Image != nil && *input.Image != category.Image

		// 目标状态与现状完全一致时不触发写入
		if !nameChanged && !parentChanged && !descChanged && !imageChanged {
			updated = category
			return nil
		}

		if nameChanged {
			title := TitleCase(mergedName)
			category.Name = title
			category.NameNormalized = strings.ToLower(title)
			category.Slug = Slugify(title)
		}
		category.ParentID = mergedParent
		if input.Description != nil {
			category.Description = *input.Description
		}
		if input.Image != nil {
			category.Image = *input.Image
		}

		if err := tx.Update(category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &ValidationError{Fields: FieldErrors{"name": {msgNameDuplicate}}}
			}
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = cache.InvalidateCategoryList(context.Background())
	return updated, nil
}

// Delete 删除分类并级联删除全部后代
func (s *CategoryService) Delete(slug string) error {
	err := s.repo.Transaction(func(tx repository.CategoryRepository) error {
		category, err := tx.GetBySlug(strings.TrimSpace(slug))
		if err != nil {
			return err
		}
		if category == nil {
			return ErrNotFound
		}

		// 广度优先收集后代，ids 同时充当访问队列
		ids := []uint{category.ID}
		for cursor := 0; cursor < len(ids); cursor++ {
			children, err := tx.ListByParent(ids[cursor])
			if err != nil {
				return err
			}
			for _, child := range children {
				ids = append(ids, child.ID)
			}
		}
		return tx.DeleteByIDs(ids)
	})
	if err != nil {
		return err
	}

	_ = cache.InvalidateCategoryList(context.Background())
	return nil
}

func requireName(name *string, fields FieldErrors) (string, bool) {
	if name == nil {
		fields.Add("name", msgFieldRequired)
		return "", false
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		fields.Add("name", msgFieldBlank)
		return "", false
	}
	return trimmed, true
}

func validateCategoryName(tx repository.CategoryRepository, name string, excludeID uint, fields FieldErrors) error {
	if len([]rune(name)) > constants.CategoryNameMaxLength {
		fields.Add("name", fmt.Sprintf("Ensure this field has no more than %d characters.", constants.CategoryNameMaxLength))
	}
	if categorySpecialChars.MatchString(name) {
		fields.Add("name", msgNameSpecialChars)
		return nil
	}
	existing, err := tx.FindByNameFold(name, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		fields.Add("name", msgNameDuplicate)
	}
	return nil
}

// wouldCreateCycle 判断把 parent 设为新父级后 categoryID 是否会出现在
// 自己的祖先链上。祖先链跳数超过分类总数说明数据已有环，同样拒绝。
func wouldCreateCycle(tx repository.CategoryRepository, categoryID uint, parent *models.Category) (bool, error) {
	total, err := tx.Count()
	if err != nil {
		return false, err
	}
	current := parent
	for hops := int64(0); current != nil; hops++ {
		if hops > total {
			return true, nil
		}
		if current.ID == categoryID {
			return true, nil
		}
		if current.ParentID == nil {
			return false, nil
		}
		current, err = tx.GetByID(*current.ParentID)
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
