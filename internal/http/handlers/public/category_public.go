package public

import (
	"errors"

	"github.com/sandro988/E-commerce/internal/http/response"
	"github.com/sandro988/E-commerce/internal/models"
	"github.com/sandro988/E-commerce/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryDetailView 分类详情视图，附带一层子分类
type CategoryDetailView struct {
	models.Category
	Subcategories []models.Category `json:"subcategories"`
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch categories.", err)
		return
	}

	response.Success(c, categories)
}

// GetCategoryBySlug 按 slug 获取分类详情
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.CategoryService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Category not found.", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch category.", err)
		return
	}

	children, err := h.CategoryService.ListSubcategories(slug)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch category.", err)
		return
	}
	if children == nil {
		children = []models.Category{}
	}

	response.Success(c, CategoryDetailView{
		Category:      *category,
		Subcategories: children,
	})
}

// GetSubcategories 获取分类的直接子分类
func (h *Handler) GetSubcategories(c *gin.Context) {
	slug := c.Param("slug")

	children, err := h.CategoryService.ListSubcategories(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Category not found.", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch subcategories.", err)
		return
	}
	if children == nil {
		children = []models.Category{}
	}

	response.Success(c, children)
}
