package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/sandro988/E-commerce/internal/http/response"
	"github.com/sandro988/E-commerce/internal/service"

	"github.com/gin-gonic/gin"
)

// categoryUpsertPayload 分类创建/更新载荷。
// parent 用 RawMessage 区分「未携带」「显式 null」「具体 ID」三种形态。
type categoryUpsertPayload struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	Parent      json.RawMessage `json:"parent"`
}

func (p categoryUpsertPayload) toServiceInput() (service.CategoryInput, error) {
	input := service.CategoryInput{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
	}
	if len(p.Parent) == 0 {
		return input, nil
	}
	input.ParentProvided = true
	if bytes.Equal(bytes.TrimSpace(p.Parent), []byte("null")) {
		return input, nil
	}
	var parentID uint
	if err := json.Unmarshal(p.Parent, &parentID); err != nil {
		return input, err
	}
	input.ParentID = &parentID
	return input, nil
}

// CreateCategories 创建分类，请求体支持单个对象或对象数组。
// 数组为一个批次，整批校验通过才写入。
func (h *Handler) CreateCategories(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	trimmed := bytes.TrimSpace(body)
	isBatch := len(trimmed) > 0 && trimmed[0] == '['

	var payloads []categoryUpsertPayload
	if isBatch {
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
			return
		}
	} else {
		var single categoryUpsertPayload
		if err := json.Unmarshal(trimmed, &single); err != nil {
			respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
			return
		}
		payloads = []categoryUpsertPayload{single}
	}

	inputs := make([]service.CategoryInput, 0, len(payloads))
	for _, payload := range payloads {
		input, err := payload.toServiceInput()
		if err != nil {
			respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
			return
		}
		inputs = append(inputs, input)
	}

	created, err := h.CategoryService.Create(inputs)
	if err != nil {
		var bulkErr *service.BulkValidationError
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &bulkErr):
			if isBatch {
				respondErrorWithData(c, response.CodeBadRequest, "Validation failed.", gin.H{"items": bulkErr.Items})
				return
			}
			respondErrorWithData(c, response.CodeBadRequest, "Validation failed.", gin.H{"fields": bulkErr.Items[0]})
		case errors.As(err, &validationErr):
			respondErrorWithData(c, response.CodeBadRequest, "Validation failed.", gin.H{"fields": validationErr.Fields})
		default:
			respondError(c, response.CodeInternal, "Failed to create categories.", err)
		}
		return
	}

	if isBatch {
		response.Created(c, created)
		return
	}
	response.Created(c, created[0])
}

// UpdateCategory 全量更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	h.updateCategory(c, false)
}

// PatchCategory 局部更新分类
func (h *Handler) PatchCategory(c *gin.Context) {
	h.updateCategory(c, true)
}

func (h *Handler) updateCategory(c *gin.Context, partial bool) {
	slug := c.Param("slug")
	if slug == "" {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", nil)
		return
	}

	var payload categoryUpsertPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	input, err := payload.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	updated, err := h.CategoryService.Update(slug, input, partial)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Category not found.", nil)
		case errors.As(err, &validationErr):
			respondErrorWithData(c, response.CodeBadRequest, "Validation failed.", gin.H{"fields": validationErr.Fields})
		default:
			respondError(c, response.CodeInternal, "Failed to update category.", err)
		}
		return
	}

	response.Success(c, updated)
}

// DeleteCategory 删除分类及其全部子孙分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", nil)
		return
	}

	if err := h.CategoryService.Delete(slug); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Category not found.", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to delete category.", err)
		}
		return
	}

	response.Success(c, gin.H{
		"deleted": true,
	})
}
