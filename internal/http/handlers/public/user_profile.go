package public

import (
	"errors"

	"github.com/sandro988/E-commerce/internal/http/response"
	"github.com/sandro988/E-commerce/internal/models"
	"github.com/sandro988/E-commerce/internal/service"

	"github.com/gin-gonic/gin"
)

func userProfileResponse(user *models.User) gin.H {
	return gin.H{
		"id":                          user.ID,
		"email":                       user.Email,
		"full_name":                   user.FullName,
		"phone_number":                user.PhoneNumber,
		"address":                     user.Address,
		"preferred_currency":          user.PreferredCurrency,
		"is_subscribed_to_newsletter": user.IsSubscribedToNewsletter,
		"email_verified_at":           user.EmailVerifiedAt,
		"created_at":                  user.CreatedAt,
	}
}

// GetCurrentUser 获取当前用户信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch user.", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "User not found.", nil)
		return
	}

	response.Success(c, userProfileResponse(user))
}

// UserProfileUpdateRequest 更新资料请求
type UserProfileUpdateRequest struct {
	FullName                 *string `json:"full_name"`
	PhoneNumber              *string `json:"phone_number"`
	Address                  *string `json:"address"`
	PreferredCurrency        *string `json:"preferred_currency"`
	IsSubscribedToNewsletter *bool   `json:"is_subscribed_to_newsletter"`
}

// UpdateUserProfile 更新用户资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(id, service.ProfileInput{
		FullName:                 req.FullName,
		PhoneNumber:              req.PhoneNumber,
		Address:                  req.Address,
		PreferredCurrency:        req.PreferredCurrency,
		IsSubscribedToNewsletter: req.IsSubscribedToNewsletter,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileEmpty):
			respondError(c, response.CodeBadRequest, "No profile fields provided.", nil)
		case errors.Is(err, service.ErrInvalidCurrency):
			respondError(c, response.CodeBadRequest, "Unsupported preferred currency.", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found.", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update profile.", err)
		}
		return
	}

	response.Success(c, userProfileResponse(user))
}

// ChangeUserPasswordRequest 用户改密请求
type ChangeUserPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeUserPassword 用户登录态修改密码
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangeUserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "Current password is incorrect.", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found.", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to change password.", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}
