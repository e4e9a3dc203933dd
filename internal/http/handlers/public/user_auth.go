package public

import (
	"errors"

	"github.com/sandro988/E-commerce/internal/constants"
	"github.com/sandro988/E-commerce/internal/http/response"
	"github.com/sandro988/E-commerce/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRegister 用户注册，注册后需邮箱验证码激活
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	user, err := h.UserAuthService.Register(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Enter a valid email address.", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeBadRequest, "user with this email already exists.", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "Registration failed.", err)
		}
		return
	}

	response.Created(c, gin.H{
		"user": gin.H{
			"id":                user.ID,
			"email":             user.Email,
			"email_verified_at": user.EmailVerifiedAt,
		},
		"detail": "Verification code sent to your email.",
	})
}

// UserVerifyEmailRequest 邮箱验证请求
type UserVerifyEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// UserVerifyEmail 校验邮箱验证码并激活账户
func (h *Handler) UserVerifyEmail(c *gin.Context) {
	var req UserVerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	user, err := h.UserAuthService.VerifyEmail(req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Enter a valid email address.", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found.", nil)
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			respondError(c, response.CodeConflict, "Email is already verified.", nil)
		case errors.Is(err, service.ErrVerifyCodeInvalid):
			respondError(c, response.CodeBadRequest, "Invalid verification code.", nil)
		case errors.Is(err, service.ErrVerifyCodeExpired):
			respondError(c, response.CodeBadRequest, "Verification code has expired.", nil)
		case errors.Is(err, service.ErrVerifyCodeAttemptsExceeded):
			respondError(c, response.CodeBadRequest, "Too many failed attempts. Request a new code.", nil)
		default:
			respondError(c, response.CodeInternal, "Verification failed.", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user": gin.H{
			"id":                user.ID,
			"email":             user.Email,
			"email_verified_at": user.EmailVerifiedAt,
		},
		"detail": "Email verified successfully.",
	})
}

// UserResendVerifyCodeRequest 重发验证码请求
type UserResendVerifyCodeRequest struct {
	Email          string                `json:"email" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserResendVerifyCode 重发注册验证码
func (h *Handler) UserResendVerifyCode(c *gin.Context) {
	var req UserResendVerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	if !h.verifyCaptcha(c, constants.CaptchaSceneRegisterSendCode, req.CaptchaPayload) {
		return
	}

	if err := h.UserAuthService.ResendVerifyCode(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Enter a valid email address.", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found.", nil)
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			respondError(c, response.CodeConflict, "Email is already verified.", nil)
		case errors.Is(err, service.ErrVerifyCodeTooFrequent):
			respondError(c, response.CodeTooManyRequests, "Verification code was sent recently. Try again later.", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to resend verification code.", err)
		}
		return
	}

	response.Success(c, gin.H{"sent": true})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email          string                `json:"email" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	RememberMe     bool                  `json:"remember_me"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	if !h.verifyCaptcha(c, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.LoginWithRememberMe(req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Enter a valid email address.", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "Invalid email or password.", nil)
		case errors.Is(err, service.ErrEmailNotVerified):
			respondError(c, response.CodeUnauthorized, "Email address is not verified.", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeUnauthorized, "This account has been disabled.", nil)
		default:
			respondError(c, response.CodeInternal, "Login failed.", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user": gin.H{
			"id":                user.ID,
			"email":             user.Email,
			"full_name":         user.FullName,
			"email_verified_at": user.EmailVerifiedAt,
		},
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// UserForgotPasswordRequest 忘记密码请求
type UserForgotPasswordRequest struct {
	Email          string                `json:"email" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserForgotPassword 发送重置密码验证码
func (h *Handler) UserForgotPassword(c *gin.Context) {
	var req UserForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	if !h.verifyCaptcha(c, constants.CaptchaSceneResetSendCode, req.CaptchaPayload) {
		return
	}

	if err := h.UserAuthService.SendResetCode(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Enter a valid email address.", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found.", nil)
		case errors.Is(err, service.ErrVerifyCodeTooFrequent):
			respondError(c, response.CodeTooManyRequests, "Verification code was sent recently. Try again later.", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to send reset code.", err)
		}
		return
	}

	response.Success(c, gin.H{"sent": true})
}

// UserResetPasswordRequest 重置密码请求
type UserResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResetPassword 凭验证码重置密码
func (h *Handler) UserResetPassword(c *gin.Context) {
	var req UserResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request payload.", err)
		return
	}

	if err := h.UserAuthService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Enter a valid email address.", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found.", nil)
		case errors.Is(err, service.ErrVerifyCodeInvalid):
			respondError(c, response.CodeBadRequest, "Invalid verification code.", nil)
		case errors.Is(err, service.ErrVerifyCodeExpired):
			respondError(c, response.CodeBadRequest, "Verification code has expired.", nil)
		case errors.Is(err, service.ErrVerifyCodeAttemptsExceeded):
			respondError(c, response.CodeBadRequest, "Too many failed attempts. Request a new code.", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "Password reset failed.", err)
		}
		return
	}

	response.Success(c, gin.H{"reset": true})
}

// UserLogout 退出登录，吊销当前用户全部已签发的 Token
func (h *Handler) UserLogout(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.UserAuthService.Logout(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeUnauthorized, "Authentication required.", nil)
			return
		}
		respondError(c, response.CodeInternal, "Logout failed.", err)
		return
	}

	response.Success(c, gin.H{"detail": "Logged out successfully."})
}
