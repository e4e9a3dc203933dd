package public

import (
	"errors"

	"github.com/sandro988/E-commerce/internal/http/response"
	"github.com/sandro988/E-commerce/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "Captcha is unavailable.", service.ErrCaptchaConfigInvalid)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaConfigInvalid):
			respondError(c, response.CodeBadRequest, "Captcha is unavailable.", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to generate captcha.", err)
		}
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	captchaErr := h.CaptchaService.Verify(scene, payload.toServicePayload())
	if captchaErr == nil {
		return true
	}
	switch {
	case errors.Is(captchaErr, service.ErrCaptchaRequired):
		respondError(c, response.CodeBadRequest, "Captcha is required.", nil)
	case errors.Is(captchaErr, service.ErrCaptchaInvalid):
		respondError(c, response.CodeBadRequest, "Captcha verification failed.", nil)
	case errors.Is(captchaErr, service.ErrCaptchaConfigInvalid):
		respondError(c, response.CodeInternal, "Captcha is misconfigured.", captchaErr)
	default:
		respondError(c, response.CodeInternal, "Captcha verification failed.", captchaErr)
	}
	return false
}
