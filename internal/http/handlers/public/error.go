package public

import (
	handlershared "github.com/sandro988/E-commerce/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondErrorWithData(c *gin.Context, code int, msg string, data interface{}) {
	handlershared.RespondErrorWithData(c, code, msg, data)
}
