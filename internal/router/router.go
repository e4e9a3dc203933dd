package router

import (
	"fmt"
	"strings"

	"github.com/sandro988/E-commerce/internal/cache"
	"github.com/sandro988/E-commerce/internal/config"
	adminhandlers "github.com/sandro988/E-commerce/internal/http/handlers/admin"
	publichandlers "github.com/sandro988/E-commerce/internal/http/handlers/public"
	"github.com/sandro988/E-commerce/internal/logger"
	"github.com/sandro988/E-commerce/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ec"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many login attempts. Try again in %d seconds.",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/categories/:slug", publicHandler.GetCategoryBySlug)
			public.GET("/categories/:slug/subcategories", publicHandler.GetSubcategories)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/signup", publicHandler.UserRegister)
			auth.POST("/verification", publicHandler.UserVerifyEmail)
			auth.POST("/verification/resend", publicHandler.UserResendVerifyCode)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/forgot-password", publicHandler.UserForgotPassword)
			auth.POST("/reset-password", publicHandler.UserResetPassword)
			auth.POST("/logout", UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), publicHandler.UserLogout)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
		}

		// 管理员接口（需 staff 身份）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), StaffRequiredMiddleware())
		{
			// 分类管理
			admin.POST("/categories", adminHandler.CreateCategories)
			admin.PUT("/categories/:slug", adminHandler.UpdateCategory)
			admin.PATCH("/categories/:slug", adminHandler.PatchCategory)
			admin.DELETE("/categories/:slug", adminHandler.DeleteCategory)

			// 文件上传
			admin.POST("/upload", adminHandler.UploadFile)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
