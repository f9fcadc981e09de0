package handler

import (
	"faq-support-go/internal/config"
	"faq-support-go/internal/middleware"
	"faq-support-go/internal/service"
	"faq-support-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// RouterDeps 汇总注册路由所需的依赖。Admin 为 nil 时不注册管理接口。
type RouterDeps struct {
	Server     config.ServerConfig
	Chat       service.ChatService
	Admin      service.AdminService
	FAQ        service.FAQService
	JWTManager *token.JWTManager
}

// NewRouter 创建路由引擎并注册全部路由。
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS(deps.Server.WebOrigin))
	r.NoRoute(NotFound)

	r.GET("/health", Health)

	chatHandler := NewChatHandler(deps.Chat)
	chat := r.Group("/chat")
	{
		chat.POST("/message", middleware.BodyLimit(deps.Server.MaxBodyBytes), chatHandler.SendMessage)
		chat.GET("/history/:sessionId", chatHandler.GetHistory)
		chat.GET("/ws", NewChatWSHandler(deps.Chat, deps.Server.WebOrigin, deps.Server.MaxBodyBytes).Handle)
	}

	if deps.Admin != nil && deps.JWTManager != nil {
		adminHandler := NewAdminHandler(deps.Admin, deps.FAQ)
		admin := r.Group("/admin")
		admin.POST("/login", middleware.BodyLimit(deps.Server.MaxBodyBytes), adminHandler.Login)

		faqs := admin.Group("/faqs")
		faqs.Use(middleware.AdminAuthMiddleware(deps.JWTManager, service.RoleAdmin))
		{
			faqs.GET("", adminHandler.ListFAQs)
			faqs.POST("", middleware.BodyLimit(deps.Server.MaxBodyBytes), adminHandler.CreateFAQ)
		}
	}

	return r
}
