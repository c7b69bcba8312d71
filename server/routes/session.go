package routes

import (
	"codepad-server/server/handler"

	"github.com/gin-gonic/gin"
)

// InitSessionRoutes 设置会话相关路由，runLimit 作用于运行接口
func InitSessionRoutes(router gin.IRouter, h *handler.SessionHandler, runLimit gin.HandlerFunc) {
	sessionGroup := router.Group("/sessions")
	{
		sessionGroup.POST("", h.Create)
		sessionGroup.GET("", h.List)
		sessionGroup.GET("/:id", h.Get)
		sessionGroup.DELETE("/:id", h.Delete)

		// 编辑器状态
		sessionGroup.PUT("/:id/language", h.SetLanguage)
		sessionGroup.POST("/:id/theme", h.ToggleTheme)
		sessionGroup.PUT("/:id/code", h.SetCode)
		sessionGroup.PUT("/:id/stdin", h.SetStdin)
		sessionGroup.PUT("/:id/filename", h.SetFilename)

		// 运行
		sessionGroup.POST("/:id/run", runLimit, h.Run)

		// 打开与保存文件
		sessionGroup.POST("/:id/save", h.Save)
		sessionGroup.POST("/:id/open", h.Open)
	}
}
