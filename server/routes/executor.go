package routes

import (
	"codepad-server/server/handler"

	"github.com/gin-gonic/gin"
)

func InitExecutorRoutes(router gin.IRouter, h *handler.ExecutorHandler) {
	router.GET("/executor/status", h.GetJobStatus)
	router.GET("/metrics", handler.GetMetrics)
}
