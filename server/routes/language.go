package routes

import (
	"codepad-server/server/handler"

	"github.com/gin-gonic/gin"
)

func InitLanguageRoutes(router gin.IRouter, judge *handler.JudgeHandler) {
	router.GET("/languages", handler.GetLanguages)
	router.GET("/judge/languages", judge.GetJudgeLanguages)
	router.GET("/statuses", judge.GetStatuses)
}
