package server

import (
	"codepad-server/internal/conf"
	"codepad-server/server/handler"
	"codepad-server/server/middlewares"
	"codepad-server/server/routes"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func InitRoute(router *gin.Engine, config conf.ServerConf, deps Deps) {
	router.GET("/ping", handler.Ping)

	api := router.Group("")
	if config.Token != "" {
		api.Use(middlewares.AuthMiddleware(config.Token))
	}
	runLimit := middlewares.RateLimitMiddleware(rate.Limit(config.RateLimit), config.RateBurst)

	routes.InitLanguageRoutes(api, handler.NewJudgeHandler(deps.Judge))
	routes.InitExecutorRoutes(api, handler.NewExecutorHandler(deps.Jobs))
	routes.InitSessionRoutes(api, handler.NewSessionHandler(deps.Sessions), runLimit)
	routes.InitArtifactRoutes(api, handler.NewArtifactHandler(deps.Artifacts))
}
