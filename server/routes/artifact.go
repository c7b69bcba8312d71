package routes

import (
	"codepad-server/server/handler"

	"github.com/gin-gonic/gin"
)

func InitArtifactRoutes(router gin.IRouter, h *handler.ArtifactHandler) {
	router.GET("/artifacts/:id", h.Download)
	router.GET("/artifacts/:id/metadata", h.Metadata)
}
