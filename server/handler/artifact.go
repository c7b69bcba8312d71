package handler

import (
	"codepad-server/internal/service/storage"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ArtifactHandler 下载保存的文件
type ArtifactHandler struct {
	storageEngine *storage.StorageEngine
}

func NewArtifactHandler(se *storage.StorageEngine) *ArtifactHandler {
	return &ArtifactHandler{storageEngine: se}
}

// Download 下载文件，传输完成后删除
func (h *ArtifactHandler) Download(c *gin.Context) {
	id := c.Param("id")
	a, reader, err := h.storageEngine.Open(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer reader.Close()

	// 设置响应头
	c.Header("Content-Type", a.ContentType)
	c.Header("Content-Length", strconv.FormatInt(a.Size, 10))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	c.Status(http.StatusOK)

	// 流式传输文件内容
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logrus.WithError(err).WithField("artifact", id).Warn("failed to stream artifact")
		return
	}

	if err := h.storageEngine.Revoke(id); err != nil {
		logrus.WithError(err).WithField("artifact", id).Warn("failed to revoke artifact")
	}
}

// Metadata 获取文件元数据
func (h *ArtifactHandler) Metadata(c *gin.Context) {
	a, err := h.storageEngine.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
