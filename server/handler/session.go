package handler

import (
	"codepad-server/internal/service/language"
	"codepad-server/internal/service/session"
	"codepad-server/internal/service/storage"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionHandler 编辑器会话处理器
type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// errorStatus 将服务层错误映射为 HTTP 状态码
func errorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, storage.ErrArtifactNotFound):
		return http.StatusNotFound
	case errors.Is(err, language.ErrLanguageNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func (h *SessionHandler) Create(c *gin.Context) {
	c.JSON(http.StatusCreated, h.sessions.Create())
}

func (h *SessionHandler) List(c *gin.Context) {
	list := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": list,
		"count":    len(list),
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

func (h *SessionHandler) SetLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess, err := h.sessions.SetLanguage(c.Param("id"), req.Language)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) ToggleTheme(c *gin.Context) {
	sess, err := h.sessions.ToggleTheme(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type codeRequest struct {
	Code string `json:"code"`
}

func (h *SessionHandler) SetCode(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess, err := h.sessions.SetCode(c.Param("id"), req.Code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type stdinRequest struct {
	Stdin string `json:"stdin"`
}

func (h *SessionHandler) SetStdin(c *gin.Context) {
	var req stdinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess, err := h.sessions.SetStdin(c.Param("id"), req.Stdin)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type filenameRequest struct {
	Filename string `json:"filename"`
}

func (h *SessionHandler) SetFilename(c *gin.Context) {
	var req filenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess, err := h.sessions.SetFilename(c.Param("id"), req.Filename)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Run 发起运行。默认立即返回 202，?wait=true 时等待结果
func (h *SessionHandler) Run(c *gin.Context) {
	id := c.Param("id")
	if c.Query("wait") == "true" {
		res, err := h.sessions.RunSync(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
		return
	}

	if _, err := h.sessions.Run(id); err != nil {
		abortWithError(c, err)
		return
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, sess)
}

// Save 保存当前代码，返回下载地址
func (h *SessionHandler) Save(c *gin.Context) {
	a, err := h.sessions.Save(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"artifact_id": a.ID,
		"filename":    a.Filename,
		"size":        a.Size,
		"url":         "/artifacts/" + a.ID,
		"expires_at":  a.ExpiresAt,
	})
}

type openRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Open 打开文件，支持 multipart 的 file 字段或 JSON {filename, content}
func (h *SessionHandler) Open(c *gin.Context) {
	var req openRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	} else {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		// 读取上传的文件内容
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open uploaded file"})
			return
		}
		defer src.Close()

		content, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
			return
		}
		req.Filename = file.Filename
		req.Content = string(content)
	}

	sess, err := h.sessions.Open(c.Param("id"), req.Filename, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
