package handler

import (
	"codepad-server/internal/model"
	"codepad-server/internal/service/language"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLanguages 返回语言列表（不含模板），用于客户端展示
func GetLanguages(c *gin.Context) {
	var langs []gin.H
	for _, lang := range language.GetLanguages() {
		langs = append(langs, gin.H{
			"name":       lang.Name,
			"judge_id":   lang.JudgeID,
			"executable": lang.Executable(),
		})
	}
	c.JSON(http.StatusOK, langs)
}

// JudgeInfo 远程评测服务的元信息
type JudgeInfo interface {
	Statuses(ctx context.Context) ([]model.Status, error)
	Languages(ctx context.Context) ([]model.JudgeLanguage, error)
}

type JudgeHandler struct {
	judge JudgeInfo
}

func NewJudgeHandler(judge JudgeInfo) *JudgeHandler {
	return &JudgeHandler{judge: judge}
}

// GetStatuses 代理评测服务的 /statuses
func (h *JudgeHandler) GetStatuses(c *gin.Context) {
	statuses, err := h.judge.Statuses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// GetJudgeLanguages 代理评测服务的 /languages
func (h *JudgeHandler) GetJudgeLanguages(c *gin.Context) {
	langs, err := h.judge.Languages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, langs)
}
