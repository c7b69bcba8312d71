package handler

import (
	"codepad-server/internal/model"
	"codepad-server/internal/service/executor"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JobStatusSource 任务管理器状态
type JobStatusSource interface {
	GetStatus() model.JobManagerStatus
}

type ExecutorHandler struct {
	jobs JobStatusSource
}

func NewExecutorHandler(jobs JobStatusSource) *ExecutorHandler {
	return &ExecutorHandler{jobs: jobs}
}

func (h *ExecutorHandler) GetJobStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobs.GetStatus())
}

func GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, executor.GetMetrics())
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
