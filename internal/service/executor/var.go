package executor

import (
	"codepad-server/internal/conf"
	"errors"
	"sync"
	"time"
)

var (
	ErrQueueFull     = errors.New("job queue is full, please try again later")
	ErrMissingStatus = errors.New("malformed response from execution service: missing status")
)

var (
	globalJobManager *JobManager
	onceJobManager   sync.Once
)

// Init 使用配置创建并启动全局任务管理器
func Init(judge Judge, cfg conf.ExecutorConf) *JobManager {
	onceJobManager.Do(func() {
		runner := NewRunner(judge, PolicyFromConf(cfg))
		globalJobManager = NewJobManager(runner.Run, cfg.JobPool, cfg.JobQueue)
		globalJobManager.Start()
	})
	return globalJobManager
}

func PolicyFromConf(cfg conf.ExecutorConf) PollPolicy {
	return PollPolicy{
		Interval:    time.Duration(cfg.PollInterval) * time.Millisecond,
		MaxInterval: time.Duration(cfg.MaxPollInterval) * time.Millisecond,
		Timeout:     time.Duration(cfg.PollTimeout) * time.Second,
	}
}
